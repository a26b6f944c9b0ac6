// Package output provides formatting of run reports.
package output

import (
	"time"

	"github.com/ccollicutt/logpuzzle/pkg/extractor"
	"github.com/ccollicutt/logpuzzle/pkg/gallery"
)

// Report is the complete result of a run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// URLs is the ordered puzzle URL list with request statistics.
	URLs []*extractor.Hit

	// Gallery is set when images were downloaded.
	Gallery *gallery.Result `json:",omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesScanned is the number of log lines read.
	LinesScanned int

	// Matches is the number of puzzle requests, duplicates included.
	Matches int

	// UniqueURLs is the length of the ordered URL list.
	UniqueURLs int

	// Downloaded and Failed count gallery slots; zero without a gallery.
	Downloaded int
	Failed     int
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the log files that were read.
	Sources []string

	// Host is the host URLs were resolved against.
	Host string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewReport creates a Report from extraction and optional gallery results.
func NewReport(result *extractor.Result, g *gallery.Result, meta Metadata) *Report {
	report := &Report{
		URLs:     result.Hits,
		Gallery:  g,
		Metadata: meta,
		Summary: Summary{
			LinesScanned: result.LinesScanned,
			Matches:      result.Matches,
			UniqueURLs:   len(result.Hits),
		},
	}

	if g != nil {
		report.Summary.Downloaded = g.Downloaded()
		report.Summary.Failed = g.Failed()
	}

	return report
}

// HasFailures returns true if any gallery slot has no image.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}
