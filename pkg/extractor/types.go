// Package extractor recovers puzzle image URLs from Apache access logs.
package extractor

import (
	"fmt"
	"time"
)

// Defaults for the puzzle URL convention.
const (
	DefaultHost       = "code.google.com"
	DefaultPathMarker = "/puzzle/"
	DefaultExtension  = ".jpg"
	DefaultKeyLength  = 4
)

// Hit is a unique puzzle URL together with where it was first requested.
type Hit struct {
	// URL is the absolute image URL.
	URL string `json:"url"`

	// Key is the sort key derived from the file name.
	Key string `json:"key"`

	// Requests counts how many log lines requested this URL.
	Requests int `json:"requests"`

	// FirstSeen is the timestamp of the first request, zero when unknown.
	FirstSeen time.Time `json:"first_seen,omitempty"`

	// Source and LineNum locate the first request.
	Source  string `json:"source,omitempty"`
	LineNum int    `json:"line,omitempty"`
}

// Result holds the ordered puzzle URLs recovered from a log source.
type Result struct {
	// Hits is ordered by sort key, then URL.
	Hits []*Hit `json:"hits"`

	// LinesScanned is the number of log lines read.
	LinesScanned int `json:"lines_scanned"`

	// Matches is the number of puzzle requests seen, duplicates included.
	Matches int `json:"matches"`
}

// URLs returns the ordered URL list.
func (r *Result) URLs() []string {
	urls := make([]string, len(r.Hits))
	for i, hit := range r.Hits {
		urls[i] = hit.URL
	}
	return urls
}

// FileAccessError reports a log file that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read log file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
