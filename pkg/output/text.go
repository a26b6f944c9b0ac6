package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// TextFormatter formats reports as plain text.
//
// Without a gallery it prints the ordered URL list, one per line, so the
// output can be piped to other tools. With a gallery it prints a summary.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if report.Gallery == nil {
		return f.formatURLs(report, w)
	}
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatGallery(report, w)
}

func (f *TextFormatter) formatURLs(report *Report, w io.Writer) error {
	for _, hit := range report.URLs {
		var err error
		if f.opts.Verbose {
			_, err = fmt.Fprintf(w, "%s\trequests=%d\tfirst_seen=%s\n", hit.URL, hit.Requests, formatTime(hit.FirstSeen))
		} else {
			_, err = fmt.Fprintln(w, hit.URL)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "logpuzzle: %d images, %d downloaded, %d failed, %s\n",
		report.Summary.UniqueURLs,
		report.Summary.Downloaded,
		report.Summary.Failed,
		report.Gallery.IndexPath)
	return err
}

func (f *TextFormatter) formatGallery(report *Report, w io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Gallery: %s\n", report.Gallery.IndexPath)
	fmt.Fprintf(&buf, "  Images:     %d\n", report.Summary.UniqueURLs)
	fmt.Fprintf(&buf, "  Downloaded: %d\n", report.Summary.Downloaded)
	fmt.Fprintf(&buf, "  Failed:     %d\n", report.Summary.Failed)

	if report.HasFailures() {
		buf.WriteString("\nMissing images:\n")
		for _, item := range report.Gallery.Items {
			if item.OK() {
				continue
			}
			fmt.Fprintf(&buf, "  - %s: %s (%s)\n", item.File, item.URL, item.Error)
		}
	}

	if f.opts.Verbose {
		buf.WriteString("---\n")
		fmt.Fprintf(&buf, "Lines scanned: %d\n", report.Summary.LinesScanned)
		fmt.Fprintf(&buf, "Puzzle requests: %d\n", report.Summary.Matches)
		fmt.Fprintf(&buf, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	_, err := buf.WriteTo(w)
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
