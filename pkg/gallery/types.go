// Package gallery downloads an ordered list of images into a directory and
// writes an index page that shows them in order.
package gallery

import (
	"context"
	"fmt"
)

// IndexFile is the name of the generated page.
const IndexFile = "index.html"

// Downloader fetches a URL into a local file and returns the bytes written.
type Downloader interface {
	Fetch(ctx context.Context, url, dest string) (int64, error)
}

// Item is the outcome of one download slot.
type Item struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	File  string `json:"file"`
	Bytes int64  `json:"bytes"`
	Err   error  `json:"-"`

	// Error is Err as text, for reports.
	Error string `json:"error,omitempty"`

	// ErrorType is a short classification of Err.
	ErrorType string `json:"error_type,omitempty"`
}

// OK reports whether the image was stored.
func (i *Item) OK() bool {
	return i.Err == nil
}

// Result describes a materialized gallery.
type Result struct {
	Dir       string `json:"dir"`
	IndexPath string `json:"index"`
	Items     []Item `json:"items"`
}

// Downloaded returns the number of images stored.
func (r *Result) Downloaded() int {
	n := 0
	for i := range r.Items {
		if r.Items[i].OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of slots without an image.
func (r *Result) Failed() int {
	return len(r.Items) - r.Downloaded()
}

// FilesystemError reports a gallery directory or index that could not be written.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// ImageName returns the local file name for slot i.
func ImageName(i int, ext string) string {
	return fmt.Sprintf("img%d%s", i, ext)
}
