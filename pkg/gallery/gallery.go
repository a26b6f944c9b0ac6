package gallery

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/logpuzzle/pkg/fetcher"
)

// Gallery materializes image lists into a directory.
type Gallery struct {
	downloader Downloader
	title      string
	extension  string
	log        logrus.FieldLogger
}

// Option configures the Gallery.
type Option func(*Gallery)

// WithTitle sets the index page title.
func WithTitle(title string) Option {
	return func(g *Gallery) {
		if title != "" {
			g.title = title
		}
	}
}

// WithExtension sets the extension of local image files.
func WithExtension(ext string) Option {
	return func(g *Gallery) {
		if ext != "" {
			g.extension = ext
		}
	}
}

// WithLogger sets the logger for progress and warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Gallery) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Gallery that downloads with d.
func New(d Downloader, opts ...Option) *Gallery {
	g := &Gallery{
		downloader: d,
		title:      "Log Puzzle",
		extension:  ".jpg",
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Materialize downloads urls in order into destDir as img0, img1, ... and
// then writes destDir/index.html referencing every slot.
//
// A failed download is logged and recorded in the result; it never stops the
// remaining downloads or the index. Only a directory that cannot be created
// or an index that cannot be written is returned as an error. If ctx is
// canceled, the remaining slots are recorded as failed without a request.
func (g *Gallery) Materialize(ctx context.Context, urls []string, destDir string) (*Result, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, &FilesystemError{Op: "creating directory", Path: destDir, Err: err}
	}

	result := &Result{
		Dir:       destDir,
		IndexPath: filepath.Join(destDir, IndexFile),
		Items:     make([]Item, len(urls)),
	}
	files := make([]string, len(urls))

	for i, url := range urls {
		name := ImageName(i, g.extension)
		files[i] = name
		item := Item{Index: i, URL: url, File: name}

		if err := ctx.Err(); err != nil {
			item.Err = err
		} else {
			g.log.WithFields(logrus.Fields{
				"index": i,
				"total": len(urls),
				"url":   url,
			}).Info("downloading image")
			item.Bytes, item.Err = g.downloader.Fetch(ctx, url, filepath.Join(destDir, name))
		}

		if item.Err != nil {
			item.Error = item.Err.Error()
			item.ErrorType = fetcher.ErrorType(item.Err)
			g.log.WithFields(logrus.Fields{
				"index":      i,
				"url":        url,
				"error":      item.Err,
				"error_type": item.ErrorType,
			}).Warn("image download failed")
		}
		result.Items[i] = item
	}

	var buf bytes.Buffer
	if err := RenderIndex(&buf, g.title, files); err != nil {
		return nil, &FilesystemError{Op: "rendering", Path: result.IndexPath, Err: err}
	}
	if err := os.WriteFile(result.IndexPath, buf.Bytes(), 0o644); err != nil {
		return nil, &FilesystemError{Op: "writing", Path: result.IndexPath, Err: err}
	}

	g.log.WithFields(logrus.Fields{
		"index":      result.IndexPath,
		"downloaded": result.Downloaded(),
		"failed":     result.Failed(),
	}).Info("gallery written")

	return result, nil
}
