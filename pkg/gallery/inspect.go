package gallery

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
)

// Inspection lists the images an index page references.
type Inspection struct {
	IndexPath string   `json:"index"`
	Images    []string `json:"images"`
	Missing   []string `json:"missing"`
	Remote    []string `json:"remote,omitempty"`
}

// Complete reports whether every local image is present.
func (in *Inspection) Complete() bool {
	return len(in.Missing) == 0
}

// Inspect parses dir/index.html and checks that every local <img> source
// exists in dir. Absolute URLs are listed as remote and not checked.
func Inspect(dir string) (*Inspection, error) {
	indexPath := filepath.Join(dir, IndexFile)
	f, err := os.Open(indexPath) // #nosec G304 -- user-provided gallery path is expected
	if err != nil {
		return nil, &FilesystemError{Op: "opening", Path: indexPath, Err: err}
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexPath, err)
	}

	in := &Inspection{IndexPath: indexPath, Images: []string{}, Missing: []string{}}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		in.Images = append(in.Images, src)

		if u, err := url.Parse(src); err == nil && (u.Scheme != "" || u.Host != "") {
			in.Remote = append(in.Remote, src)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(src))); err != nil {
			in.Missing = append(in.Missing, src)
		}
	})

	return in, nil
}
