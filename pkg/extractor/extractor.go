package extractor

import (
	"context"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/ccollicutt/logpuzzle/pkg/parser"
)

// requestToken matches the URL token following a GET request marker.
var requestToken = regexp.MustCompile(`GET (\S+)`)

// Extractor filters and orders puzzle URLs.
type Extractor struct {
	host      string
	marker    string
	extension string
	keyLength int
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithHost sets the host prefixed to every URL token.
// A leading scheme is accepted and replaced by http://.
func WithHost(host string) Option {
	return func(e *Extractor) {
		if host != "" {
			e.host = normalizeHost(host)
		}
	}
}

// WithPathMarker sets the path segment a puzzle URL must contain.
func WithPathMarker(marker string) Option {
	return func(e *Extractor) {
		if marker != "" {
			e.marker = marker
		}
	}
}

// WithExtension sets the suffix a puzzle URL must end with.
func WithExtension(ext string) Option {
	return func(e *Extractor) {
		if ext != "" {
			e.extension = ext
		}
	}
}

// WithKeyLength sets how many characters before the extension form the sort key.
func WithKeyLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.keyLength = n
		}
	}
}

// New creates an Extractor using the default puzzle convention.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		host:      DefaultHost,
		marker:    DefaultPathMarker,
		extension: DefaultExtension,
		keyLength: DefaultKeyLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Host returns the host URLs are resolved against.
func (e *Extractor) Host() string {
	return e.host
}

// Extract returns the unique puzzle URLs in logText ordered by sort key.
// It returns an empty slice when nothing matches.
func (e *Extractor) Extract(logText string) []string {
	c := e.newCollector()
	for _, m := range requestToken.FindAllStringSubmatch(logText, -1) {
		c.add(m[1], nil)
	}
	return c.result().URLs()
}

// Collect reads every line from src and returns the ordered puzzle URLs with
// per-URL request statistics. Read failures are returned as *FileAccessError.
func (e *Extractor) Collect(ctx context.Context, src parser.LogSource) (*Result, error) {
	c := e.newCollector()
	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			var readErr *parser.ReadError
			if errors.As(err, &readErr) {
				return nil, &FileAccessError{Path: readErr.Path, Err: readErr.Err}
			}
			return nil, err
		}

		c.lines++
		for _, m := range requestToken.FindAllStringSubmatch(line.Raw, -1) {
			c.add(m[1], line)
		}
	}
	return c.result(), nil
}

// ReadURLs extracts the ordered puzzle URLs from a single log file.
func (e *Extractor) ReadURLs(ctx context.Context, path string) ([]string, error) {
	src := parser.NewFileSource([]string{path}, nil)
	defer src.Close()

	result, err := e.Collect(ctx, src)
	if err != nil {
		return nil, err
	}
	return result.URLs(), nil
}

// Matches reports whether a URL token follows the puzzle convention.
func (e *Extractor) Matches(token string) bool {
	return strings.Contains(token, e.marker) && strings.HasSuffix(token, e.extension)
}

// SortKey returns the keyLength characters preceding the extension.
// Shorter names use everything before the extension.
func (e *Extractor) SortKey(url string) string {
	name := strings.TrimSuffix(url, e.extension)
	if len(name) <= e.keyLength {
		return name
	}
	return name[len(name)-e.keyLength:]
}

type collector struct {
	e     *Extractor
	hits  map[string]*Hit
	lines int
	total int
}

func (e *Extractor) newCollector() *collector {
	return &collector{e: e, hits: make(map[string]*Hit)}
}

func (c *collector) add(token string, line *parser.ParsedLine) {
	if !c.e.Matches(token) {
		return
	}
	c.total++

	url := "http://" + c.e.host + token
	if hit, ok := c.hits[url]; ok {
		hit.Requests++
		if line != nil && line.HasTimestamp() && (hit.FirstSeen.IsZero() || line.Timestamp.Before(hit.FirstSeen)) {
			hit.FirstSeen = line.Timestamp
		}
		return
	}

	hit := &Hit{
		URL:      url,
		Key:      c.e.SortKey(url),
		Requests: 1,
	}
	if line != nil {
		hit.FirstSeen = line.Timestamp
		hit.Source = line.Source
		hit.LineNum = line.LineNum
	}
	c.hits[url] = hit
}

func (c *collector) result() *Result {
	hits := make([]*Hit, 0, len(c.hits))
	for _, hit := range c.hits {
		hits = append(hits, hit)
	}

	// Equal keys fall back to the URL so output is deterministic.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Key != hits[j].Key {
			return hits[i].Key < hits[j].Key
		}
		return hits[i].URL < hits[j].URL
	})

	return &Result{
		Hits:         hits,
		LinesScanned: c.lines,
		Matches:      c.total,
	}
}
