// Package fetcher downloads single images to local files.
package fetcher

import (
	"context"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Request context keys shared between Fetch and the response callback.
const (
	ctxDest  = "dest"
	ctxErr   = "err"
	ctxBytes = "bytes"
)

// Fetcher downloads URLs one at a time with a synchronous colly collector.
type Fetcher struct {
	collector   *colly.Collector
	maxBodySize int
	metrics     *Metrics
	log         logrus.FieldLogger
}

// Option configures the Fetcher.
type Option func(*settings)

type settings struct {
	userAgent   string
	timeout     time.Duration
	maxBodySize int
	transport   http.RoundTripper
	metrics     *Metrics
	log         logrus.FieldLogger
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.userAgent = ua }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodySize limits the response bytes read; 0 means unlimited.
func WithMaxBodySize(n int) Option {
	return func(s *settings) { s.maxBodySize = n }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(s *settings) { s.transport = rt }
}

// WithMetrics records download outcomes.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	s := &settings{
		userAgent: "logpuzzle",
		timeout:   30 * time.Second,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// One byte past the limit marks an oversized body.
	readLimit := 0
	if s.maxBodySize > 0 {
		readLimit = s.maxBodySize + 1
	}

	collector := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.MaxBodySize(readLimit),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.ParseHTTPErrorResponse(),
	)
	collector.SetRequestTimeout(s.timeout)
	if s.transport != nil {
		collector.WithTransport(s.transport)
	}

	f := &Fetcher{
		collector:   collector,
		maxBodySize: s.maxBodySize,
		metrics:     s.metrics,
		log:         s.log,
	}
	f.configureHandlers()
	return f
}

func (f *Fetcher) configureHandlers() {
	f.collector.OnRequest(func(r *colly.Request) {
		f.log.WithField("url", r.URL.String()).Debug("requesting image")
	})

	f.collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices {
			r.Ctx.Put(ctxErr, ErrStatus{StatusCode: r.StatusCode})
			return
		}

		if f.maxBodySize > 0 && len(r.Body) > f.maxBodySize {
			r.Ctx.Put(ctxErr, ErrTooLarge{Limit: f.maxBodySize})
			return
		}

		dest := r.Ctx.Get(ctxDest)
		if err := r.Save(dest); err != nil {
			r.Ctx.Put(ctxErr, ErrWrite{Path: dest, Err: err})
			return
		}
		r.Ctx.Put(ctxBytes, int64(len(r.Body)))
	})
}

// Fetch downloads url and writes the response body verbatim to dest.
// It returns the number of bytes written. Any error leaves dest untouched
// or absent.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	reqCtx := colly.NewContext()
	reqCtx.Put(ctxDest, dest)

	err := f.collector.Request(http.MethodGet, url, nil, reqCtx, nil)
	if err != nil {
		err = classifyError(err)
	} else if cbErr, ok := reqCtx.GetAny(ctxErr).(error); ok {
		err = cbErr
	}

	elapsed := time.Since(start)
	if err != nil {
		f.metrics.ObserveFailure(err, elapsed)
		return 0, err
	}

	n, _ := reqCtx.GetAny(ctxBytes).(int64)
	f.metrics.ObserveSuccess(n, elapsed)
	f.log.WithFields(logrus.Fields{
		"url":      url,
		"file":     dest,
		"bytes":    n,
		"duration": elapsed.Round(time.Millisecond),
	}).Debug("image saved")
	return n, nil
}
