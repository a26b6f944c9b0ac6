package fetcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for downloads.
type Metrics struct {
	Registry         *prometheus.Registry
	DownloadsTotal   *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	BytesTotal       prometheus.Counter
	DownloadDuration prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	downloads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logpuzzle_downloads_total",
			Help: "Image downloads attempted, by result.",
		},
		[]string{"result"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logpuzzle_download_errors_total",
			Help: "Failed image downloads by error type.",
		},
		[]string{"error_type"},
	)
	bytesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "logpuzzle_download_bytes_total",
			Help: "Bytes written to image files.",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "logpuzzle_download_duration_seconds",
			Help:    "Time spent downloading a single image.",
			Buckets: prometheus.DefBuckets,
		},
	)

	registry.MustRegister(downloads, errorsTotal, bytesTotal, duration)

	return &Metrics{
		Registry:         registry,
		DownloadsTotal:   downloads,
		ErrorsTotal:      errorsTotal,
		BytesTotal:       bytesTotal,
		DownloadDuration: duration,
	}
}

// ObserveSuccess records a completed download.
func (m *Metrics) ObserveSuccess(n int64, d time.Duration) {
	if m == nil {
		return
	}
	m.DownloadsTotal.WithLabelValues("ok").Inc()
	m.BytesTotal.Add(float64(n))
	m.DownloadDuration.Observe(d.Seconds())
}

// ObserveFailure records a failed download.
func (m *Metrics) ObserveFailure(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.DownloadsTotal.WithLabelValues("failed").Inc()
	m.ErrorsTotal.WithLabelValues(ErrorType(err)).Inc()
	m.DownloadDuration.Observe(d.Seconds())
}

// WriteTextfile writes the current metric values in the Prometheus text
// format, for pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
