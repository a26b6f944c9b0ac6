package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout indicates a download timed out.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrStatus indicates a response outside the 2xx range.
type ErrStatus struct {
	StatusCode int
}

func (e ErrStatus) Error() string {
	return fmt.Sprintf("http status %d", e.StatusCode)
}

// ErrTooLarge indicates a response body above the configured limit.
type ErrTooLarge struct {
	Limit int
}

func (e ErrTooLarge) Error() string {
	return fmt.Sprintf("response body exceeds %d bytes", e.Limit)
}

// ErrWrite indicates the response body could not be stored.
type ErrWrite struct {
	Path string
	Err  error
}

func (e ErrWrite) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e ErrWrite) Unwrap() error {
	return e.Err
}

// ErrorType returns a short label for err, suitable for logs and metrics.
func ErrorType(err error) string {
	if err == nil {
		return "none"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var status ErrStatus
	if errors.As(err, &status) {
		switch {
		case status.StatusCode == 404:
			return "not_found"
		case status.StatusCode == 403:
			return "forbidden"
		case status.StatusCode >= 500:
			return "server_error"
		}
		return "status"
	}
	var tooLarge ErrTooLarge
	if errors.As(err, &tooLarge) {
		return "too_large"
	}
	var write ErrWrite
	if errors.As(err, &write) {
		return "write"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "other"
}

// classifyError wraps transport errors into the typed errors above.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrConnection{Err: err}
	}
	return err
}
