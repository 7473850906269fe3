package background

import (
	"errors"
	"fmt"
)

var (
	// ErrUploadInFlight is returned when an upload is started while another decode is running.
	ErrUploadInFlight = errors.New("an image upload is already being decoded")

	// ErrSuperseded is returned by a task whose result arrived after a newer pick.
	// The stale descriptor is discarded and the active background is left alone.
	ErrSuperseded = errors.New("background pick superseded by a newer selection")

	// ErrNoFetcher is returned when a remote image is requested without a configured fetcher.
	ErrNoFetcher = errors.New("no random image fetcher configured")
)

// DecodeError is returned when an uploaded file cannot be read or decoded.
// It always leaves the active background unchanged.
type DecodeError struct {
	Source string
	Err    error
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(source string, err error) error {
	return &DecodeError{Source: source, Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("decode error: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("decode error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NetworkError is returned when the random image fetch fails.
// It always leaves the active background unchanged.
type NetworkError struct {
	URL string
	Err error
}

// NewNetworkError constructs a NetworkError.
func NewNetworkError(url string, err error) error {
	return &NetworkError{URL: url, Err: err}
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	if e.URL != "" {
		return fmt.Sprintf("network error: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsDecodeError checks if an error is (or wraps) a DecodeError.
func IsDecodeError(err error) (*DecodeError, bool) {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is (or wraps) a NetworkError.
func IsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}
