package fetcher

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// ErrBodyTooLarge is returned when a response, before or after decompression,
// is bigger than the client accepts.
var ErrBodyTooLarge = errors.New("response body too large")

// readLimited reads r to the end, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// DecompressBody returns the decoded body for gzip or Brotli compressed responses.
//
// Servers behind CDNs sometimes compress image redirects and HTML pages even when the
// payload is already compressed, so both the Content-Encoding header and the gzip magic
// bytes are checked. The decompressed output is capped at maxBodyBytes like the raw body.
//
// Parameters:
//   - body: The raw response body
//   - contentEncoding: The Content-Encoding header value (may be empty)
//
// Returns:
//   - []byte: The decompressed body (or body unchanged)
//   - bool: true if decompression was performed
//   - error: any error encountered while decompressing a body that claimed to be compressed
func DecompressBody(body []byte, contentEncoding string) ([]byte, bool, error) {
	if len(body) == 0 {
		return body, false, nil
	}

	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	// Try gzip
	if encoding == "gzip" || (len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b) {
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, false, err
		}
		defer reader.Close()

		decompressed, err := readLimited(reader, maxBodyBytes)
		if err != nil {
			return nil, false, err
		}
		return decompressed, true, nil
	}

	// Brotli has no magic bytes, so only trust the header
	if encoding == "br" {
		decompressed, err := readLimited(brotli.NewReader(bytes.NewReader(body)), maxBodyBytes)
		if err != nil {
			return nil, false, err
		}
		return decompressed, true, nil
	}

	// Not compressed
	return body, false, nil
}
