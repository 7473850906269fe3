package parser

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // registers decoders with image.Decode
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrEmptyImage is returned when there are no bytes to decode.
	ErrEmptyImage = errors.New("empty image data")

	// ErrNotImage is returned when the bytes are not an image media type.
	ErrNotImage = errors.New("data is not an image")

	// ErrInvalidDataURI is returned by DecodeDataURI for malformed input.
	ErrInvalidDataURI = errors.New("invalid data URI")
)

// DetectImageType returns the media type of data (e.g. "image/png").
// Anything that is not image/* yields ErrNotImage.
func DetectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	// mimetype may append parameters; only the bare type belongs in a data URI
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return mediaType, nil
}

// DecodeImage decodes png, jpeg, gif, webp, bmp and tiff bytes into pixels.
// JPEG EXIF orientation is applied so photos taken on phones appear upright.
//
// Returns:
//   - image.Image: The decoded picture
//   - string: The detected media type
//   - error: ErrEmptyImage, ErrNotImage or the decoder error
func DecodeImage(data []byte) (image.Image, string, error) {
	mediaType, err := DetectImageType(data)
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, mediaType, fmt.Errorf("failed to decode %s image: %w", mediaType, err)
	}

	return img, mediaType, nil
}

// ReadImage reads r to the end and decodes it.
// The raw bytes are returned too so callers can build a data URI without re-encoding.
func ReadImage(r io.Reader) ([]byte, image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	img, mediaType, err := DecodeImage(data)
	if err != nil {
		return data, nil, mediaType, err
	}
	return data, img, mediaType, nil
}

// EncodeDataURI wraps the original image bytes in a base64 data URI.
// The bytes are not re-encoded, so decoding the URI gives back exactly data.
func EncodeDataURI(data []byte) (string, error) {
	mediaType, err := DetectImageType(data)
	if err != nil {
		return "", err
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI splits a base64 data URI into its media type and payload bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}

	return mediaType, data, nil
}
