package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"thumbnailer/background"
	"thumbnailer/fetcher"
)

// UploadExtensions are the file types offered by the upload dialog.
var UploadExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// ValidateUploadName checks that a picked file looks like an image we can decode.
// Decoding still happens in the selector; this only rejects obvious mistakes early
// so the user gets a clear message instead of a decode error.
func ValidateUploadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("no file selected")
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range UploadExtensions {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf("%s is not a supported image (%s)", name, strings.Join(UploadExtensions, " "))
}

// noticeFor turns a pick error into the short text shown in the status line.
// An empty string means the error should not be shown (superseded picks).
func noticeFor(err error) string {
	if err == nil || errors.Is(err, background.ErrSuperseded) || errors.Is(err, context.Canceled) {
		return ""
	}

	if errors.Is(err, background.ErrUploadInFlight) {
		return "An upload is already being decoded, please wait"
	}

	if decodeErr, ok := background.IsDecodeError(err); ok {
		return fmt.Sprintf("Could not read %s as an image", decodeErr.Source)
	}

	if netErr, ok := background.IsNetworkError(err); ok {
		var statusErr *fetcher.StatusError
		if errors.As(netErr, &statusErr) {
			return fmt.Sprintf("Random image failed: server answered %d", statusErr.StatusCode)
		}
		if errors.Is(netErr, background.ErrNoFetcher) {
			return "Random images are not available"
		}
		return "Random image failed, keeping the current background"
	}

	return err.Error()
}
