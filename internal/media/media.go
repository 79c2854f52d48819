// Package media validates uploaded listing images and stores them on an
// S3-compatible host, returning opaque public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	internal_errors "github.com/carhive-dev/carhive/internal/errors"
)

// PendingImage is an uploaded file that passed validation but has not
// been stored yet.
type PendingImage struct {
	Filename string
	MimeType string
	Size     int64
	Data     io.ReadCloser
}

// Store uploads validated images and returns one URL per image, in order.
type Store interface {
	UploadAll(ctx context.Context, images []*PendingImage) ([]string, error)
}

// ValidateImages checks count and MIME type for each uploaded file.
// Callers must invoke the returned cleanup once the data readers are
// consumed.
func ValidateImages(fileHeaders []*multipart.FileHeader, allowedMimes []string, maxCount int) ([]*PendingImage, func(), error) {
	if len(fileHeaders) > maxCount {
		return nil, nil, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Too many images: at most %d allowed", maxCount),
			StatusCode: http.StatusBadRequest,
		}
	}

	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}

	var pending []*PendingImage
	cleanup := func() {
		for _, p := range pending {
			p.Data.Close()
		}
	}

	for _, fileHeader := range fileHeaders {
		mimeType := detectMimeType(fileHeader)
		if !allowed[mimeType] {
			cleanup()
			return nil, nil, &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Unsupported file type %q (file: %s)", mimeType, fileHeader.Filename),
				StatusCode: http.StatusBadRequest,
			}
		}

		file, err := fileHeader.Open()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		pending = append(pending, &PendingImage{
			Filename: fileHeader.Filename,
			MimeType: mimeType,
			Size:     fileHeader.Size,
			Data:     file,
		})
	}

	return pending, cleanup, nil
}

func detectMimeType(fileHeader *multipart.FileHeader) string {
	mimeType := fileHeader.Header.Get("Content-Type")

	// Generic or missing Content-Type: fall back to the extension.
	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); detected != "" {
			mimeType = detected
		}
	}
	return mimeType
}
