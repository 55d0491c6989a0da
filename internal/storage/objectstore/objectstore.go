// Package objectstore wraps an S3-compatible bucket behind a small
// put/delete interface. The MinIO implementation works with any
// S3-compatible provider.
package objectstore

import (
	"context"
	"fmt"
	"io"
)

// Store is the interface the ingestion pipeline uploads to and the
// cleanup paths delete from.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// UploadError carries the backend's diagnostic detail for a failed put.
type UploadError struct {
	Key       string
	Code      string
	RequestID string
	Status    int
	Err       error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q failed (status %d, code %q, request id %q): %v",
		e.Key, e.Status, e.Code, e.RequestID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
