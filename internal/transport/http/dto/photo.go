package dto

import (
	"time"

	"heritage_cms/internal/domain/models"

	"github.com/google/uuid"
)

// FileUpload is a multipart file read fully into memory by the handler,
// so the service layer can decode it before any network call.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

type PhotoUploadInput struct {
	File    FileUpload
	Caption string
	AltText string
	OwnerID *uuid.UUID
}

type PhotoResponse struct {
	ID           uuid.UUID         `json:"id"`
	ObjectKey    string            `json:"object_key"`
	Bucket       string            `json:"bucket"`
	OriginalName string            `json:"original_name"`
	ContentType  string            `json:"content_type"`
	SizeBytes    int64             `json:"size_bytes"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Versions     models.VersionMap `json:"versions"`
	URLs         map[string]string `json:"urls"`
	GalleryID    *uuid.UUID        `json:"gallery_id,omitempty"`
	Caption      *string           `json:"caption,omitempty"`
	AltText      *string           `json:"alt_text,omitempty"`
	SortOrder    int               `json:"sort_order"`
	IsPublished  bool              `json:"is_published"`
	CreatedAt    time.Time         `json:"created_at"`
}
