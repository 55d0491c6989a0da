package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGalleryRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	IsPublished bool    `json:"is_published"`
}

// UpdateGalleryRequest uses pointer fields for overlay semantics:
// nil leaves the stored value unchanged. IsPublished is not a pointer,
// the flag is always taken from the request.
type UpdateGalleryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsPublished bool    `json:"is_published"`
}

type GalleryResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
