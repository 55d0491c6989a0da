package models

import (
	"time"

	"github.com/google/uuid"
)

// Gallery groups zero or more photos via Photo.GalleryID.
type Gallery struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Image       *string   `json:"image,omitempty" db:"image"`
	IsPublished bool      `json:"is_published" db:"is_published"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
