package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title string  `json:"title" validate:"required"`
	Text  string  `json:"text" validate:"required"`
	Image *string `json:"image"`
	Link  *string `json:"link"`
	Date  *string `json:"date"`
}

type UpdateEventRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
	Image *string `json:"image"`
	Link  *string `json:"link"`
	Date  *string `json:"date"`
}

// EventUploadInput carries the fields of a multipart create/update.
// File is optional; when present it goes through the ingestion
// pipeline and the resulting object key becomes the event image.
type EventUploadInput struct {
	Title string
	Text  string
	Link  string
	Date  string
	File  *FileUpload
}

type EventResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	ImageURL  string     `json:"image_url,omitempty"`
	Link      *string    `json:"link,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type EventListResponse struct {
	Events  []EventResponse `json:"events"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}
