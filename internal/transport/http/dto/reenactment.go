package dto

import (
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Code      string `json:"code" validate:"required"`
	NameDe    string `json:"name_de" validate:"required"`
	NameEn    string `json:"name_en" validate:"required"`
	NameFr    string `json:"name_fr" validate:"required"`
	SortOrder *int   `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	NameDe    *string `json:"name_de"`
	NameEn    *string `json:"name_en"`
	NameFr    *string `json:"name_fr"`
	SortOrder *int    `json:"sort_order"`
}

type CategoryResponse struct {
	ID        uuid.UUID         `json:"id"`
	Code      string            `json:"code"`
	Names     map[string]string `json:"names"`
	SortOrder int               `json:"sort_order"`
}

type CreateBlockRequest struct {
	Title      string     `json:"title" validate:"required"`
	Text       string     `json:"text" validate:"required"`
	CategoryID *uuid.UUID `json:"category_id"`
	SortOrder  *int       `json:"sort_order"`
}

type UpdateBlockRequest struct {
	Title      *string    `json:"title"`
	Text       *string    `json:"text"`
	Image      *string    `json:"image"`
	CategoryID *uuid.UUID `json:"category_id"`
	SortOrder  *int       `json:"sort_order"`
}

// BlockUploadInput carries a multipart block create/update; the optional
// file goes through the ingestion pipeline like event images do.
type BlockUploadInput struct {
	Title      string
	Text       string
	CategoryID *uuid.UUID
	SortOrder  *int
	File       *FileUpload
}

type BlockResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	ImageURL     string     `json:"image_url,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryCode *string    `json:"category_code,omitempty"`
	SortOrder    int        `json:"sort_order"`
}

type BlockDetailResponse struct {
	BlockResponse
	Photos []PhotoResponse `json:"photos"`
}

// BlocksByCategoryResponse is one group of the public reenactment page:
// a category (or the synthetic "other" group) with its blocks in order.
type BlocksByCategoryResponse struct {
	ID        *uuid.UUID        `json:"id,omitempty"`
	Code      string            `json:"code"`
	Names     map[string]string `json:"names"`
	SortOrder int               `json:"sort_order"`
	Blocks    []BlockResponse   `json:"blocks"`
}
