package models

import (
	"time"

	"github.com/google/uuid"
)

// ReenactmentCategory is a named group of knowledge-base blocks with
// localized display names.
type ReenactmentCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	NameDe    string    `json:"name_de" db:"name_de"`
	NameEn    string    `json:"name_en" db:"name_en"`
	NameFr    string    `json:"name_fr" db:"name_fr"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Names returns the localized names keyed by language code.
func (c *ReenactmentCategory) Names() map[string]string {
	return map[string]string{
		"de": c.NameDe,
		"en": c.NameEn,
		"fr": c.NameFr,
	}
}

// Block is a content block of the reenactment knowledge base. It owns
// photos the same way a gallery does: photos reference the block id
// through their gallery_id column (owning-container id).
type Block struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Text       string     `json:"text" db:"text"`
	Image      *string    `json:"image,omitempty" db:"image"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	SortOrder  int        `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
