package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Text      string     `json:"text" db:"text"`
	Image     *string    `json:"image,omitempty" db:"image"`
	Link      *string    `json:"link,omitempty" db:"link"`
	Date      *time.Time `json:"date,omitempty" db:"date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
