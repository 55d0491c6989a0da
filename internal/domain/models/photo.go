package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version labels produced by the ingestion pipeline.
const (
	VersionOriginal  = "original"
	VersionThumbnail = "thumbnail"
)

// VersionMap maps a version label ("original", "thumbnail") to the
// storage key holding that variant.
type VersionMap map[string]string

// Photo represents an uploaded image and its stored variants.
type Photo struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ObjectKey    string     `json:"object_key" db:"object_key"`
	Bucket       string     `json:"bucket" db:"bucket"`
	OriginalName string     `json:"original_name" db:"original_name"`
	ContentType  string     `json:"content_type" db:"content_type"`
	SizeBytes    int64      `json:"size_bytes" db:"size_bytes"`
	Width        int        `json:"width" db:"width"`
	Height       int        `json:"height" db:"height"`
	Versions     VersionMap `json:"versions" db:"versions"`
	GalleryID    *uuid.UUID `json:"gallery_id,omitempty" db:"gallery_id"`
	Caption      *string    `json:"caption,omitempty" db:"caption"`
	AltText      *string    `json:"alt_text,omitempty" db:"alt_text"`
	SortOrder    int        `json:"sort_order" db:"sort_order"`
	IsPublished  bool       `json:"is_published" db:"is_published"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// StorageKeys returns every distinct storage key referenced by the photo:
// all version keys plus ObjectKey when versions do not already cover it.
func (p *Photo) StorageKeys() []string {
	seen := make(map[string]struct{}, len(p.Versions)+1)
	keys := make([]string, 0, len(p.Versions)+1)

	for _, key := range p.Versions {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	if p.ObjectKey != "" {
		if _, ok := seen[p.ObjectKey]; !ok {
			keys = append(keys, p.ObjectKey)
		}
	}

	return keys
}

// Value implements driver.Valuer so VersionMap is stored as JSONB.
func (m VersionMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for reading JSONB back into VersionMap.
func (m *VersionMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported versions type %T", value)
	}
}
