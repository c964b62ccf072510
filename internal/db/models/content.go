package models

import (
	"time"
)

// ContentType is the declared kind of a content value. The body is
// stored as an untyped string regardless of the declared type; the
// frontend decides how to render it.
type ContentType string

const (
	// ContentTypeText is plain text.
	ContentTypeText ContentType = "text"
	// ContentTypeHTML is an HTML fragment.
	ContentTypeHTML ContentType = "html"
	// ContentTypeImage is an image URL or path.
	ContentTypeImage ContentType = "image"
	// ContentTypeJSON is a JSON document.
	ContentTypeJSON ContentType = "json"
)

// ContentTypes lists all valid content types.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeText,
		ContentTypeHTML,
		ContentTypeImage,
		ContentTypeJSON,
	}
}

// ValidContentType reports whether t is one of the fixed type values.
func ValidContentType(t ContentType) bool {
	for _, v := range ContentTypes() {
		if v == t {
			return true
		}
	}

	return false
}

// Content is an admin editable key-value blob rendered into the public
// site. The unique Key is the external addressing scheme of the public
// content API.
type Content struct {
	// ID is the unique identifier for the content row.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Key is the globally unique lookup handle (e.g. "hero-title").
	Key string `gorm:"unique;size:255;not null;index:idx_contents_key_active,priority:1" json:"key"`
	// Title is the admin facing label of the entry.
	Title string `gorm:"size:255;not null" json:"title"`
	// Content is the stored body.
	Content string `gorm:"type:text;not null" json:"content"`
	// Type declares how the body should be interpreted.
	Type ContentType `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	// IsActive hides the entry from the public content API when false.
	// No column default, same reasoning as Service.IsActive.
	IsActive bool `gorm:"not null;index:idx_contents_key_active,priority:2" json:"is_active"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time `json:"updated_at"`
}
