package models

import (
	"time"
)

// Service represents a sellable offering shown on the public site
// (e.g. "Personal Driver"). Inquiries may reference a service.
type Service struct {
	// ID is the unique identifier for the service.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the display name of the offering.
	Title string `gorm:"size:255;not null" json:"title"`
	// Description is the public marketing text.
	Description string `gorm:"type:text;not null" json:"description"`
	// Price is free text ("Starting at $25/hour"), not a numeric amount.
	Price string `gorm:"size:100;not null" json:"price"`
	// Features is the ordered list of selling points.
	Features []string `gorm:"serializer:json" json:"features"`
	// Icon is the tag of the icon rendered by the frontend.
	Icon string `gorm:"size:50;not null;default:'car'" json:"icon"`
	// IsActive hides the service from the public site when false.
	// No default tag: GORM omits a zero value at insert when one is set,
	// so an explicit false would come back as true.
	IsActive bool `gorm:"not null" json:"is_active"`
	// SortOrder is the manual display position. Ties are allowed.
	SortOrder int `gorm:"not null;default:0" json:"sort_order"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time `json:"updated_at"`
}
