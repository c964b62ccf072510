// Package content provides CRUD and upsert-by-key operations for
// editable site content.
package content

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

var (
	// ErrContentNotFound is returned when a content entry is not found.
	ErrContentNotFound = errors.New("content not found")
	// ErrContentKeyEmpty is returned when a key is required but empty.
	ErrContentKeyEmpty = errors.New("content key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ListParams holds the optional filters of the admin content listing.
type ListParams struct {
	// Active filters on the is_active flag when non-nil.
	Active *bool
	// Type filters on the declared content type.
	Type string
	// Search matches key OR title as a substring.
	Search string
}

// List retrieves content entries ordered by key ascending.
func List(db *gorm.DB, p ListParams) ([]models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Content{})

	if p.Active != nil {
		tx = tx.Where("is_active = ?", *p.Active)
	}

	if p.Type != "" {
		tx = tx.Where("type = ?", p.Type)
	}

	// key is a reserved word in MySQL, so every reference goes through
	// clause expressions and lets the dialect quote it.
	if p.Search != "" {
		like := "%" + p.Search + "%"
		tx = tx.Where(clause.Or(
			clause.Like{Column: clause.Column{Name: "key"}, Value: like},
			clause.Like{Column: clause.Column{Name: "title"}, Value: like},
		))
	}

	var contents []models.Content
	if err := tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&contents).Error; err != nil {
		return nil, err
	}

	return contents, nil
}

// Get retrieves a content entry by ID.
func Get(db *gorm.DB, id uint64) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Content
	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// GetByKey retrieves a content entry by key regardless of active flag.
func GetByKey(db *gorm.DB, key string) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrContentKeyEmpty
	}

	var c models.Content
	result := db.Where(map[string]interface{}{"key": key}).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// GetActiveByKey retrieves an active content entry by key. This is the
// public read path; inactive rows behave as absent.
func GetActiveByKey(db *gorm.DB, key string) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrContentKeyEmpty
	}

	var c models.Content
	result := db.Where(map[string]interface{}{"key": key, "is_active": true}).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// ActiveByKey returns every active content entry keyed by its key for
// O(1) lookup on the client.
func ActiveByKey(db *gorm.DB) (map[string]models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var contents []models.Content
	if err := db.Where("is_active = ?", true).Find(&contents).Error; err != nil {
		return nil, err
	}

	out := make(map[string]models.Content, len(contents))
	for _, c := range contents {
		out[c.Key] = c
	}

	return out, nil
}

// CreateParams holds the fields of a new content entry. A nil
// IsActive means active.
type CreateParams struct {
	Key      string
	Title    string
	Content  string
	Type     models.ContentType
	IsActive *bool
}

// Create stores a new content entry.
func Create(db *gorm.DB, p CreateParams) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if p.Key == "" {
		return nil, ErrContentKeyEmpty
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	c := &models.Content{
		Key:      p.Key,
		Title:    p.Title,
		Content:  p.Content,
		Type:     p.Type,
		IsActive: active,
	}

	if err := db.Create(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateParams holds the editable fields of a content entry.
// The key itself is immutable once created.
type UpdateParams struct {
	Title    string
	Content  string
	Type     models.ContentType
	IsActive bool
}

// Update overwrites an existing content entry by ID.
func Update(db *gorm.DB, id uint64, p UpdateParams) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	c.Title = p.Title
	c.Content = p.Content
	c.Type = p.Type
	c.IsActive = p.IsActive

	if err := db.Save(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// UpsertByKey updates the body of the entry with the given key, or
// creates it with that key, the supplied body and active=true. The
// merge runs as a single native upsert statement, not as a
// read-then-write pair, so concurrent upserts for the same key can not
// race into a duplicate-key failure.
func UpsertByKey(db *gorm.DB, key, body string) (*models.Content, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrContentKeyEmpty
	}

	c := models.Content{
		Key:      key,
		Content:  body,
		IsActive: true,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content":    body,
			"is_active":  true,
			"updated_at": time.Now(),
		}),
	}).Create(&c).Error; err != nil {
		return nil, err
	}

	return GetByKey(db, key)
}

// KeyedBody pairs a content key with a new body for bulk upserts.
type KeyedBody struct {
	Key     string
	Content string
}

// BulkUpsert applies UpsertByKey for every entry.
func BulkUpsert(db *gorm.DB, entries []KeyedBody) error {
	if db == nil {
		return ErrDBNil
	}

	for _, e := range entries {
		if _, err := UpsertByKey(db, e.Key, e.Content); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a content entry by ID (hard delete).
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Content{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContentNotFound
	}

	return nil
}
