// Package service provides CRUD and ordering operations for catalog services.
package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

var (
	// ErrServiceNotFound is returned when a service is not found.
	ErrServiceNotFound = errors.New("service not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ListParams holds the optional filters of the public/admin service listing.
type ListParams struct {
	// Active filters on the is_active flag when non-nil.
	Active *bool
	// Search matches title OR description as a substring.
	Search string
}

// List retrieves services ordered by sort_order ascending.
// Absent filters impose no constraint.
func List(db *gorm.DB, p ListParams) ([]models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Service{})

	if p.Active != nil {
		tx = tx.Where("is_active = ?", *p.Active)
	}

	if p.Search != "" {
		like := "%" + p.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var services []models.Service
	if err := tx.Order("sort_order ASC").Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// Get retrieves a service by its ID.
func Get(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var service models.Service
	result := db.First(&service, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, result.Error
	}

	return &service, nil
}

// CreateParams holds the fields of a new service. A nil IsActive
// means active.
type CreateParams struct {
	Title       string
	Description string
	Price       string
	Features    []string
	Icon        string
	IsActive    *bool
	SortOrder   *int
}

// Create stores a new service. When SortOrder is nil the service is
// placed after the current last one (max(sort_order)+1, so 1 for an
// empty catalog).
func Create(db *gorm.DB, p CreateParams) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	sortOrder := 0
	if p.SortOrder != nil {
		sortOrder = *p.SortOrder
	} else {
		var maxOrder int
		if err := db.Model(&models.Service{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return nil, err
		}

		sortOrder = maxOrder + 1
	}

	icon := p.Icon
	if icon == "" {
		icon = "car"
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}

	service := &models.Service{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Features:    p.Features,
		Icon:        icon,
		IsActive:    active,
		SortOrder:   sortOrder,
	}

	if err := db.Create(service).Error; err != nil {
		return nil, err
	}

	return service, nil
}

// UpdateParams holds the fields of a service update. Icon and SortOrder
// keep their current value when nil/empty.
type UpdateParams struct {
	Title       string
	Description string
	Price       string
	Features    []string
	Icon        string
	IsActive    bool
	SortOrder   *int
}

// Update overwrites an existing service.
func Update(db *gorm.DB, id uint64, p UpdateParams) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	service, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	service.Title = p.Title
	service.Description = p.Description
	service.Price = p.Price
	service.Features = p.Features
	service.IsActive = p.IsActive

	if p.Icon != "" {
		service.Icon = p.Icon
	}

	if p.SortOrder != nil {
		service.SortOrder = *p.SortOrder
	}

	if err := db.Save(service).Error; err != nil {
		return nil, err
	}

	return service, nil
}

// Delete removes a service by ID (hard delete).
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// ToggleActive flips the is_active flag of a service.
func ToggleActive(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	service, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	service.IsActive = !service.IsActive

	if err := db.Save(service).Error; err != nil {
		return nil, err
	}

	return service, nil
}

// OrderAssignment pairs a service id with its new sort position.
type OrderAssignment struct {
	ID        uint64
	SortOrder int
}

// UpdateOrder reassigns sort_order values. Assignments naming unknown
// ids simply match no row and are skipped silently.
func UpdateOrder(db *gorm.DB, assignments []OrderAssignment) error {
	if db == nil {
		return ErrDBNil
	}

	for _, a := range assignments {
		if err := db.Model(&models.Service{}).
			Where("id = ?", a.ID).
			Update("sort_order", a.SortOrder).Error; err != nil {
			return err
		}
	}

	return nil
}
