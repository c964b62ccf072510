// Package inquiry provides CRUD, filtering and bulk operations for
// contact inquiries.
package inquiry

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

var (
	// ErrInquiryNotFound is returned when an inquiry is not found.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

const (
	// DefaultPerPage is the page size when the caller supplies none.
	DefaultPerPage = 15
	// MaxPerPage caps the page size.
	MaxPerPage = 100
)

// sortable whitelists the caller selectable sort columns.
var sortable = map[string]bool{ //nolint:gochecknoglobals
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
	"priority":   true,
}

// ListParams holds the optional filters of the inquiry listing.
// Equality filters compose conjunctively; Search is an OR group over
// name, email and message.
type ListParams struct {
	Status    string
	Priority  string
	ServiceID *uint64
	UserID    *uint64
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// Page is one page of inquiries plus the pagination frame the
// frontend consumes.
type Page struct {
	Data        []models.Inquiry `json:"data"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
	LastPage    int              `json:"last_page"`
}

// List retrieves a page of inquiries with Service, User and
// AssignedAdmin attached, default ordered by creation time descending.
func List(db *gorm.DB, p ListParams) (*Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Inquiry{})

	if p.Status != "" {
		tx = tx.Where("status = ?", p.Status)
	}

	if p.Priority != "" {
		tx = tx.Where("priority = ?", p.Priority)
	}

	if p.ServiceID != nil {
		tx = tx.Where("service_id = ?", *p.ServiceID)
	}

	if p.UserID != nil {
		tx = tx.Where("user_id = ?", *p.UserID)
	}

	if p.Search != "" {
		like := "%" + p.Search + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ? OR message LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	sortBy := p.SortBy
	if !sortable[sortBy] {
		sortBy = "created_at"
	}

	sortOrder := "DESC"
	if p.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	page := p.Page
	if page < 1 {
		page = 1
	}

	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage == 0 {
		lastPage = 1
	}

	var inquiries []models.Inquiry
	if err := tx.
		Preload("Service").
		Preload("User").
		Preload("AssignedAdmin").
		Order(sortBy + " " + sortOrder).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&inquiries).Error; err != nil {
		return nil, err
	}

	return &Page{
		Data:        inquiries,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

// CreateParams holds the fields of a public inquiry submission.
// Status is not part of the params on purpose: submissions always
// start as "new" no matter what the caller sent.
type CreateParams struct {
	Name      string
	Email     string
	Phone     string
	ServiceID *uint64
	Message   string
	Priority  models.InquiryPriority
	UserID    *uint64
}

// Create stores a new inquiry with status "new" and the default
// "medium" priority when none was supplied.
func Create(db *gorm.DB, p CreateParams) (*models.Inquiry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	priority := p.Priority
	if priority == "" {
		priority = models.InquiryPriorityMedium
	}

	inq := &models.Inquiry{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		ServiceID: p.ServiceID,
		Message:   p.Message,
		Status:    models.InquiryStatusNew,
		Priority:  priority,
		UserID:    p.UserID,
	}

	if err := db.Create(inq).Error; err != nil {
		return nil, err
	}

	return Get(db, inq.ID)
}

// Get retrieves an inquiry by ID with its relations attached.
func Get(db *gorm.DB, id uint64) (*models.Inquiry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var inq models.Inquiry
	result := db.
		Preload("Service").
		Preload("User").
		Preload("AssignedAdmin").
		First(&inq, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, result.Error
	}

	return &inq, nil
}

// UpdateParams holds the admin editable workflow fields.
type UpdateParams struct {
	Status     models.InquiryStatus
	Priority   models.InquiryPriority
	AssignedTo *uint64
	Notes      string
}

// Update applies a workflow change to an inquiry. An empty Priority
// keeps the current value; AssignedTo and Notes are overwritten.
func Update(db *gorm.DB, id uint64, p UpdateParams) (*models.Inquiry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	inq, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	inq.Status = p.Status
	if p.Priority != "" {
		inq.Priority = p.Priority
	}
	inq.AssignedTo = p.AssignedTo
	inq.Notes = p.Notes

	if err := db.Save(inq).Error; err != nil {
		return nil, err
	}

	return Get(db, id)
}

// Delete removes an inquiry by ID (hard delete).
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Inquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInquiryNotFound
	}

	return nil
}

// BulkUpdateStatus sets the status on every inquiry in ids with one
// statement. Unknown ids match no row and are skipped silently.
// The number of updated rows is returned.
func BulkUpdateStatus(db *gorm.DB, ids []uint64, status models.InquiryStatus) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Model(&models.Inquiry{}).
		Where("id IN ?", ids).
		Update("status", status)

	return result.RowsAffected, result.Error
}

// BulkAssign sets the assignee on every inquiry in ids with one
// statement. Unknown ids are skipped silently.
func BulkAssign(db *gorm.DB, ids []uint64, assignedTo uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Model(&models.Inquiry{}).
		Where("id IN ?", ids).
		Update("assigned_to", assignedTo)

	return result.RowsAffected, result.Error
}

// BulkDelete removes every inquiry in ids with one statement.
// Unknown ids are skipped silently.
func BulkDelete(db *gorm.DB, ids []uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	result := db.Where("id IN ?", ids).Delete(&models.Inquiry{})

	return result.RowsAffected, result.Error
}
