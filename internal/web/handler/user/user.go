// Package user provides the admin user listing.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/auth"
	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/web/handler"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

const (
	// Path is the user management path.
	Path = handler.AdminPrefix + "/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 15
	// MaxPageSize bounds client supplied page sizes.
	MaxPageSize = 100
)

// Page is one page of accounts.
type Page struct {
	Data        []models.User `json:"data"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
	Total       int64         `json:"total"`
	LastPage    int           `json:"last_page"`
}

// Service provides the user listing endpoint.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, authService.RequireUser(), authService.RequireAdmin(), s.List)
}

// List shows accounts with simple pagination, search and role filter.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage := c.QueryInt("per_page", DefaultPageSize)
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	tx := s.db.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	if role := c.Query("role"); role != "" {
		tx = tx.Where("role = ?", role)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("count users failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load users.")
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage == 0 {
		lastPage = 1
	}

	var users []models.User
	if err := tx.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("query users failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load users.")
	}

	return respond.Data(c, Page{
		Data:        users,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	})
}
