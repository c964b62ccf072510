// Package service provides the public catalog and admin service
// management endpoints.
package service

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/auth"
	"github.com/Lelasalasad/new-drisavo/internal/config"
	servicectl "github.com/Lelasalasad/new-drisavo/internal/db/controller/service"
	"github.com/Lelasalasad/new-drisavo/internal/web/handler"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

const (
	// PublicPath is the catalog path.
	PublicPath = handler.APIPrefix + "/services"
	// AdminPath is the management path.
	AdminPath = handler.AdminPrefix + "/services"
)

// Service provides the service catalog endpoints.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
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
	s.validator = respond.NewValidator()

	// the public catalog is the same listing, filters apply only when sent
	app.Get(PublicPath, s.List)
	app.Get(PublicPath+"/:id", s.Show)

	admin := []fiber.Handler{authService.RequireUser(), authService.RequireAdmin()}

	// update-order before :id so the literal segment is not captured
	app.Post(AdminPath+"/update-order", append(admin, s.UpdateOrder)...)
	app.Get(AdminPath, append(admin, s.List)...)
	app.Post(AdminPath, append(admin, s.Create)...)
	app.Get(AdminPath+"/:id", append(admin, s.Show)...)
	app.Put(AdminPath+"/:id", append(admin, s.Update)...)
	app.Delete(AdminPath+"/:id", append(admin, s.Delete)...)
	app.Post(AdminPath+"/:id/toggle-active", append(admin, s.ToggleActive)...)
}

// List returns all services with optional active and search filters.
func (s *Service) List(c *fiber.Ctx) error {
	params := servicectl.ListParams{Search: c.Query("search")}

	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return respond.Error(c, fiber.StatusBadRequest, "Invalid active filter.")
		}

		params.Active = &active
	}

	services, err := servicectl.List(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("service list failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load services.")
	}

	return respond.Data(c, services)
}

// Show returns one service regardless of active state.
func (s *Service) Show(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Service not found.")
	}

	svc, err := servicectl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, servicectl.ErrServiceNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Service not found.")
		}

		log.Error().Err(err).Msg("service load failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load service.")
	}

	return respond.Data(c, svc)
}

type serviceInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       string   `json:"price" validate:"required,max=100"`
	Features    []string `json:"features" validate:"required,dive,max=255"`
	Icon        string   `json:"icon" validate:"max=50"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order" validate:"omitempty,gte=0"`
}

// Create stores a new service.
func (s *Service) Create(c *fiber.Ctx) error {
	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	svc, err := servicectl.Create(s.db, servicectl.CreateParams{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Features:    in.Features,
		Icon:        in.Icon,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		log.Error().Err(err).Msg("service creation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to create service.")
	}

	return respond.Created(c, svc, "Service created successfully.")
}

// Update overwrites an existing service.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Service not found.")
	}

	var in serviceInput
	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	svc, err := servicectl.Update(s.db, id, servicectl.UpdateParams{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Features:    in.Features,
		Icon:        in.Icon,
		IsActive:    in.IsActive != nil && *in.IsActive,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		if errors.Is(err, servicectl.ErrServiceNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Service not found.")
		}

		log.Error().Err(err).Msg("service update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update service.")
	}

	return respond.DataMessage(c, svc, "Service updated successfully.")
}

// Delete removes a service.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Service not found.")
	}

	if err := servicectl.Delete(s.db, id); err != nil {
		if errors.Is(err, servicectl.ErrServiceNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Service not found.")
		}

		log.Error().Err(err).Msg("service deletion failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to delete service.")
	}

	return respond.Message(c, "Service deleted successfully.")
}

// ToggleActive flips the visibility flag of a service.
func (s *Service) ToggleActive(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Service not found.")
	}

	svc, err := servicectl.ToggleActive(s.db, id)
	if err != nil {
		if errors.Is(err, servicectl.ErrServiceNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Service not found.")
		}

		log.Error().Err(err).Msg("service toggle failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update service.")
	}

	return respond.DataMessage(c, svc, "Service status updated successfully.")
}

// UpdateOrder applies a batch of sort order assignments.
func (s *Service) UpdateOrder(c *fiber.Ctx) error {
	var in struct {
		Services []struct {
			ID        uint64 `json:"id" validate:"required"`
			SortOrder int    `json:"sort_order" validate:"gte=0"`
		} `json:"services" validate:"required,min=1,dive"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	assignments := make([]servicectl.OrderAssignment, 0, len(in.Services))
	for _, svc := range in.Services {
		assignments = append(assignments, servicectl.OrderAssignment{
			ID:        svc.ID,
			SortOrder: svc.SortOrder,
		})
	}

	if err := servicectl.UpdateOrder(s.db, assignments); err != nil {
		log.Error().Err(err).Msg("service reorder failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update service order.")
	}

	return respond.Message(c, "Service order updated successfully.")
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
