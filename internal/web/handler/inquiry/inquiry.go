// Package inquiry provides the public contact submission endpoint and
// the admin inquiry workflow.
package inquiry

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/auth"
	"github.com/Lelasalasad/new-drisavo/internal/config"
	inquiryctl "github.com/Lelasalasad/new-drisavo/internal/db/controller/inquiry"
	servicectl "github.com/Lelasalasad/new-drisavo/internal/db/controller/service"
	statsctl "github.com/Lelasalasad/new-drisavo/internal/db/controller/stats"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/metrics"
	"github.com/Lelasalasad/new-drisavo/internal/web/handler"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

const (
	// PublicPath receives contact form submissions.
	PublicPath = handler.APIPrefix + "/inquiries"
	// MyPath lists the authenticated account's own submissions.
	MyPath = handler.APIPrefix + "/my-inquiries"
	// AdminPath is the workflow management path.
	AdminPath = handler.AdminPrefix + "/inquiries"
)

// bulk update actions
const (
	ActionUpdateStatus = "update_status"
	ActionAssign       = "assign"
	ActionDelete       = "delete"
)

// Service provides the inquiry endpoints.
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

	// anonymous submissions are linked to an account when a token is sent
	app.Post(PublicPath, authService.OptionalUser(), s.Create)
	app.Get(MyPath, authService.RequireUser(), s.MyInquiries)

	admin := []fiber.Handler{authService.RequireUser(), authService.RequireAdmin()}

	app.Get(handler.AdminPrefix+"/inquiries-statistics", append(admin, s.Statistics)...)
	app.Post(AdminPath+"/bulk-update", append(admin, s.BulkUpdate)...)
	app.Get(AdminPath, append(admin, s.List)...)
	app.Get(AdminPath+"/:id", append(admin, s.Show)...)
	app.Put(AdminPath+"/:id", append(admin, s.Update)...)
	app.Delete(AdminPath+"/:id", append(admin, s.Delete)...)
}

// Create stores a contact form submission. Status always starts as new.
func (s *Service) Create(c *fiber.Ctx) error {
	var in struct {
		Name      string  `json:"name" validate:"required,max=255"`
		Email     string  `json:"email" validate:"required,email,max=255"`
		Phone     string  `json:"phone" validate:"max=20"`
		ServiceID *uint64 `json:"service_id"`
		Message   string  `json:"message" validate:"required,max=2000"`
		Priority  string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	if in.ServiceID != nil {
		if _, err := servicectl.Get(s.db, *in.ServiceID); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
				Success: false,
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"service_id": {"The selected service id is invalid."}},
			})
		}
	}

	params := inquiryctl.CreateParams{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		ServiceID: in.ServiceID,
		Message:   in.Message,
		Priority:  models.InquiryPriority(in.Priority),
	}

	if u := auth.CurrentUser(c); u != nil {
		params.UserID = &u.ID
	}

	inq, err := inquiryctl.Create(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("inquiry creation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to submit inquiry.")
	}

	metrics.RecordInquirySubmission()

	return respond.Created(c, inq, "Thank you for your inquiry. We will contact you soon.")
}

// listParams reads the shared filter, sort and pagination query
// parameters of the inquiry listings.
func listParams(c *fiber.Ctx) (inquiryctl.ListParams, error) {
	params := inquiryctl.ListParams{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      c.QueryInt("page", 1),
		PerPage:   c.QueryInt("per_page", 0),
	}

	if raw := c.Query("service_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return params, err
		}

		params.ServiceID = &id
	}

	return params, nil
}

// MyInquiries lists the authenticated account's own submissions. The
// usual listing filters still apply on top of the owner constraint.
func (s *Service) MyInquiries(c *fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid service id filter.")
	}

	u := auth.CurrentUser(c)
	params.UserID = &u.ID

	page, err := inquiryctl.List(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("my inquiries list failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load inquiries.")
	}

	return respond.Data(c, page)
}

// List returns a filtered, sorted, paginated page of inquiries.
func (s *Service) List(c *fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid service id filter.")
	}

	page, err := inquiryctl.List(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("inquiry list failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load inquiries.")
	}

	return respond.Data(c, page)
}

// Show returns one inquiry with its relations.
func (s *Service) Show(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
	}

	inq, err := inquiryctl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, inquiryctl.ErrInquiryNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
		}

		log.Error().Err(err).Msg("inquiry load failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load inquiry.")
	}

	return respond.Data(c, inq)
}

// Update changes workflow fields of an inquiry.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
	}

	var in struct {
		Status     string  `json:"status" validate:"required,oneof=new in_progress completed cancelled"`
		Priority   string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
		AssignedTo *uint64 `json:"assigned_to"`
		Notes      string  `json:"notes" validate:"max=2000"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	inq, err := inquiryctl.Update(s.db, id, inquiryctl.UpdateParams{
		Status:     models.InquiryStatus(in.Status),
		Priority:   models.InquiryPriority(in.Priority),
		AssignedTo: in.AssignedTo,
		Notes:      in.Notes,
	})
	if err != nil {
		if errors.Is(err, inquiryctl.ErrInquiryNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
		}

		log.Error().Err(err).Msg("inquiry update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update inquiry.")
	}

	return respond.DataMessage(c, inq, "Inquiry updated successfully.")
}

// Delete removes an inquiry.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
	}

	if err := inquiryctl.Delete(s.db, id); err != nil {
		if errors.Is(err, inquiryctl.ErrInquiryNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Inquiry not found.")
		}

		log.Error().Err(err).Msg("inquiry deletion failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to delete inquiry.")
	}

	return respond.Message(c, "Inquiry deleted successfully.")
}

// BulkUpdate applies one action to a set of inquiries. Ids without a
// matching row are skipped, not reported as errors.
func (s *Service) BulkUpdate(c *fiber.Ctx) error {
	var in struct {
		Action     string   `json:"action" validate:"required,oneof=update_status assign delete"`
		InquiryIDs []uint64 `json:"inquiry_ids" validate:"required,min=1"`
		Status     string   `json:"status" validate:"omitempty,oneof=new in_progress completed cancelled"`
		AssignedTo *uint64  `json:"assigned_to"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	var (
		affected int64
		err      error
	)

	switch in.Action {
	case ActionUpdateStatus:
		if in.Status == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
				Success: false,
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"status": {"The status field is required."}},
			})
		}

		affected, err = inquiryctl.BulkUpdateStatus(s.db, in.InquiryIDs, models.InquiryStatus(in.Status))
	case ActionAssign:
		if in.AssignedTo == nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
				Success: false,
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"assigned_to": {"The assigned to field is required."}},
			})
		}

		affected, err = inquiryctl.BulkAssign(s.db, in.InquiryIDs, *in.AssignedTo)
	case ActionDelete:
		affected, err = inquiryctl.BulkDelete(s.db, in.InquiryIDs)
	}

	if err != nil {
		log.Error().Err(err).Str("action", in.Action).Msg("bulk update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Bulk update failed.")
	}

	return respond.Message(c, fmt.Sprintf("Bulk update completed. %d inquiries affected.", affected))
}

// Statistics returns the flat inquiry counters for the admin list view.
func (s *Service) Statistics(c *fiber.Ctx) error {
	stats, err := statsctl.CollectInquiryStats(s.db, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("inquiry statistics failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load statistics.")
	}

	return respond.Data(c, stats)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
