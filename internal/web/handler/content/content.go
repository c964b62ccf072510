// Package content provides the public site copy endpoints and the
// admin content management workflow.
package content

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/auth"
	"github.com/Lelasalasad/new-drisavo/internal/config"
	contentctl "github.com/Lelasalasad/new-drisavo/internal/db/controller/content"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/web/handler"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

const (
	// PublicPath serves site copy to the frontend.
	PublicPath = handler.APIPrefix + "/content"
	// AdminPath is the management path.
	AdminPath = handler.AdminPrefix + "/content"
)

// Service provides the content endpoints.
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

	// /public before /:key so it is not captured as a key
	app.Get(PublicPath+"/public", s.PublicIndex)
	app.Get(PublicPath+"/:key", s.PublicShow)

	admin := []fiber.Handler{authService.RequireUser(), authService.RequireAdmin()}

	app.Post(AdminPath+"/bulk-update", append(admin, s.BulkUpdate)...)
	app.Put(AdminPath+"/key/:key", append(admin, s.UpsertByKey)...)
	app.Get(AdminPath, append(admin, s.List)...)
	app.Post(AdminPath, append(admin, s.Create)...)
	app.Get(AdminPath+"/:id", append(admin, s.Show)...)
	app.Put(AdminPath+"/:id", append(admin, s.Update)...)
	app.Delete(AdminPath+"/:id", append(admin, s.Delete)...)
}

// PublicIndex returns every active entry keyed by its key.
func (s *Service) PublicIndex(c *fiber.Ctx) error {
	entries, err := contentctl.ActiveByKey(s.db)
	if err != nil {
		log.Error().Err(err).Msg("content index failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load content.")
	}

	return respond.Data(c, entries)
}

// PublicShow returns one active entry by key. Inactive entries behave
// as absent.
func (s *Service) PublicShow(c *fiber.Ctx) error {
	entry, err := contentctl.GetActiveByKey(s.db, c.Params("key"))
	if err != nil {
		if errors.Is(err, contentctl.ErrContentNotFound) || errors.Is(err, contentctl.ErrContentKeyEmpty) {
			return respond.Error(c, fiber.StatusNotFound, "Content not found.")
		}

		log.Error().Err(err).Msg("content load failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load content.")
	}

	return respond.Data(c, entry)
}

// List returns entries with optional active, type and search filters.
func (s *Service) List(c *fiber.Ctx) error {
	params := contentctl.ListParams{
		Type:   c.Query("type"),
		Search: c.Query("search"),
	}

	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return respond.Error(c, fiber.StatusBadRequest, "Invalid active filter.")
		}

		params.Active = &active
	}

	entries, err := contentctl.List(s.db, params)
	if err != nil {
		log.Error().Err(err).Msg("content list failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load content.")
	}

	return respond.Data(c, entries)
}

// Show returns one entry by id regardless of active state.
func (s *Service) Show(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Content not found.")
	}

	entry, err := contentctl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, contentctl.ErrContentNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Content not found.")
		}

		log.Error().Err(err).Msg("content load failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to load content.")
	}

	return respond.Data(c, entry)
}

type contentInput struct {
	Key      string `json:"key" validate:"required,max=255"`
	Title    string `json:"title" validate:"max=255"`
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=text html image json"`
	IsActive *bool  `json:"is_active"`
}

// Create stores a new entry.
func (s *Service) Create(c *fiber.Ctx) error {
	var in contentInput
	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	if _, err := contentctl.GetByKey(s.db, in.Key); err == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
			Success: false,
			Message: "The given data was invalid.",
			Errors:  map[string][]string{"key": {"The key has already been taken."}},
		})
	}

	contentType := models.ContentType(in.Type)
	if in.Type == "" {
		contentType = models.ContentTypeText
	}

	entry, err := contentctl.Create(s.db, contentctl.CreateParams{
		Key:      in.Key,
		Title:    in.Title,
		Content:  in.Content,
		Type:     contentType,
		IsActive: in.IsActive,
	})
	if err != nil {
		log.Error().Err(err).Msg("content creation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to create content.")
	}

	return respond.Created(c, entry, "Content created successfully.")
}

// Update overwrites an entry by id. The key is immutable.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Content not found.")
	}

	var in struct {
		Title    string `json:"title" validate:"max=255"`
		Content  string `json:"content" validate:"required"`
		Type     string `json:"type" validate:"omitempty,oneof=text html image json"`
		IsActive bool   `json:"is_active"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	contentType := models.ContentType(in.Type)
	if in.Type == "" {
		contentType = models.ContentTypeText
	}

	entry, err := contentctl.Update(s.db, id, contentctl.UpdateParams{
		Title:    in.Title,
		Content:  in.Content,
		Type:     contentType,
		IsActive: in.IsActive,
	})
	if err != nil {
		if errors.Is(err, contentctl.ErrContentNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Content not found.")
		}

		log.Error().Err(err).Msg("content update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update content.")
	}

	return respond.DataMessage(c, entry, "Content updated successfully.")
}

// UpsertByKey overwrites the body of the entry with the given key, or
// creates it active if it does not exist yet.
func (s *Service) UpsertByKey(c *fiber.Ctx) error {
	var in struct {
		Content string `json:"content" validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	entry, err := contentctl.UpsertByKey(s.db, c.Params("key"), in.Content)
	if err != nil {
		if errors.Is(err, contentctl.ErrContentKeyEmpty) {
			return respond.Error(c, fiber.StatusNotFound, "Content not found.")
		}

		log.Error().Err(err).Msg("content upsert failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update content.")
	}

	return respond.DataMessage(c, entry, "Content updated successfully.")
}

// BulkUpdate upserts a batch of key/content pairs.
func (s *Service) BulkUpdate(c *fiber.Ctx) error {
	var in struct {
		Contents []struct {
			Key     string `json:"key" validate:"required,max=255"`
			Content string `json:"content" validate:"required"`
		} `json:"contents" validate:"required,min=1,dive"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	entries := make([]contentctl.KeyedBody, 0, len(in.Contents))
	for _, e := range in.Contents {
		entries = append(entries, contentctl.KeyedBody{Key: e.Key, Content: e.Content})
	}

	if err := contentctl.BulkUpsert(s.db, entries); err != nil {
		log.Error().Err(err).Msg("content bulk update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update content.")
	}

	return respond.Message(c, "Content updated successfully.")
}

// Delete removes an entry by id.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respond.Error(c, fiber.StatusNotFound, "Content not found.")
	}

	if err := contentctl.Delete(s.db, id); err != nil {
		if errors.Is(err, contentctl.ErrContentNotFound) {
			return respond.Error(c, fiber.StatusNotFound, "Content not found.")
		}

		log.Error().Err(err).Msg("content deletion failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Failed to delete content.")
	}

	return respond.Message(c, "Content deleted successfully.")
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
