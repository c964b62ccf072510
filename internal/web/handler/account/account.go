// Package account provides registration, login and profile endpoints.
package account

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/auth"
	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/metrics"
	"github.com/Lelasalasad/new-drisavo/internal/web/handler"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

// Service provides the account endpoints.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	auth      *auth.Service
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
	s.auth = authService
	s.validator = respond.NewValidator()

	app.Post(handler.APIPrefix+"/register", s.Register)
	app.Post(handler.APIPrefix+"/login", s.Login)

	app.Post(handler.APIPrefix+"/logout", authService.RequireUser(), s.Logout)
	app.Get(handler.APIPrefix+"/user", authService.RequireUser(), s.User)
	app.Put(handler.APIPrefix+"/profile", authService.RequireUser(), s.UpdateProfile)
	app.Put(handler.APIPrefix+"/change-password", authService.RequireUser(), s.ChangePassword)
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(c *fiber.Ctx) error {
	var in struct {
		Name                 string `json:"name" validate:"required,max=255"`
		Email                string `json:"email" validate:"required,email,max=255"`
		Phone                string `json:"phone" validate:"max=20"`
		Password             string `json:"password" validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("email uniqueness check failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Registration failed.")
	}

	if count > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
			Success: false,
			Message: "The given data was invalid.",
			Errors:  map[string][]string{"email": {"The email has already been taken."}},
		})
	}

	u := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: models.HashPassword(in.Password),
		Role:     models.RoleUser,
		Active:   true,
	}

	if err := s.db.Create(&u).Error; err != nil {
		log.Error().Err(err).Msg("user creation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Registration failed.")
	}

	token, err := s.auth.GenerateToken(&u)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Registration failed.")
	}

	return respond.Created(c, fiber.Map{"user": u, "token": token}, "Registration successful.")
}

// Login checks credentials and returns the account with a fresh token.
func (s *Service) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	u, err := s.auth.Authenticate(in.Email, in.Password)
	if err != nil {
		metrics.RecordAuthAttempt(false)

		if errors.Is(err, auth.ErrAccountDisabled) {
			return respond.Error(c, fiber.StatusForbidden, "Account is disabled.")
		}

		return respond.Error(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}

	token, err := s.auth.GenerateToken(u)
	if err != nil {
		log.Error().Err(err).Msg("token generation failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Login failed.")
	}

	metrics.RecordAuthAttempt(true)

	return respond.Data(c, fiber.Map{"user": u, "token": token})
}

// Logout acknowledges the logout. Tokens are stateless; the client
// discards its copy and the short expiry bounds the remaining window.
func (s *Service) Logout(c *fiber.Ctx) error {
	return respond.Message(c, "Logged out successfully.")
}

// User returns the authenticated account.
func (s *Service) User(c *fiber.Ctx) error {
	return respond.Data(c, auth.CurrentUser(c))
}

// UpdateProfile changes name and phone of the authenticated account.
func (s *Service) UpdateProfile(c *fiber.Ctx) error {
	var in struct {
		Name  string `json:"name" validate:"required,max=255"`
		Phone string `json:"phone" validate:"max=20"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	u := auth.CurrentUser(c)
	u.Name = in.Name
	u.Phone = in.Phone

	if err := s.db.Save(u).Error; err != nil {
		log.Error().Err(err).Msg("profile update failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Profile update failed.")
	}

	return respond.DataMessage(c, u, "Profile updated successfully.")
}

// ChangePassword verifies the current password and stores a new one.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	var in struct {
		CurrentPassword      string `json:"current_password" validate:"required"`
		Password             string `json:"password" validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	}

	if err := c.BodyParser(&in); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	if err := s.validator.Struct(in); err != nil {
		return respond.ValidationFailed(c, err)
	}

	u := auth.CurrentUser(c)
	if !u.VerifyPassword(in.CurrentPassword) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(respond.Envelope{
			Success: false,
			Message: "The given data was invalid.",
			Errors:  map[string][]string{"current_password": {"The current password is incorrect."}},
		})
	}

	u.Password = models.HashPassword(in.Password)
	if err := s.db.Save(u).Error; err != nil {
		log.Error().Err(err).Msg("password change failed")

		return respond.Error(c, fiber.StatusInternalServerError, "Password change failed.")
	}

	return respond.Message(c, "Password changed successfully.")
}
