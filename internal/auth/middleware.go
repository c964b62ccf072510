package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
	"github.com/Lelasalasad/new-drisavo/internal/web/respond"
)

// localsUserKey is where middleware stores the authenticated user.
const localsUserKey = "auth_user"

// RequireUser rejects requests without a valid bearer token. On success
// the user record is stored in the request locals for CurrentUser.
func (s *Service) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return respond.Error(c, fiber.StatusUnauthorized, "Unauthenticated.")
		}

		u, err := s.UserFromToken(token)
		if err != nil {
			return respond.Error(c, fiber.StatusUnauthorized, "Unauthenticated.")
		}

		c.Locals(localsUserKey, u)

		return c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user is not an
// admin. It must run after RequireUser.
func (s *Service) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return respond.Error(c, fiber.StatusUnauthorized, "Unauthenticated.")
		}

		if !u.IsAdmin() {
			return respond.Error(c, fiber.StatusForbidden, "This action is unauthorized.")
		}

		return c.Next()
	}
}

// OptionalUser attaches the user when a valid bearer token is present
// and lets the request through either way. Public endpoints use it to
// link submissions to accounts without requiring login.
func (s *Service) OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token != "" {
			if u, err := s.UserFromToken(token); err == nil {
				c.Locals(localsUserKey, u)
			}
		}

		return c.Next()
	}
}

// CurrentUser returns the authenticated user of the request, or nil
// when the request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, ok := c.Locals(localsUserKey).(*models.User)
	if !ok {
		return nil
	}

	return u
}
