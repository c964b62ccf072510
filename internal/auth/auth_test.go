package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func testService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-not-for-production"
	cfg.Auth.TokenExpiryHours = 1

	return New(db, cfg)
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, active bool) *models.User {
	t.Helper()

	u := &models.User{
		Name:     "Test User",
		Email:    string(role) + "@example.com",
		Password: models.HashPassword("correct horse"),
		Role:     role,
		Active:   active,
	}
	require.NoError(t, db.Create(u).Error)

	return u
}

func TestTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := testService(t, db)
	u := seedUser(t, db, models.RoleUser, true)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, err = svc.ParseToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// a token signed with a different secret must not verify
	other := testService(t, db)
	other.secret = []byte("a different secret entirely")
	badToken, err := other.GenerateToken(u)
	require.NoError(t, err)

	_, err = svc.ParseToken(badToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := testService(t, db)
	seedUser(t, db, models.RoleUser, true)
	seedUser(t, db, models.RoleAdmin, false)

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{name: "wrong email", email: "ghost@example.com", password: "correct horse", expectedError: ErrInvalidCredentials},
		{name: "wrong password", email: "user@example.com", password: "wrong", expectedError: ErrInvalidCredentials},
		{name: "disabled account", email: "admin@example.com", password: "correct horse", expectedError: ErrAccountDisabled},
		{name: "success", email: "user@example.com", password: "correct horse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := svc.Authenticate(tc.email, tc.password)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				require.NotNil(t, u)
				assert.Equal(t, tc.email, u.Email)
			}
		})
	}
}

func TestUserFromToken(t *testing.T) {
	db := setupTestDB(t)
	svc := testService(t, db)
	u := seedUser(t, db, models.RoleUser, true)

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	got, err := svc.UserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// deactivating the account kills existing tokens
	require.NoError(t, db.Model(u).Update("active", false).Error)

	_, err = svc.UserFromToken(token)
	require.ErrorIs(t, err, ErrAccountDisabled)

	// so does deleting it
	require.NoError(t, db.Delete(&models.User{}, u.ID).Error)

	_, err = svc.UserFromToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "empty header", header: "", expected: ""},
		{name: "bare token", header: "abc123", expected: ""},
		{name: "wrong scheme", header: "Basic abc123", expected: ""},
		{name: "bearer token", header: "Bearer abc123", expected: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", expected: "abc123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BearerToken(tc.header))
		})
	}
}

func TestMiddleware(t *testing.T) {
	db := setupTestDB(t)
	svc := testService(t, db)

	user := seedUser(t, db, models.RoleUser, true)
	admin := seedUser(t, db, models.RoleAdmin, true)

	userToken, err := svc.GenerateToken(user)
	require.NoError(t, err)
	adminToken, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", svc.RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email)
	})
	app.Get("/admin", svc.RequireUser(), svc.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/open", svc.OptionalUser(), func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil {
			return c.SendString(u.Email)
		}

		return c.SendString("anonymous")
	})

	testCases := []struct {
		name           string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "no token rejected", path: "/me", expectedStatus: fiber.StatusUnauthorized},
		{name: "garbage token rejected", path: "/me", token: "garbage", expectedStatus: fiber.StatusUnauthorized},
		{name: "valid token accepted", path: "/me", token: userToken, expectedStatus: fiber.StatusOK},
		{name: "user blocked from admin route", path: "/admin", token: userToken, expectedStatus: fiber.StatusForbidden},
		{name: "admin allowed", path: "/admin", token: adminToken, expectedStatus: fiber.StatusOK},
		{name: "optional without token", path: "/open", expectedStatus: fiber.StatusOK},
		{name: "optional with garbage token", path: "/open", token: "garbage", expectedStatus: fiber.StatusOK},
		{name: "optional with valid token", path: "/open", token: userToken, expectedStatus: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tc.path, nil)
			if tc.token != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tc.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}
