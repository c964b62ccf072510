// Package auth issues and checks the bearer tokens the API uses for
// authentication. Tokens are HS256 signed JWTs carrying the user id and
// role; the full user record is loaded from the database on every
// authenticated request so deactivated accounts lose access immediately.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

var (
	// ErrInvalidToken is returned when a token fails to parse or verify.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when an email/password pair is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when the account exists but is inactive.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Claims is the JWT payload for an authenticated session.
type Claims struct {
	UserID uint64      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens and resolves them back to users.
type Service struct {
	db     *gorm.DB
	secret []byte
	expiry time.Duration
}

// New builds a token service from the runtime configuration.
func New(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		secret: []byte(cfg.Auth.JWTSecret),
		expiry: time.Duration(cfg.Auth.TokenExpiryHours) * time.Hour,
	}
}

// GenerateToken signs a token for the given user.
func (s *Service) GenerateToken(u *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   u.Email,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a token string and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(_ *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate checks an email/password pair and returns the account.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}

	return &u, nil
}

// UserFromToken resolves a token string to the live user record.
func (s *Service) UserFromToken(tokenString string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := s.db.First(&u, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, err
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}

	return &u, nil
}

// BearerToken extracts the token from an Authorization header value.
// An empty return means no usable bearer token was sent.
func BearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
