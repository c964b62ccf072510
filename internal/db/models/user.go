// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Role represents the authorization level of a user account.
type Role string

const (
	// RoleUser is a regular website account.
	RoleUser Role = "user"
	// RoleAdmin can manage services, inquiries and content.
	RoleAdmin Role = "admin"
)

// User represents a website account. Regular users submit inquiries and
// manage their own profile; admins additionally manage the whole panel.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the display name of the account.
	Name string `gorm:"size:255;not null" json:"name"`
	// Email is the unique login address.
	Email string `gorm:"unique;size:255;not null" json:"email"`
	// Phone is an optional contact number.
	Phone string `gorm:"size:20" json:"phone"`
	// Password is the Argon2id hashed password. Never serialized.
	Password string `gorm:"size:255" json:"-"`
	// Role decides panel access (user or admin).
	Role Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	// Active indicates whether the account can log in.
	Active bool `gorm:"default:true" json:"is_active"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account has panel access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
