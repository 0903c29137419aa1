package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// User represents a user row. PasswordHash never leaves this package in
// serialized form.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash"`
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	AuthProvider string    `json:"auth_provider"`
	ProviderID   *string   `json:"-" db:"provider_id"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CVDocument represents a stored CV document row. Data is the embedded CV
// data model, stored as JSONB.
type CVDocument struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Title     string       `json:"title"`
	LayoutID  string       `json:"layout_id"`
	Data      types.CVData `json:"data"`
	IsPublic  bool         `json:"is_public"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Layout represents a selectable layout record.
type Layout struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PreviewImage string    `json:"preview_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
