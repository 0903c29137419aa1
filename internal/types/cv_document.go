package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CVDocument is the persisted envelope around one CV data model. Owned by
// exactly one user; mutated and deleted only by its owner (hard delete).
type CVDocument struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	LayoutID  string    `json:"layout_id"`
	Data      CVData    `json:"data"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveCVRequest is the create/update payload for a CV document.
type SaveCVRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	LayoutID string `json:"layout_id" validate:"required"`
	Data     CVData `json:"data"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

// Validate validates the SaveCVRequest, including the embedded data model.
func (r *SaveCVRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.Data.Validate()
}

// Layout is a selectable layout variant record.
type Layout struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PreviewImage string    `json:"preview_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
