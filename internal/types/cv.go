// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// BasicDetails holds the contact block of a CV.
// All fields are plain strings; format constraints live in the validator tags.
type BasicDetails struct {
	FirstName string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"omitempty,max=200"`
	City      string `json:"city" validate:"omitempty,max=50"`
	State     string `json:"state" validate:"omitempty,max=50"`
	Pincode   string `json:"pincode" validate:"omitempty,max=10"`
	Summary   string `json:"summary" validate:"omitempty,max=500"`
	Image     string `json:"image,omitempty" validate:"omitempty,url"`
}

// Education is a single education entry. Order within CVData.Education is
// the order the user entered entries and is preserved through save/load.
type Education struct {
	ID          string  `json:"id"`
	Degree      string  `json:"degree" validate:"omitempty,max=100"`
	Institution string  `json:"institution" validate:"omitempty,max=150"`
	Percentage  float64 `json:"percentage" validate:"gte=0,lte=100"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

// Experience is a single employment entry. A nil EndDate means currently
// employed and renders as an ongoing-employment marker.
type Experience struct {
	ID           string   `json:"id"`
	Organization string   `json:"organization" validate:"omitempty,max=150"`
	Position     string   `json:"position" validate:"omitempty,max=100"`
	Location     string   `json:"location" validate:"omitempty,max=100"`
	CTC          string   `json:"ctc" validate:"omitempty,max=50"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Technologies []string `json:"technologies"`
}

// Project is a single project entry.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"omitempty,max=150"`
	TeamSize     int      `json:"teamSize" validate:"gte=0,lte=1000"`
	Duration     string   `json:"duration" validate:"omitempty,max=50"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description" validate:"omitempty,max=1000"`
}

// Skill is a named skill with a 0-100 proficiency percentage.
// Duplicate skill names are permitted.
type Skill struct {
	ID         string  `json:"id"`
	Name       string  `json:"name" validate:"omitempty,max=100"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

// SocialProfile is a platform label plus URL.
type SocialProfile struct {
	ID       string `json:"id"`
	Platform string `json:"platform" validate:"omitempty,max=50"`
	URL      string `json:"url" validate:"omitempty,url,max=200"`
}

// CVData is the canonical structured representation of one résumé.
// It is embedded as the `data` payload of a CVDocument and never persisted
// on its own. All list orders are significant.
//
// Item IDs are client-generated and used only for edit-session list diffing
// (add/remove/reorder); they are not stable external keys.
type CVData struct {
	BasicDetails   BasicDetails    `json:"basicDetails"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	SocialProfiles []SocialProfile `json:"socialProfiles"`
}

// ItemID returns the edit-session identifier of the entry.
func (e Education) ItemID() string { return e.ID }

// ItemID returns the edit-session identifier of the entry.
func (e Experience) ItemID() string { return e.ID }

// ItemID returns the edit-session identifier of the entry.
func (p Project) ItemID() string { return p.ID }

// ItemID returns the edit-session identifier of the entry.
func (s Skill) ItemID() string { return s.ID }

// ItemID returns the edit-session identifier of the entry.
func (p SocialProfile) ItemID() string { return p.ID }

// dateLayout is the wire format for CV dates.
const dateLayout = "2006-01-02"

// Validate checks field constraints and date ordering. The model is allowed
// to be partially filled (the user is mid-edit), so empty fields pass; only
// present values are checked.
func (c *CVData) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	for i, edu := range c.Education {
		if err := checkDateOrder(edu.StartDate, edu.EndDate); err != nil {
			return fmt.Errorf("education[%d]: %w", i, err)
		}
	}
	for i, exp := range c.Experience {
		end := ""
		if exp.EndDate != nil {
			end = *exp.EndDate
		}
		if err := checkDateOrder(exp.StartDate, end); err != nil {
			return fmt.Errorf("experience[%d]: %w", i, err)
		}
	}
	return nil
}

// checkDateOrder verifies end is not before start. Either side may be empty
// (empty end means ongoing). Unparseable dates are rejected.
func checkDateOrder(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start date %q", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end date %q", end)
	}
	if e.Before(s) {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return nil
}
