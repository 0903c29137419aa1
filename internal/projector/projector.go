package projector

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Known layout identifiers. The set is closed; selecting anything else
// yields the fallback document rather than an error.
const (
	LayoutA = "layout-a" // two-column with sidebar
	LayoutB = "layout-b" // photo-header card layout
	LayoutC = "layout-c" // single-column chronological
)

// OngoingMarker is rendered in place of a missing end date.
const OngoingMarker = "Present"

// FallbackMessage is the user-visible output for unknown layout identifiers.
const FallbackMessage = "Template does not exist."

// RenderedDocument is the result of projecting a CV data model through one
// layout variant. It has no further data dependency: the HTML is a pure
// function of the input.
type RenderedDocument struct {
	LayoutID string `json:"layout_id"`
	HTML     string `json:"html"`
	// Missing is true when the layout identifier is outside the known set.
	// This is a normal output state, not an error.
	Missing bool `json:"missing,omitempty"`
}

// Projector is one visual layout variant. Each variant independently
// implements the full section mapping and shares no intermediate
// representation with the others.
type Projector interface {
	ID() string
	Name() string
	Description() string
	Render(data *types.CVData) string
}

// variants holds the known projectors in presentation order.
var variants = []Projector{
	&layoutA{},
	&layoutB{},
	&layoutC{},
}

// Variants returns the known layout variants in presentation order.
func Variants() []Projector {
	out := make([]Projector, len(variants))
	copy(out, variants)
	return out
}

// Lookup finds a projector by identifier. Matching is case-insensitive.
func Lookup(layoutID string) (Projector, bool) {
	id := strings.ToLower(strings.TrimSpace(layoutID))
	for _, v := range variants {
		if v.ID() == id {
			return v, true
		}
	}
	return nil, false
}

// Project maps a CV data model into the layout variant named by layoutID.
// It never fails on data-shape problems: nil or partial data degrades to
// placeholder content, and an unknown identifier produces the designated
// fallback document with Missing set.
func Project(data *types.CVData, layoutID string) *RenderedDocument {
	if data == nil {
		data = &types.CVData{}
	}

	v, ok := Lookup(layoutID)
	if !ok {
		return &RenderedDocument{
			LayoutID: layoutID,
			HTML:     fmt.Sprintf(`<div class="template-missing"><p>%s</p></div>`, FallbackMessage),
			Missing:  true,
		}
	}

	return &RenderedDocument{
		LayoutID: v.ID(),
		HTML:     v.Render(data),
	}
}

// fullName joins first and last name, falling back to a placeholder when
// both are blank.
func fullName(b types.BasicDetails) string {
	name := strings.TrimSpace(strings.TrimSpace(b.FirstName) + " " + strings.TrimSpace(b.LastName))
	if name == "" {
		return "Your Name"
	}
	return name
}

// initials derives an avatar placeholder glyph from a resolved full name.
func initials(name string) string {
	var out strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			out.WriteRune(r)
			break
		}
		if out.Len() >= 2 {
			break
		}
	}
	if out.Len() == 0 {
		return "?"
	}
	return strings.ToUpper(out.String())
}

// joinPresent joins the non-empty parts with a separator.
func joinPresent(sep string, parts ...string) string {
	present := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, sep)
}

// dateSpan formats a start/end pair, substituting the ongoing marker for a
// missing end date.
func dateSpan(start, end string) string {
	if end == "" {
		end = OngoingMarker
	}
	return start + " - " + end
}
