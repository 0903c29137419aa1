package editor

import (
	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// List-backed sections are diffed by the client-generated item ID. The ID
// only identifies an item within this edit session; it carries no meaning
// after persistence.

type listItem interface {
	ItemID() string
}

// removeByID deletes the item whose ID matches, preserving order of the
// remaining items.
func removeByID[T listItem](list []T, id string) ([]T, bool) {
	for i, item := range list {
		if item.ItemID() == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// replaceByID swaps the stored item with the same ID.
func replaceByID[T listItem](list []T, item T) bool {
	for i, existing := range list {
		if existing.ItemID() == item.ItemID() {
			list[i] = item
			return true
		}
	}
	return false
}

// moveByID reorders the item to the target position, clamped to the list
// bounds. Relative order of the other items is preserved.
func moveByID[T listItem](list []T, id string, to int) bool {
	from := -1
	for i, item := range list {
		if item.ItemID() == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to > len(list)-1 {
		to = len(list) - 1
	}
	item := list[from]
	if from < to {
		copy(list[from:], list[from+1:to+1])
	} else {
		copy(list[to+1:], list[to:from])
	}
	list[to] = item
	return true
}

func ensureItemID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// --- education -------------------------------------------------------------

// AddEducation appends an entry, generating an item ID when absent, and
// returns the ID.
func (s *Session) AddEducation(e types.Education) string {
	e.ID = ensureItemID(e.ID)
	s.data.Education = append(s.data.Education, e)
	s.markDirty()
	return e.ID
}

// UpdateEducation replaces the entry with the same item ID.
func (s *Session) UpdateEducation(e types.Education) bool {
	if !replaceByID(s.data.Education, e) {
		return false
	}
	s.markDirty()
	return true
}

// RemoveEducation deletes the entry with the given item ID.
func (s *Session) RemoveEducation(id string) bool {
	list, ok := removeByID(s.data.Education, id)
	if !ok {
		return false
	}
	s.data.Education = list
	s.markDirty()
	return true
}

// MoveEducation reorders the entry to the target position.
func (s *Session) MoveEducation(id string, to int) bool {
	if !moveByID(s.data.Education, id, to) {
		return false
	}
	s.markDirty()
	return true
}

// --- experience ------------------------------------------------------------

// AddExperience appends an entry, generating an item ID when absent, and
// returns the ID.
func (s *Session) AddExperience(e types.Experience) string {
	e.ID = ensureItemID(e.ID)
	s.data.Experience = append(s.data.Experience, e)
	s.markDirty()
	return e.ID
}

// UpdateExperience replaces the entry with the same item ID.
func (s *Session) UpdateExperience(e types.Experience) bool {
	if !replaceByID(s.data.Experience, e) {
		return false
	}
	s.markDirty()
	return true
}

// RemoveExperience deletes the entry with the given item ID.
func (s *Session) RemoveExperience(id string) bool {
	list, ok := removeByID(s.data.Experience, id)
	if !ok {
		return false
	}
	s.data.Experience = list
	s.markDirty()
	return true
}

// MoveExperience reorders the entry to the target position.
func (s *Session) MoveExperience(id string, to int) bool {
	if !moveByID(s.data.Experience, id, to) {
		return false
	}
	s.markDirty()
	return true
}

// --- projects --------------------------------------------------------------

// AddProject appends an entry, generating an item ID when absent, and
// returns the ID.
func (s *Session) AddProject(p types.Project) string {
	p.ID = ensureItemID(p.ID)
	s.data.Projects = append(s.data.Projects, p)
	s.markDirty()
	return p.ID
}

// UpdateProject replaces the entry with the same item ID.
func (s *Session) UpdateProject(p types.Project) bool {
	if !replaceByID(s.data.Projects, p) {
		return false
	}
	s.markDirty()
	return true
}

// RemoveProject deletes the entry with the given item ID.
func (s *Session) RemoveProject(id string) bool {
	list, ok := removeByID(s.data.Projects, id)
	if !ok {
		return false
	}
	s.data.Projects = list
	s.markDirty()
	return true
}

// MoveProject reorders the entry to the target position.
func (s *Session) MoveProject(id string, to int) bool {
	if !moveByID(s.data.Projects, id, to) {
		return false
	}
	s.markDirty()
	return true
}

// --- skills ----------------------------------------------------------------

// AddSkill appends an entry, generating an item ID when absent, and returns
// the ID. Duplicate skill names are allowed.
func (s *Session) AddSkill(sk types.Skill) string {
	sk.ID = ensureItemID(sk.ID)
	s.data.Skills = append(s.data.Skills, sk)
	s.markDirty()
	return sk.ID
}

// UpdateSkill replaces the entry with the same item ID.
func (s *Session) UpdateSkill(sk types.Skill) bool {
	if !replaceByID(s.data.Skills, sk) {
		return false
	}
	s.markDirty()
	return true
}

// RemoveSkill deletes the entry with the given item ID.
func (s *Session) RemoveSkill(id string) bool {
	list, ok := removeByID(s.data.Skills, id)
	if !ok {
		return false
	}
	s.data.Skills = list
	s.markDirty()
	return true
}

// MoveSkill reorders the entry to the target position.
func (s *Session) MoveSkill(id string, to int) bool {
	if !moveByID(s.data.Skills, id, to) {
		return false
	}
	s.markDirty()
	return true
}

// --- social profiles -------------------------------------------------------

// AddSocialProfile appends an entry, generating an item ID when absent, and
// returns the ID.
func (s *Session) AddSocialProfile(p types.SocialProfile) string {
	p.ID = ensureItemID(p.ID)
	s.data.SocialProfiles = append(s.data.SocialProfiles, p)
	s.markDirty()
	return p.ID
}

// UpdateSocialProfile replaces the entry with the same item ID.
func (s *Session) UpdateSocialProfile(p types.SocialProfile) bool {
	if !replaceByID(s.data.SocialProfiles, p) {
		return false
	}
	s.markDirty()
	return true
}

// RemoveSocialProfile deletes the entry with the given item ID.
func (s *Session) RemoveSocialProfile(id string) bool {
	list, ok := removeByID(s.data.SocialProfiles, id)
	if !ok {
		return false
	}
	s.data.SocialProfiles = list
	s.markDirty()
	return true
}

// MoveSocialProfile reorders the entry to the target position.
func (s *Session) MoveSocialProfile(id string, to int) bool {
	if !moveByID(s.data.SocialProfiles, id, to) {
		return false
	}
	s.markDirty()
	return true
}
