package user

import (
	"time"

	"skill-swap/internal/domain/skill"

	"github.com/google/uuid"
)

// AnonymousName is shown in previews for profiles without a display name.
const AnonymousName = "Anonymous User"

// Profile is the public-facing record of one externally authenticated user.
// UserID is the identity provider's opaque subject.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	Name            *string   `json:"name"`
	Location        *string   `json:"location"`
	ProfilePhotoURL *string   `json:"profile_photo_url"`
	Availability    []string  `json:"availability"`
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p Profile) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return AnonymousName
	}
	return *p.Name
}

type ProfileWithSkills struct {
	Profile
	OfferedSkills []skill.OfferedSkill `json:"offered_skills"`
	WantedSkills  []skill.WantedSkill  `json:"wanted_skills"`
}

// ProfileUpdate carries only the fields a caller wants to change; nil means keep.
type ProfileUpdate struct {
	Name            *string
	Location        *string
	ProfilePhotoURL *string
	Availability    *[]string
	IsPublic        *bool
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Location == nil && u.ProfilePhotoURL == nil && u.Availability == nil && u.IsPublic == nil
}

// Apply merges the provided fields over p.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.Name != nil {
		p.Name = u.Name
	}
	if u.Location != nil {
		p.Location = u.Location
	}
	if u.ProfilePhotoURL != nil {
		p.ProfilePhotoURL = u.ProfilePhotoURL
	}
	if u.Availability != nil {
		p.Availability = *u.Availability
	}
	if u.IsPublic != nil {
		p.IsPublic = *u.IsPublic
	}
	return p
}

// SkillMatch is another public user who offers something I want or wants something I offer.
type SkillMatch struct {
	UserID           string                 `json:"user_id"`
	Name             *string                `json:"name"`
	Location         *string                `json:"location"`
	ProfilePhotoURL  *string                `json:"profile_photo_url"`
	OfferedSkillID   uuid.UUID              `json:"offered_skill_id"`
	OfferedSkillName string                 `json:"offered_skill_name"`
	ProficiencyLevel skill.ProficiencyLevel `json:"proficiency_level"`
	WantedSkillID    uuid.UUID              `json:"wanted_skill_id"`
	WantedSkillName  string                 `json:"wanted_skill_name"`
	UrgencyLevel     skill.UrgencyLevel     `json:"urgency_level"`
}
