package skill

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to skills created implicitly by name.
const DefaultCategory = "Other"

type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"skill_name"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// OfferedSkill is a profile's claim that it can teach Skill at Level.
type OfferedSkill struct {
	ID          uuid.UUID        `json:"id"`
	ProfileID   uuid.UUID        `json:"profile_id"`
	UserID      string           `json:"user_id,omitempty"`
	SkillID     uuid.UUID        `json:"skill_id"`
	Level       ProficiencyLevel `json:"proficiency_level"`
	Description *string          `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	Skill       *Skill           `json:"skill,omitempty"`
}

// WantedSkill is a profile's request to learn Skill with some Urgency.
type WantedSkill struct {
	ID          uuid.UUID    `json:"id"`
	ProfileID   uuid.UUID    `json:"profile_id"`
	UserID      string       `json:"user_id,omitempty"`
	SkillID     uuid.UUID    `json:"skill_id"`
	Urgency     UrgencyLevel `json:"urgency_level"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	Skill       *Skill       `json:"skill,omitempty"`
}

// Usage is the popularity of one skill across public profiles.
type Usage struct {
	SkillID      uuid.UUID `json:"skill_id"`
	Name         string    `json:"skill_name"`
	Category     *string   `json:"category"`
	OfferedCount int       `json:"offered_count"`
	WantedCount  int       `json:"wanted_count"`
}

func (u Usage) TotalUsage() int {
	return u.OfferedCount + u.WantedCount
}
