package discovery

import (
	"time"

	"skill-swap/internal/domain/skill"
)

const (
	DefaultPageSize    = 12
	MaxPageSize        = 50
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	TopSkillsPerUser   = 3
	PopularSkillsLimit = 10
	TrendingSkillLimit = 5
)

type OfferedSkillPreview struct {
	SkillName        string                 `json:"skill_name"`
	Category         *string                `json:"category"`
	ProficiencyLevel skill.ProficiencyLevel `json:"proficiency_level"`
}

type WantedSkillPreview struct {
	SkillName    string             `json:"skill_name"`
	Category     *string            `json:"category"`
	UrgencyLevel skill.UrgencyLevel `json:"urgency_level"`
}

// UserPreview is the card shown for one public profile in browse and search results.
type UserPreview struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	Name             string                `json:"name"`
	Location         *string               `json:"location"`
	ProfilePhotoURL  *string               `json:"profile_photo_url"`
	TopOfferedSkills []OfferedSkillPreview `json:"top_offered_skills"`
	TopWantedSkills  []WantedSkillPreview  `json:"top_wanted_skills"`
	Availability     []string              `json:"availability"`
	IsPublic         bool                  `json:"is_public"`
	MemberSince      time.Time             `json:"member_since"`
}

type BrowseParams struct {
	Page           int
	PageSize       int
	SkillFilter    string
	LocationFilter string
}

type BrowseResult struct {
	Users []UserPreview `json:"users"`
	Pagination
}

type SearchParams struct {
	Query string
	Limit int
}

type SearchResult struct {
	Users          []UserPreview     `json:"users"`
	TotalCount     int               `json:"total_count"`
	SearchQuery    *string           `json:"search_query"`
	FiltersApplied map[string]string `json:"filters_applied"`
}

type PopularSkill struct {
	SkillName    string  `json:"skill_name"`
	Category     *string `json:"category"`
	OfferedCount int     `json:"offered_count"`
	WantedCount  int     `json:"wanted_count"`
	TotalUsage   int     `json:"total_usage"`
}

type PopularSkillsResult struct {
	PopularSkills  []PopularSkill `json:"popular_skills"`
	TrendingSkills []PopularSkill `json:"trending_skills"`
	TotalSkills    int            `json:"total_skills"`
}
