package dto

import "skill-swap/internal/domain/skill"

type SkillSearchResponse struct {
	Skills []skill.Skill `json:"skills"`
	Total  int           `json:"total"`
}

type SkillListResponse struct {
	Skills []skill.Skill `json:"skills"`
	Total  int           `json:"total"`
}
