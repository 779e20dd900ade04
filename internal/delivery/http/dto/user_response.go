package dto

import "skill-swap/internal/domain/user"

type ProfileListResponse struct {
	Users  []user.Profile `json:"users"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type SkillMatchesResponse struct {
	Matches []user.SkillMatch `json:"matches"`
	Total   int               `json:"total"`
}
