package swap

import (
	"time"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

// Swap is an exchange request: the requester wants to learn the provider's offered skill
// and names one of their own wanted skills as the subject of the exchange.
type Swap struct {
	ID              uuid.UUID `json:"id"`
	RequesterID     string    `json:"requester_id"`
	ProviderID      string    `json:"provider_id"`
	OfferedSkillID  uuid.UUID `json:"offered_skill_id"`
	WantedSkillID   uuid.UUID `json:"wanted_skill_id"`
	Status          Status    `json:"status"`
	Message         *string   `json:"message"`
	ResponseMessage *string   `json:"response_message"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s Swap) HasParticipant(userID string) bool {
	return userID != "" && (s.RequesterID == userID || s.ProviderID == userID)
}

// WithDetails is a swap joined with both profiles and both skill associations.
// Sub-objects are nil when the referenced row no longer exists.
type WithDetails struct {
	Swap
	RequesterProfile *user.Profile       `json:"requester_profile"`
	ProviderProfile  *user.Profile       `json:"provider_profile"`
	OfferedSkill     *skill.OfferedSkill `json:"offered_skill"`
	WantedSkill      *skill.WantedSkill  `json:"wanted_skill"`
}

type NewSwap struct {
	RequesterID    string
	ProviderID     string
	OfferedSkillID uuid.UUID
	WantedSkillID  uuid.UUID
	Message        *string
}

// Role narrows a user's swap listing.
type Role string

const (
	RoleAny       Role = ""
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAny, "any", "all":
		return RoleAny, true
	case RoleRequester:
		return RoleRequester, true
	case RoleProvider:
		return RoleProvider, true
	default:
		return RoleAny, false
	}
}

type ListFilter struct {
	UserID string
	Status *Status
	Role   Role
}

// Statistics counts a user's swaps per status. Total is the sum of the others.
type Statistics struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// Add records n swaps in status. Unknown statuses only count toward Total.
func (s *Statistics) Add(status Status, n int) {
	switch status {
	case StatusPending:
		s.Pending += n
	case StatusAccepted:
		s.Accepted += n
	case StatusRejected:
		s.Rejected += n
	case StatusCompleted:
		s.Completed += n
	case StatusCancelled:
		s.Cancelled += n
	}
	s.Total += n
}
