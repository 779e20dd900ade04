package repository

import (
	"errors"
	"strings"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// likePattern wraps s for a substring ILIKE match, escaping wildcard characters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// The hydrators below read columns under an optional prefix so a joined row can carry
// several entities side by side.

func skillFromRow(r Row, p string) skill.Skill {
	return skill.Skill{
		ID:          r.UUID(p + "id"),
		Name:        r.String(p + "skill_name"),
		Category:    r.StringPtr(p + "category"),
		Description: r.StringPtr(p + "description"),
		CreatedAt:   r.Time(p + "created_at"),
	}
}

func offeredFromRow(r Row, p string) skill.OfferedSkill {
	return skill.OfferedSkill{
		ID:          r.UUID(p + "id"),
		ProfileID:   r.UUID(p + "profile_id"),
		SkillID:     r.UUID(p + "skill_id"),
		Level:       skill.ProficiencyLevel(r.String(p + "proficiency_level")),
		Description: r.StringPtr(p + "description"),
		CreatedAt:   r.Time(p + "created_at"),
	}
}

func wantedFromRow(r Row, p string) skill.WantedSkill {
	return skill.WantedSkill{
		ID:          r.UUID(p + "id"),
		ProfileID:   r.UUID(p + "profile_id"),
		SkillID:     r.UUID(p + "skill_id"),
		Urgency:     skill.UrgencyLevel(r.String(p + "urgency_level")),
		Description: r.StringPtr(p + "description"),
		CreatedAt:   r.Time(p + "created_at"),
	}
}

func profileFromRow(r Row, p string) user.Profile {
	return user.Profile{
		ID:              r.UUID(p + "id"),
		UserID:          r.String(p + "user_id"),
		Name:            r.StringPtr(p + "name"),
		Location:        r.StringPtr(p + "location"),
		ProfilePhotoURL: r.StringPtr(p + "profile_photo_url"),
		Availability:    DecodeStringList(r.StringPtr(p + "availability")),
		IsPublic:        r.Bool(p + "is_public"),
		CreatedAt:       r.Time(p + "created_at"),
		UpdatedAt:       r.Time(p + "updated_at"),
	}
}

func swapFromRow(r Row, p string) swap.Swap {
	return swap.Swap{
		ID:              r.UUID(p + "id"),
		RequesterID:     r.String(p + "requester_id"),
		ProviderID:      r.String(p + "provider_id"),
		OfferedSkillID:  r.UUID(p + "offered_skill_id"),
		WantedSkillID:   r.UUID(p + "wanted_skill_id"),
		Status:          swap.Status(r.String(p + "status")),
		Message:         r.StringPtr(p + "message"),
		ResponseMessage: r.StringPtr(p + "response_message"),
		CreatedAt:       r.Time(p + "created_at"),
		UpdatedAt:       r.Time(p + "updated_at"),
	}
}

// swapDetailsFromRow rebuilds a swap and its joined sub-objects. Each sub-object is
// present only when its id column is non-NULL.
func swapDetailsFromRow(r Row) swap.WithDetails {
	d := swap.WithDetails{Swap: swapFromRow(r, "")}

	if r.Has("rp_id") {
		p := profileFromRow(r, "rp_")
		d.RequesterProfile = &p
	}
	if r.Has("pp_id") {
		p := profileFromRow(r, "pp_")
		d.ProviderProfile = &p
	}
	if r.Has("os_id") {
		os := offeredFromRow(r, "os_")
		os.UserID = d.ProviderID
		if r.Has("oss_id") {
			s := skillFromRow(r, "oss_")
			os.Skill = &s
		}
		d.OfferedSkill = &os
	}
	if r.Has("ws_id") {
		ws := wantedFromRow(r, "ws_")
		ws.UserID = d.RequesterID
		if r.Has("wss_id") {
			s := skillFromRow(r, "wss_")
			ws.Skill = &s
		}
		d.WantedSkill = &ws
	}
	return d
}
