package repository

import (
	"strings"

	sqrl "github.com/Masterminds/squirrel"
)

// ProfileFilter narrows the public profile listing. Blank fields are ignored.
type ProfileFilter struct {
	// SkillName matches offered or wanted skill names.
	SkillName string
	Location  string
	// Text matches name, location, or any offered or wanted skill name.
	Text string
}

const (
	offeredSkillExists = `EXISTS (SELECT 1 FROM user_offered_skills uos JOIN skills so ON so.id = uos.skill_id
		WHERE uos.profile_id = up.id AND so.skill_name ILIKE ?)`
	wantedSkillExists  = `EXISTS (SELECT 1 FROM user_wanted_skills uws JOIN skills sw ON sw.id = uws.skill_id
		WHERE uws.profile_id = up.id AND sw.skill_name ILIKE ?)`
)

// Where builds the predicate shared by the data and count queries, so both always
// carry the same clauses with the same arguments in the same order.
func (f ProfileFilter) Where() sqrl.And {
	where := sqrl.And{sqrl.Expr("up.is_public = ?", true)}

	if strings.TrimSpace(f.SkillName) != "" {
		pat := likePattern(f.SkillName)
		where = append(where, sqrl.Or{
			sqrl.Expr(offeredSkillExists, pat),
			sqrl.Expr(wantedSkillExists, pat),
		})
	}
	if strings.TrimSpace(f.Location) != "" {
		where = append(where, sqrl.Expr("up.location ILIKE ?", likePattern(f.Location)))
	}
	if strings.TrimSpace(f.Text) != "" {
		pat := likePattern(f.Text)
		where = append(where, sqrl.Or{
			sqrl.Expr("up.name ILIKE ?", pat),
			sqrl.Expr("up.location ILIKE ?", pat),
			sqrl.Expr(offeredSkillExists, pat),
			sqrl.Expr(wantedSkillExists, pat),
		})
	}
	return where
}

// ProfilePageQuery selects one page of matching profiles, newest first.
func ProfilePageQuery(f ProfileFilter, limit, offset int) sqrl.SelectBuilder {
	b := psql.Select("up.*").
		From(tProfiles + " up").
		Where(f.Where()).
		OrderBy("up.created_at DESC", "up.id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}

// ProfileCountQuery counts every profile ProfilePageQuery could return.
func ProfileCountQuery(f ProfileFilter) sqrl.SelectBuilder {
	return psql.Select("COUNT(*) AS total").
		From(tProfiles + " up").
		Where(f.Where())
}

// SkillUsageQuery counts, per skill, the distinct public profiles offering and wanting it.
// Unused skills are left out.
func SkillUsageQuery() sqrl.SelectBuilder {
	usage := psql.Select(
		"s.id",
		"s.skill_name",
		"s.category",
		`(SELECT COUNT(DISTINCT o.profile_id) FROM user_offered_skills o
			JOIN user_profiles p ON p.id = o.profile_id
			WHERE o.skill_id = s.id AND p.is_public = true) AS offered_count`,
		`(SELECT COUNT(DISTINCT w.profile_id) FROM user_wanted_skills w
			JOIN user_profiles p ON p.id = w.profile_id
			WHERE w.skill_id = s.id AND p.is_public = true) AS wanted_count`,
	).From("skills s")

	return psql.Select("u.*").
		FromSelect(usage, "u").
		Where("u.offered_count + u.wanted_count > 0").
		OrderBy("u.offered_count + u.wanted_count DESC", "u.skill_name ASC")
}
