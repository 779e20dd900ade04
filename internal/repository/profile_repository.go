package repository

import (
	"context"
	"strings"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"

	sqrl "github.com/Masterminds/squirrel"
)

const tProfiles = "user_profiles"

type NewProfile struct {
	UserID          string
	Name            *string
	Location        *string
	ProfilePhotoURL *string
	Availability    []string
	IsPublic        bool
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (user.Profile, error)
	Create(ctx context.Context, p NewProfile) (user.Profile, error)
	Update(ctx context.Context, userID string, upd user.ProfileUpdate) (user.Profile, error)
	ListPublic(ctx context.Context, limit, offset int) ([]user.Profile, error)
	SearchPublic(ctx context.Context, name, location string, limit, offset int) ([]user.Profile, error)
	Delete(ctx context.Context, userID string) error
	FindMatches(ctx context.Context, userID string) ([]user.SkillMatch, error)
}

type PostgresProfileRepository struct {
	x *QueryExecutor
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{x: NewQueryExecutor(db)}
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (user.Profile, error) {
	row, ok, err := r.x.SelectOne(ctx, psql.Select("*").From(tProfiles).Where(sqrl.Eq{"user_id": userID}))
	if err != nil {
		return user.Profile{}, err
	}
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return profileFromRow(row, ""), nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p NewProfile) (user.Profile, error) {
	availability, err := encodeAvailability(p.Availability)
	if err != nil {
		return user.Profile{}, err
	}
	row, err := r.x.InsertReturning(ctx, tProfiles, map[string]any{
		"user_id":           p.UserID,
		"name":              p.Name,
		"location":          p.Location,
		"profile_photo_url": p.ProfilePhotoURL,
		"availability":      availability,
		"is_public":         p.IsPublic,
	})
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return user.Profile{}, user.ErrAlreadyExists
		}
		return user.Profile{}, err
	}
	return profileFromRow(row, ""), nil
}

// Update writes only the provided fields. An empty update returns the stored profile.
func (r *PostgresProfileRepository) Update(ctx context.Context, userID string, upd user.ProfileUpdate) (user.Profile, error) {
	if upd.Empty() {
		return r.GetByUserID(ctx, userID)
	}

	fields := map[string]any{"updated_at": sqrl.Expr("now()")}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Location != nil {
		fields["location"] = *upd.Location
	}
	if upd.ProfilePhotoURL != nil {
		fields["profile_photo_url"] = *upd.ProfilePhotoURL
	}
	if upd.Availability != nil {
		availability, err := encodeAvailability(*upd.Availability)
		if err != nil {
			return user.Profile{}, err
		}
		if availability == nil {
			empty := "[]"
			availability = &empty
		}
		fields["availability"] = availability
	}
	if upd.IsPublic != nil {
		fields["is_public"] = *upd.IsPublic
	}

	row, ok, err := r.x.UpdateReturning(ctx, tProfiles, fields, sqrl.Eq{"user_id": userID})
	if err != nil {
		return user.Profile{}, err
	}
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return profileFromRow(row, ""), nil
}

func (r *PostgresProfileRepository) ListPublic(ctx context.Context, limit, offset int) ([]user.Profile, error) {
	return r.SearchPublic(ctx, "", "", limit, offset)
}

// SearchPublic filters public profiles by optional name and location substrings,
// newest first.
func (r *PostgresProfileRepository) SearchPublic(ctx context.Context, name, location string, limit, offset int) ([]user.Profile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	where := sqrl.And{sqrl.Eq{"is_public": true}}
	if strings.TrimSpace(name) != "" {
		where = append(where, sqrl.Expr("name ILIKE ?", likePattern(name)))
	}
	if strings.TrimSpace(location) != "" {
		where = append(where, sqrl.Expr("location ILIKE ?", likePattern(location)))
	}

	rows, err := r.x.Select(ctx, psql.Select("*").From(tProfiles).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)))
	if err != nil {
		return nil, err
	}
	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row, ""))
	}
	return out, nil
}

// Delete removes the profile; its skills and swaps go with it.
func (r *PostgresProfileRepository) Delete(ctx context.Context, userID string) error {
	n, err := r.x.Exec(ctx, psql.Delete(tProfiles).Where(sqrl.Eq{"user_id": userID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

const findMatchesSQL = `
SELECT DISTINCT
	up.user_id,
	up.name,
	up.location,
	up.profile_photo_url,
	uos.id AS offered_skill_id,
	s1.skill_name AS offered_skill_name,
	uos.proficiency_level,
	uws.id AS wanted_skill_id,
	s2.skill_name AS wanted_skill_name,
	uws.urgency_level
FROM user_profiles up
JOIN user_offered_skills uos ON uos.profile_id = up.id
JOIN skills s1 ON s1.id = uos.skill_id
JOIN user_wanted_skills uws ON uws.profile_id = up.id
JOIN skills s2 ON s2.id = uws.skill_id
WHERE up.is_public = true
	AND up.user_id <> $1
	AND (
		uos.skill_id IN (
			SELECT w.skill_id FROM user_wanted_skills w
			JOIN user_profiles me ON me.id = w.profile_id
			WHERE me.user_id = $1
		)
		OR uws.skill_id IN (
			SELECT o.skill_id FROM user_offered_skills o
			JOIN user_profiles me ON me.id = o.profile_id
			WHERE me.user_id = $1
		)
	)
ORDER BY up.name, up.user_id, offered_skill_name, wanted_skill_name`

// FindMatches lists public users who offer a skill userID wants or want a skill
// userID offers. The skill ids are association ids, ready to propose a swap.
func (r *PostgresProfileRepository) FindMatches(ctx context.Context, userID string) ([]user.SkillMatch, error) {
	rows, err := r.x.Execute(ctx, findMatchesSQL, userID)
	if err != nil {
		return nil, err
	}
	out := make([]user.SkillMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.SkillMatch{
			UserID:           row.String("user_id"),
			Name:             row.StringPtr("name"),
			Location:         row.StringPtr("location"),
			ProfilePhotoURL:  row.StringPtr("profile_photo_url"),
			OfferedSkillID:   row.UUID("offered_skill_id"),
			OfferedSkillName: row.String("offered_skill_name"),
			ProficiencyLevel: skill.ProficiencyLevel(row.String("proficiency_level")),
			WantedSkillID:    row.UUID("wanted_skill_id"),
			WantedSkillName:  row.String("wanted_skill_name"),
			UrgencyLevel:     skill.UrgencyLevel(row.String("urgency_level")),
		})
	}
	return out, nil
}

func encodeAvailability(list []string) (*string, error) {
	if list == nil {
		return nil, nil
	}
	return EncodeJSONField(list)
}
