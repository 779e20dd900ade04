package repository

import (
	"context"
	"strings"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// SkillRef names the catalog skill of an association: by id when set, otherwise by
// name (created on first use).
type SkillRef struct {
	ID       uuid.UUID
	Name     string
	Category *string
}

type AddOfferedSkill struct {
	ProfileID   uuid.UUID
	Skill       SkillRef
	Level       skill.ProficiencyLevel
	Description *string
}

type AddWantedSkill struct {
	ProfileID   uuid.UUID
	Skill       SkillRef
	Urgency     skill.UrgencyLevel
	Description *string
}

type UserSkillRepository interface {
	ListOffered(ctx context.Context, profileID uuid.UUID) ([]skill.OfferedSkill, error)
	ListWanted(ctx context.Context, profileID uuid.UUID) ([]skill.WantedSkill, error)
	ListOfferedByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]skill.OfferedSkill, error)
	ListWantedByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]skill.WantedSkill, error)
	GetOffered(ctx context.Context, id uuid.UUID) (skill.OfferedSkill, error)
	GetWanted(ctx context.Context, id uuid.UUID) (skill.WantedSkill, error)
	AddOffered(ctx context.Context, in AddOfferedSkill) (skill.OfferedSkill, error)
	AddWanted(ctx context.Context, in AddWantedSkill) (skill.WantedSkill, error)
	RemoveOffered(ctx context.Context, profileID, skillID uuid.UUID) error
	RemoveWanted(ctx context.Context, profileID, skillID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
	x  *QueryExecutor
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db, x: NewQueryExecutor(db)}
}

const (
	tOfferedSkills = "user_offered_skills"
	tWantedSkills  = "user_wanted_skills"
)

// assocSelect selects association rows of table joined with their catalog skill
// (columns prefixed "s_").
func assocSelect(table string) sqrl.SelectBuilder {
	return psql.Select(
		"a.*",
		"s.id AS s_id",
		"s.skill_name AS s_skill_name",
		"s.category AS s_category",
		"s.description AS s_description",
		"s.created_at AS s_created_at",
	).From(table + " a").Join("skills s ON s.id = a.skill_id")
}

func offeredWithSkill(r Row) skill.OfferedSkill {
	os := offeredFromRow(r, "")
	if r.Has("s_id") {
		s := skillFromRow(r, "s_")
		os.Skill = &s
	}
	return os
}

func wantedWithSkill(r Row) skill.WantedSkill {
	ws := wantedFromRow(r, "")
	if r.Has("s_id") {
		s := skillFromRow(r, "s_")
		ws.Skill = &s
	}
	return ws
}

func (r *PostgresUserSkillRepository) ListOffered(ctx context.Context, profileID uuid.UUID) ([]skill.OfferedSkill, error) {
	rows, err := r.x.Select(ctx, assocSelect(tOfferedSkills).
		Where(sqrl.Eq{"a.profile_id": profileID}).
		OrderBy("a.created_at DESC"))
	if err != nil {
		return nil, err
	}
	out := make([]skill.OfferedSkill, 0, len(rows))
	for _, row := range rows {
		out = append(out, offeredWithSkill(row))
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) ListWanted(ctx context.Context, profileID uuid.UUID) ([]skill.WantedSkill, error) {
	rows, err := r.x.Select(ctx, assocSelect(tWantedSkills).
		Where(sqrl.Eq{"a.profile_id": profileID}).
		OrderBy("a.created_at DESC"))
	if err != nil {
		return nil, err
	}
	out := make([]skill.WantedSkill, 0, len(rows))
	for _, row := range rows {
		out = append(out, wantedWithSkill(row))
	}
	return out, nil
}

// ListOfferedByProfiles loads the offered skills of several profiles in one round trip.
func (r *PostgresUserSkillRepository) ListOfferedByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]skill.OfferedSkill, error) {
	out := make(map[uuid.UUID][]skill.OfferedSkill, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}
	rows, err := r.x.Select(ctx, assocSelect(tOfferedSkills).
		Where("a.profile_id = ANY(?::uuid[])", uuidStrings(profileIDs)).
		OrderBy("a.created_at DESC"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		os := offeredWithSkill(row)
		out[os.ProfileID] = append(out[os.ProfileID], os)
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) ListWantedByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]skill.WantedSkill, error) {
	out := make(map[uuid.UUID][]skill.WantedSkill, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}
	rows, err := r.x.Select(ctx, assocSelect(tWantedSkills).
		Where("a.profile_id = ANY(?::uuid[])", uuidStrings(profileIDs)).
		OrderBy("a.created_at DESC"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ws := wantedWithSkill(row)
		out[ws.ProfileID] = append(out[ws.ProfileID], ws)
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) GetOffered(ctx context.Context, id uuid.UUID) (skill.OfferedSkill, error) {
	row, ok, err := r.x.SelectOne(ctx, assocSelect(tOfferedSkills).Where(sqrl.Eq{"a.id": id}))
	if err != nil {
		return skill.OfferedSkill{}, err
	}
	if !ok {
		return skill.OfferedSkill{}, skill.ErrNotFound
	}
	return offeredWithSkill(row), nil
}

func (r *PostgresUserSkillRepository) GetWanted(ctx context.Context, id uuid.UUID) (skill.WantedSkill, error) {
	row, ok, err := r.x.SelectOne(ctx, assocSelect(tWantedSkills).Where(sqrl.Eq{"a.id": id}))
	if err != nil {
		return skill.WantedSkill{}, err
	}
	if !ok {
		return skill.WantedSkill{}, skill.ErrNotFound
	}
	return wantedWithSkill(row), nil
}

// AddOffered resolves the skill and upserts the association in one transaction.
// Adding a skill the profile already offers updates its level and description.
func (r *PostgresUserSkillRepository) AddOffered(ctx context.Context, in AddOfferedSkill) (skill.OfferedSkill, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return skill.OfferedSkill{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	x := NewQueryExecutor(tx)
	s, err := resolveSkill(ctx, x, in.Skill)
	if err != nil {
		return skill.OfferedSkill{}, err
	}

	row, ok, err := x.SelectOne(ctx, psql.Insert(tOfferedSkills).
		Columns("profile_id", "skill_id", "proficiency_level", "description").
		Values(in.ProfileID, s.ID, string(in.Level), in.Description).
		Suffix(`ON CONFLICT (profile_id, skill_id) DO UPDATE SET
			proficiency_level = EXCLUDED.proficiency_level,
			description = EXCLUDED.description
		RETURNING *`))
	if err != nil {
		return skill.OfferedSkill{}, mapAssocErr(err)
	}
	if !ok {
		return skill.OfferedSkill{}, skill.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return skill.OfferedSkill{}, err
	}

	os := offeredFromRow(row, "")
	os.Skill = &s
	return os, nil
}

func (r *PostgresUserSkillRepository) AddWanted(ctx context.Context, in AddWantedSkill) (skill.WantedSkill, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return skill.WantedSkill{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	x := NewQueryExecutor(tx)
	s, err := resolveSkill(ctx, x, in.Skill)
	if err != nil {
		return skill.WantedSkill{}, err
	}

	row, ok, err := x.SelectOne(ctx, psql.Insert(tWantedSkills).
		Columns("profile_id", "skill_id", "urgency_level", "description").
		Values(in.ProfileID, s.ID, string(in.Urgency), in.Description).
		Suffix(`ON CONFLICT (profile_id, skill_id) DO UPDATE SET
			urgency_level = EXCLUDED.urgency_level,
			description = EXCLUDED.description
		RETURNING *`))
	if err != nil {
		return skill.WantedSkill{}, mapAssocErr(err)
	}
	if !ok {
		return skill.WantedSkill{}, skill.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return skill.WantedSkill{}, err
	}

	ws := wantedFromRow(row, "")
	ws.Skill = &s
	return ws, nil
}

// RemoveOffered is idempotent: removing an absent association succeeds.
func (r *PostgresUserSkillRepository) RemoveOffered(ctx context.Context, profileID, skillID uuid.UUID) error {
	_, err := r.x.Exec(ctx, psql.Delete(tOfferedSkills).
		Where(sqrl.Eq{"profile_id": profileID, "skill_id": skillID}))
	return err
}

func (r *PostgresUserSkillRepository) RemoveWanted(ctx context.Context, profileID, skillID uuid.UUID) error {
	_, err := r.x.Exec(ctx, psql.Delete(tWantedSkills).
		Where(sqrl.Eq{"profile_id": profileID, "skill_id": skillID}))
	return err
}

func resolveSkill(ctx context.Context, x *QueryExecutor, ref SkillRef) (skill.Skill, error) {
	if ref.ID != uuid.Nil {
		row, ok, err := x.SelectOne(ctx, skillSelect().Where(sqrl.Eq{"id": ref.ID}))
		if err != nil {
			return skill.Skill{}, err
		}
		if !ok {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skillFromRow(row, ""), nil
	}
	if strings.TrimSpace(ref.Name) == "" {
		return skill.Skill{}, skill.ErrNotFound
	}
	return getOrCreateSkill(ctx, x, NewSkill{Name: ref.Name, Category: ref.Category})
}

func mapAssocErr(err error) error {
	if pgCode(err) == pgForeignKeyViolation {
		return skill.ErrNotFound
	}
	return err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
