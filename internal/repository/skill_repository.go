package repository

import (
	"context"
	"strings"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type NewSkill struct {
	Name        string
	Category    *string
	Description *string
}

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	ListByCategory(ctx context.Context, category string) ([]skill.Skill, error)
	Search(ctx context.Context, term string, limit int) ([]skill.Skill, error)
	GetByName(ctx context.Context, name string) (skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	Create(ctx context.Context, s NewSkill) (skill.Skill, error)
	GetOrCreate(ctx context.Context, s NewSkill) (skill.Skill, error)
	Count(ctx context.Context) (int, error)
}

type PostgresSkillRepository struct {
	db database.DB
	x  *QueryExecutor
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db, x: NewQueryExecutor(db)}
}

func skillSelect() sqrl.SelectBuilder {
	return psql.Select("id", "skill_name", "category", "description", "created_at").From("skills")
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	return r.selectSkills(ctx, skillSelect().OrderBy("skill_name ASC"))
}

func (r *PostgresSkillRepository) ListByCategory(ctx context.Context, category string) ([]skill.Skill, error) {
	return r.selectSkills(ctx, skillSelect().
		Where(sqrl.Eq{"category": category}).
		OrderBy("skill_name ASC"))
}

// Search matches term case-insensitively against name and description.
func (r *PostgresSkillRepository) Search(ctx context.Context, term string, limit int) ([]skill.Skill, error) {
	if limit <= 0 {
		limit = 10
	}
	b := skillSelect()
	if strings.TrimSpace(term) != "" {
		pat := likePattern(term)
		b = b.Where(sqrl.Or{
			sqrl.Expr("skill_name ILIKE ?", pat),
			sqrl.Expr("description ILIKE ?", pat),
		})
	}
	return r.selectSkills(ctx, b.OrderBy("skill_name ASC").Limit(uint64(limit)))
}

func (r *PostgresSkillRepository) GetByName(ctx context.Context, name string) (skill.Skill, error) {
	return r.selectOne(ctx, skillSelect().Where(sqrl.Eq{"skill_name": strings.TrimSpace(name)}))
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	return r.selectOne(ctx, skillSelect().Where(sqrl.Eq{"id": id}))
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s NewSkill) (skill.Skill, error) {
	row, err := r.x.InsertReturning(ctx, "skills", map[string]any{
		"skill_name":  strings.TrimSpace(s.Name),
		"category":    s.Category,
		"description": s.Description,
	})
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return skill.Skill{}, skill.ErrAlreadyExists
		}
		return skill.Skill{}, err
	}
	return skillFromRow(row, ""), nil
}

func (r *PostgresSkillRepository) GetOrCreate(ctx context.Context, s NewSkill) (skill.Skill, error) {
	return getOrCreateSkill(ctx, r.x, s)
}

func (r *PostgresSkillRepository) Count(ctx context.Context) (int, error) {
	row, ok, err := r.x.SelectOne(ctx, psql.Select("COUNT(*) AS total").From("skills"))
	if err != nil || !ok {
		return 0, err
	}
	return row.Int("total"), nil
}

func (r *PostgresSkillRepository) selectSkills(ctx context.Context, b sqrl.SelectBuilder) ([]skill.Skill, error) {
	rows, err := r.x.Select(ctx, b)
	if err != nil {
		return nil, err
	}
	out := make([]skill.Skill, 0, len(rows))
	for _, row := range rows {
		out = append(out, skillFromRow(row, ""))
	}
	return out, nil
}

func (r *PostgresSkillRepository) selectOne(ctx context.Context, b sqrl.SelectBuilder) (skill.Skill, error) {
	row, ok, err := r.x.SelectOne(ctx, b)
	if err != nil {
		return skill.Skill{}, err
	}
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return skillFromRow(row, ""), nil
}

// getOrCreateSkill is a single upsert so concurrent callers converge on one row.
// An existing skill keeps its category and description.
func getOrCreateSkill(ctx context.Context, x *QueryExecutor, s NewSkill) (skill.Skill, error) {
	category := s.Category
	if category == nil || strings.TrimSpace(*category) == "" {
		c := skill.DefaultCategory
		category = &c
	}
	b := psql.Insert("skills").
		Columns("skill_name", "category", "description").
		Values(strings.TrimSpace(s.Name), category, s.Description).
		Suffix("ON CONFLICT (skill_name) DO UPDATE SET skill_name = EXCLUDED.skill_name RETURNING *")

	row, ok, err := x.SelectOne(ctx, b)
	if err != nil {
		return skill.Skill{}, err
	}
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return skillFromRow(row, ""), nil
}
