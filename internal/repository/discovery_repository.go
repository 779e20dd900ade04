package repository

import (
	"context"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
)

type DiscoveryRepository interface {
	ListProfiles(ctx context.Context, f ProfileFilter, limit, offset int) ([]user.Profile, error)
	CountProfiles(ctx context.Context, f ProfileFilter) (int, error)
	SkillUsage(ctx context.Context) ([]skill.Usage, error)
}

type PostgresDiscoveryRepository struct {
	x *QueryExecutor
}

func NewPostgresDiscoveryRepository(db database.DB) *PostgresDiscoveryRepository {
	return &PostgresDiscoveryRepository{x: NewQueryExecutor(db)}
}

func (r *PostgresDiscoveryRepository) ListProfiles(ctx context.Context, f ProfileFilter, limit, offset int) ([]user.Profile, error) {
	rows, err := r.x.Select(ctx, ProfilePageQuery(f, limit, offset))
	if err != nil {
		return nil, err
	}
	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row, ""))
	}
	return out, nil
}

func (r *PostgresDiscoveryRepository) CountProfiles(ctx context.Context, f ProfileFilter) (int, error) {
	row, ok, err := r.x.SelectOne(ctx, ProfileCountQuery(f))
	if err != nil || !ok {
		return 0, err
	}
	return row.Int("total"), nil
}

func (r *PostgresDiscoveryRepository) SkillUsage(ctx context.Context) ([]skill.Usage, error) {
	rows, err := r.x.Select(ctx, SkillUsageQuery())
	if err != nil {
		return nil, err
	}
	out := make([]skill.Usage, 0, len(rows))
	for _, row := range rows {
		out = append(out, skill.Usage{
			SkillID:      row.UUID("id"),
			Name:         row.String("skill_name"),
			Category:     row.StringPtr("category"),
			OfferedCount: row.Int("offered_count"),
			WantedCount:  row.Int("wanted_count"),
		})
	}
	return out, nil
}
