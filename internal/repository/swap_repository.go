package repository

import (
	"context"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/swap"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const tSwaps = "skill_swaps"

type SwapRepository interface {
	Create(ctx context.Context, in swap.NewSwap) (swap.Swap, error)
	GetByID(ctx context.Context, id uuid.UUID) (swap.Swap, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (swap.WithDetails, error)
	List(ctx context.Context, f swap.ListFilter) ([]swap.Swap, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status swap.Status, responseMessage *string) (swap.Swap, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context, userID string) (swap.Statistics, error)
}

type PostgresSwapRepository struct {
	x *QueryExecutor
}

func NewPostgresSwapRepository(db database.DB) *PostgresSwapRepository {
	return &PostgresSwapRepository{x: NewQueryExecutor(db)}
}

func (r *PostgresSwapRepository) Create(ctx context.Context, in swap.NewSwap) (swap.Swap, error) {
	row, err := r.x.InsertReturning(ctx, tSwaps, map[string]any{
		"requester_id":     in.RequesterID,
		"provider_id":      in.ProviderID,
		"offered_skill_id": in.OfferedSkillID,
		"wanted_skill_id":  in.WantedSkillID,
		"status":           string(swap.StatusPending),
		"message":          in.Message,
	})
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return swap.Swap{}, swap.ErrInvalidReference
		}
		return swap.Swap{}, err
	}
	return swapFromRow(row, ""), nil
}

func (r *PostgresSwapRepository) GetByID(ctx context.Context, id uuid.UUID) (swap.Swap, error) {
	row, ok, err := r.x.SelectOne(ctx, psql.Select("*").From(tSwaps).Where(sqrl.Eq{"id": id}))
	if err != nil {
		return swap.Swap{}, err
	}
	if !ok {
		return swap.Swap{}, swap.ErrNotFound
	}
	return swapFromRow(row, ""), nil
}

// detailColumns aliases every joined column under the prefix its hydrator expects.
var detailColumns = []string{
	"ss.*",

	"rp.id AS rp_id", "rp.user_id AS rp_user_id", "rp.name AS rp_name",
	"rp.location AS rp_location", "rp.profile_photo_url AS rp_profile_photo_url",
	"rp.availability AS rp_availability", "rp.is_public AS rp_is_public",
	"rp.created_at AS rp_created_at", "rp.updated_at AS rp_updated_at",

	"pp.id AS pp_id", "pp.user_id AS pp_user_id", "pp.name AS pp_name",
	"pp.location AS pp_location", "pp.profile_photo_url AS pp_profile_photo_url",
	"pp.availability AS pp_availability", "pp.is_public AS pp_is_public",
	"pp.created_at AS pp_created_at", "pp.updated_at AS pp_updated_at",

	"os.id AS os_id", "os.profile_id AS os_profile_id", "os.skill_id AS os_skill_id",
	"os.proficiency_level AS os_proficiency_level", "os.description AS os_description",
	"os.created_at AS os_created_at",
	"oss.id AS oss_id", "oss.skill_name AS oss_skill_name", "oss.category AS oss_category",
	"oss.description AS oss_description", "oss.created_at AS oss_created_at",

	"ws.id AS ws_id", "ws.profile_id AS ws_profile_id", "ws.skill_id AS ws_skill_id",
	"ws.urgency_level AS ws_urgency_level", "ws.description AS ws_description",
	"ws.created_at AS ws_created_at",
	"wss.id AS wss_id", "wss.skill_name AS wss_skill_name", "wss.category AS wss_category",
	"wss.description AS wss_description", "wss.created_at AS wss_created_at",
}

func (r *PostgresSwapRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (swap.WithDetails, error) {
	b := psql.Select(detailColumns...).
		From(tSwaps + " ss").
		LeftJoin("user_profiles rp ON rp.user_id = ss.requester_id").
		LeftJoin("user_profiles pp ON pp.user_id = ss.provider_id").
		LeftJoin("user_offered_skills os ON os.id = ss.offered_skill_id").
		LeftJoin("skills oss ON oss.id = os.skill_id").
		LeftJoin("user_wanted_skills ws ON ws.id = ss.wanted_skill_id").
		LeftJoin("skills wss ON wss.id = ws.skill_id").
		Where(sqrl.Eq{"ss.id": id})

	row, ok, err := r.x.SelectOne(ctx, b)
	if err != nil {
		return swap.WithDetails{}, err
	}
	if !ok {
		return swap.WithDetails{}, swap.ErrNotFound
	}
	return swapDetailsFromRow(row), nil
}

func listFilterWhere(f swap.ListFilter) sqrl.And {
	where := sqrl.And{}
	switch f.Role {
	case swap.RoleRequester:
		where = append(where, sqrl.Eq{"requester_id": f.UserID})
	case swap.RoleProvider:
		where = append(where, sqrl.Eq{"provider_id": f.UserID})
	default:
		where = append(where, sqrl.Or{
			sqrl.Eq{"requester_id": f.UserID},
			sqrl.Eq{"provider_id": f.UserID},
		})
	}
	if f.Status != nil {
		where = append(where, sqrl.Eq{"status": string(*f.Status)})
	}
	return where
}

// List returns the user's swaps, newest first.
func (r *PostgresSwapRepository) List(ctx context.Context, f swap.ListFilter) ([]swap.Swap, error) {
	rows, err := r.x.Select(ctx, psql.Select("*").From(tSwaps).
		Where(listFilterWhere(f)).
		OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		return nil, err
	}
	out := make([]swap.Swap, 0, len(rows))
	for _, row := range rows {
		out = append(out, swapFromRow(row, ""))
	}
	return out, nil
}

// UpdateStatus stores status as given. The response message is kept when nil.
func (r *PostgresSwapRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status swap.Status, responseMessage *string) (swap.Swap, error) {
	fields := map[string]any{
		"status":     string(status),
		"updated_at": sqrl.Expr("now()"),
	}
	if responseMessage != nil {
		fields["response_message"] = *responseMessage
	}
	row, ok, err := r.x.UpdateReturning(ctx, tSwaps, fields, sqrl.Eq{"id": id})
	if err != nil {
		return swap.Swap{}, err
	}
	if !ok {
		return swap.Swap{}, swap.ErrNotFound
	}
	return swapFromRow(row, ""), nil
}

func (r *PostgresSwapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.x.Exec(ctx, psql.Delete(tSwaps).Where(sqrl.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return swap.ErrNotFound
	}
	return nil
}

func (r *PostgresSwapRepository) Statistics(ctx context.Context, userID string) (swap.Statistics, error) {
	rows, err := r.x.Select(ctx, psql.Select("status", "COUNT(*) AS count").From(tSwaps).
		Where(listFilterWhere(swap.ListFilter{UserID: userID})).
		GroupBy("status"))
	if err != nil {
		return swap.Statistics{}, err
	}
	var st swap.Statistics
	for _, row := range rows {
		st.Add(swap.Status(row.String("status")), row.Int("count"))
	}
	return st, nil
}
