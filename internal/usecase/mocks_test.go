package usecase

import (
	"context"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

// mockProfileRepo keeps profiles in memory keyed by user id.
type mockProfileRepo struct {
	byUser    map[string]user.Profile
	created   []repository.NewProfile
	updates   []user.ProfileUpdate
	searchArg struct {
		name, location string
		limit, offset  int
	}
	matches []user.SkillMatch
	err     error
}

func newMockProfileRepo(profiles ...user.Profile) *mockProfileRepo {
	m := &mockProfileRepo{byUser: map[string]user.Profile{}}
	for _, p := range profiles {
		m.byUser[p.UserID] = p
	}
	return m
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (user.Profile, error) {
	if m.err != nil {
		return user.Profile{}, m.err
	}
	p, ok := m.byUser[userID]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Create(_ context.Context, p repository.NewProfile) (user.Profile, error) {
	if _, ok := m.byUser[p.UserID]; ok {
		return user.Profile{}, user.ErrAlreadyExists
	}
	m.created = append(m.created, p)
	out := user.Profile{
		ID:              uuid.New(),
		UserID:          p.UserID,
		Name:            p.Name,
		Location:        p.Location,
		ProfilePhotoURL: p.ProfilePhotoURL,
		Availability:    p.Availability,
		IsPublic:        p.IsPublic,
	}
	m.byUser[p.UserID] = out
	return out, nil
}

func (m *mockProfileRepo) Update(_ context.Context, userID string, upd user.ProfileUpdate) (user.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	m.updates = append(m.updates, upd)
	p = upd.Apply(p)
	m.byUser[userID] = p
	return p, nil
}

func (m *mockProfileRepo) ListPublic(ctx context.Context, limit, offset int) ([]user.Profile, error) {
	return m.SearchPublic(ctx, "", "", limit, offset)
}

func (m *mockProfileRepo) SearchPublic(_ context.Context, name, location string, limit, offset int) ([]user.Profile, error) {
	m.searchArg.name, m.searchArg.location = name, location
	m.searchArg.limit, m.searchArg.offset = limit, offset
	out := make([]user.Profile, 0)
	for _, p := range m.byUser {
		if p.IsPublic {
			out = append(out, p)
		}
	}
	return out, m.err
}

func (m *mockProfileRepo) Delete(_ context.Context, userID string) error {
	if _, ok := m.byUser[userID]; !ok {
		return user.ErrNotFound
	}
	delete(m.byUser, userID)
	return nil
}

func (m *mockProfileRepo) FindMatches(context.Context, string) ([]user.SkillMatch, error) {
	return m.matches, m.err
}

// mockUserSkillRepo holds associations by id.
type mockUserSkillRepo struct {
	offered map[uuid.UUID]skill.OfferedSkill
	wanted  map[uuid.UUID]skill.WantedSkill

	addedOffered []repository.AddOfferedSkill
	addedWanted  []repository.AddWantedSkill
	removed      []uuid.UUID
	batchCalls   int
	err          error
}

func newMockUserSkillRepo() *mockUserSkillRepo {
	return &mockUserSkillRepo{
		offered: map[uuid.UUID]skill.OfferedSkill{},
		wanted:  map[uuid.UUID]skill.WantedSkill{},
	}
}

func (m *mockUserSkillRepo) ListOffered(_ context.Context, profileID uuid.UUID) ([]skill.OfferedSkill, error) {
	out := make([]skill.OfferedSkill, 0)
	for _, os := range m.offered {
		if os.ProfileID == profileID {
			out = append(out, os)
		}
	}
	return out, m.err
}

func (m *mockUserSkillRepo) ListWanted(_ context.Context, profileID uuid.UUID) ([]skill.WantedSkill, error) {
	out := make([]skill.WantedSkill, 0)
	for _, ws := range m.wanted {
		if ws.ProfileID == profileID {
			out = append(out, ws)
		}
	}
	return out, m.err
}

func (m *mockUserSkillRepo) ListOfferedByProfiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.OfferedSkill, error) {
	m.batchCalls++
	out := map[uuid.UUID][]skill.OfferedSkill{}
	for _, id := range ids {
		for _, os := range m.offered {
			if os.ProfileID == id {
				out[id] = append(out[id], os)
			}
		}
	}
	return out, m.err
}

func (m *mockUserSkillRepo) ListWantedByProfiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.WantedSkill, error) {
	m.batchCalls++
	out := map[uuid.UUID][]skill.WantedSkill{}
	for _, id := range ids {
		for _, ws := range m.wanted {
			if ws.ProfileID == id {
				out[id] = append(out[id], ws)
			}
		}
	}
	return out, m.err
}

func (m *mockUserSkillRepo) GetOffered(_ context.Context, id uuid.UUID) (skill.OfferedSkill, error) {
	os, ok := m.offered[id]
	if !ok {
		return skill.OfferedSkill{}, skill.ErrNotFound
	}
	return os, nil
}

func (m *mockUserSkillRepo) GetWanted(_ context.Context, id uuid.UUID) (skill.WantedSkill, error) {
	ws, ok := m.wanted[id]
	if !ok {
		return skill.WantedSkill{}, skill.ErrNotFound
	}
	return ws, nil
}

func (m *mockUserSkillRepo) AddOffered(_ context.Context, in repository.AddOfferedSkill) (skill.OfferedSkill, error) {
	if m.err != nil {
		return skill.OfferedSkill{}, m.err
	}
	m.addedOffered = append(m.addedOffered, in)
	os := skill.OfferedSkill{ID: uuid.New(), ProfileID: in.ProfileID, SkillID: in.Skill.ID, Level: in.Level}
	m.offered[os.ID] = os
	return os, nil
}

func (m *mockUserSkillRepo) AddWanted(_ context.Context, in repository.AddWantedSkill) (skill.WantedSkill, error) {
	if m.err != nil {
		return skill.WantedSkill{}, m.err
	}
	m.addedWanted = append(m.addedWanted, in)
	ws := skill.WantedSkill{ID: uuid.New(), ProfileID: in.ProfileID, SkillID: in.Skill.ID, Urgency: in.Urgency}
	m.wanted[ws.ID] = ws
	return ws, nil
}

func (m *mockUserSkillRepo) RemoveOffered(_ context.Context, _, skillID uuid.UUID) error {
	m.removed = append(m.removed, skillID)
	return m.err
}

func (m *mockUserSkillRepo) RemoveWanted(_ context.Context, _, skillID uuid.UUID) error {
	m.removed = append(m.removed, skillID)
	return m.err
}

type mockSkillRepo struct {
	items      []skill.Skill
	count      int
	created    []repository.NewSkill
	searchTerm string
	searchLim  int
	category   string
	err        error
}

func (m *mockSkillRepo) List(context.Context) ([]skill.Skill, error) { return m.items, m.err }

func (m *mockSkillRepo) ListByCategory(_ context.Context, category string) ([]skill.Skill, error) {
	m.category = category
	return m.items, m.err
}

func (m *mockSkillRepo) Search(_ context.Context, term string, limit int) ([]skill.Skill, error) {
	m.searchTerm, m.searchLim = term, limit
	return m.items, m.err
}

func (m *mockSkillRepo) GetByName(_ context.Context, name string) (skill.Skill, error) {
	for _, s := range m.items {
		if s.Name == name {
			return s, nil
		}
	}
	return skill.Skill{}, skill.ErrNotFound
}

func (m *mockSkillRepo) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return skill.Skill{}, skill.ErrNotFound
}

func (m *mockSkillRepo) Create(_ context.Context, s repository.NewSkill) (skill.Skill, error) {
	if _, err := m.GetByName(context.Background(), s.Name); err == nil {
		return skill.Skill{}, skill.ErrAlreadyExists
	}
	m.created = append(m.created, s)
	out := skill.Skill{ID: uuid.New(), Name: s.Name, Category: s.Category, Description: s.Description}
	m.items = append(m.items, out)
	return out, nil
}

func (m *mockSkillRepo) GetOrCreate(ctx context.Context, s repository.NewSkill) (skill.Skill, error) {
	if existing, err := m.GetByName(ctx, s.Name); err == nil {
		return existing, nil
	}
	c := skill.DefaultCategory
	s.Category = &c
	return m.Create(ctx, s)
}

func (m *mockSkillRepo) Count(context.Context) (int, error) { return m.count, m.err }

// mockSwapRepo stores swaps by id.
type mockSwapRepo struct {
	swaps      map[uuid.UUID]swap.Swap
	lastFilter swap.ListFilter
	stats      swap.Statistics
	err        error
}

func newMockSwapRepo(items ...swap.Swap) *mockSwapRepo {
	m := &mockSwapRepo{swaps: map[uuid.UUID]swap.Swap{}}
	for _, s := range items {
		m.swaps[s.ID] = s
	}
	return m
}

func (m *mockSwapRepo) Create(_ context.Context, in swap.NewSwap) (swap.Swap, error) {
	if m.err != nil {
		return swap.Swap{}, m.err
	}
	s := swap.Swap{
		ID:             uuid.New(),
		RequesterID:    in.RequesterID,
		ProviderID:     in.ProviderID,
		OfferedSkillID: in.OfferedSkillID,
		WantedSkillID:  in.WantedSkillID,
		Status:         swap.StatusPending,
		Message:        in.Message,
	}
	m.swaps[s.ID] = s
	return s, nil
}

func (m *mockSwapRepo) GetByID(_ context.Context, id uuid.UUID) (swap.Swap, error) {
	s, ok := m.swaps[id]
	if !ok {
		return swap.Swap{}, swap.ErrNotFound
	}
	return s, nil
}

func (m *mockSwapRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (swap.WithDetails, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return swap.WithDetails{}, err
	}
	return swap.WithDetails{Swap: s}, nil
}

func (m *mockSwapRepo) List(_ context.Context, f swap.ListFilter) ([]swap.Swap, error) {
	m.lastFilter = f
	return nil, m.err
}

func (m *mockSwapRepo) UpdateStatus(_ context.Context, id uuid.UUID, status swap.Status, responseMessage *string) (swap.Swap, error) {
	s, ok := m.swaps[id]
	if !ok {
		return swap.Swap{}, swap.ErrNotFound
	}
	s.Status = status
	if responseMessage != nil {
		s.ResponseMessage = responseMessage
	}
	m.swaps[id] = s
	return s, nil
}

func (m *mockSwapRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.swaps[id]; !ok {
		return swap.ErrNotFound
	}
	delete(m.swaps, id)
	return nil
}

func (m *mockSwapRepo) Statistics(context.Context, string) (swap.Statistics, error) {
	return m.stats, m.err
}

type mockDiscoveryRepo struct {
	profiles   []user.Profile
	total      int
	usage      []skill.Usage
	lastFilter repository.ProfileFilter
	lastLimit  int
	lastOffset int
	err        error
}

func (m *mockDiscoveryRepo) ListProfiles(_ context.Context, f repository.ProfileFilter, limit, offset int) ([]user.Profile, error) {
	m.lastFilter, m.lastLimit, m.lastOffset = f, limit, offset
	return m.profiles, m.err
}

func (m *mockDiscoveryRepo) CountProfiles(_ context.Context, f repository.ProfileFilter) (int, error) {
	m.lastFilter = f
	return m.total, m.err
}

func (m *mockDiscoveryRepo) SkillUsage(context.Context) ([]skill.Usage, error) {
	return m.usage, m.err
}

type countingRecorder struct {
	created     int
	transitions []string
}

func (r *countingRecorder) SwapCreated() { r.created++ }

func (r *countingRecorder) SwapStatusChanged(from, to swap.Status) {
	r.transitions = append(r.transitions, string(from)+"->"+string(to))
}

func strPtr(s string) *string { return &s }
