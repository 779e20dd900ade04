package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/discovery"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// testApp mounts routes the way the v1 registry does: public first, then an auth group.
func testApp(t *testing.T, public func(r fiber.Router), protected func(r fiber.Router)) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	if public != nil {
		public(app)
	}
	if protected != nil {
		auth := middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret, ""), nil)
		protected(app.Group("", auth.Middleware()))
	}
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := jwt.NewHMACService(testSecret, "").GenerateToken(userID, userID+"@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

type fakeProfiles struct {
	byUser    map[string]user.ProfileWithSkills
	listed    []user.Profile
	listParam usecase.ListProfilesParams
	err       error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byUser: map[string]user.ProfileWithSkills{}}
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (user.ProfileWithSkills, error) {
	if f.err != nil {
		return user.ProfileWithSkills{}, f.err
	}
	p, ok := f.byUser[userID]
	if !ok {
		return user.ProfileWithSkills{}, usecase.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) CreateProfile(_ context.Context, userID string, in usecase.CreateProfileInput) (user.ProfileWithSkills, error) {
	if _, ok := f.byUser[userID]; ok {
		return user.ProfileWithSkills{}, usecase.ErrProfileExists
	}
	p := user.ProfileWithSkills{
		Profile:       user.Profile{ID: uuid.New(), UserID: userID, Name: in.Name, IsPublic: true, Availability: in.Availability},
		OfferedSkills: []skill.OfferedSkill{},
		WantedSkills:  []skill.WantedSkill{},
	}
	f.byUser[userID] = p
	return p, nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, userID string, upd user.ProfileUpdate) (user.ProfileWithSkills, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return user.ProfileWithSkills{}, usecase.ErrProfileNotFound
	}
	p.Profile = upd.Apply(p.Profile)
	f.byUser[userID] = p
	return p, nil
}

func (f *fakeProfiles) DeleteProfile(_ context.Context, userID string) error {
	if _, ok := f.byUser[userID]; !ok {
		return usecase.ErrProfileNotFound
	}
	delete(f.byUser, userID)
	return nil
}

func (f *fakeProfiles) ListPublicProfiles(_ context.Context, p usecase.ListProfilesParams) ([]user.Profile, error) {
	f.listParam = p
	return f.listed, f.err
}

func (f *fakeProfiles) FindMatches(context.Context, string) ([]user.SkillMatch, error) {
	return []user.SkillMatch{}, f.err
}

type fakeUserSkills struct {
	offeredIn usecase.AddOfferedSkillInput
	removed   uuid.UUID
	err       error
}

func (f *fakeUserSkills) AddOfferedSkill(_ context.Context, _ string, in usecase.AddOfferedSkillInput) (skill.OfferedSkill, error) {
	f.offeredIn = in
	if f.err != nil {
		return skill.OfferedSkill{}, f.err
	}
	return skill.OfferedSkill{ID: uuid.New(), SkillID: in.SkillID, Level: skill.ProficiencyLevel(in.ProficiencyLevel)}, nil
}

func (f *fakeUserSkills) AddWantedSkill(_ context.Context, _ string, in usecase.AddWantedSkillInput) (skill.WantedSkill, error) {
	if f.err != nil {
		return skill.WantedSkill{}, f.err
	}
	return skill.WantedSkill{ID: uuid.New(), SkillID: in.SkillID, Urgency: skill.UrgencyLevel(in.UrgencyLevel)}, nil
}

func (f *fakeUserSkills) RemoveOfferedSkill(_ context.Context, _ string, id uuid.UUID) error {
	f.removed = id
	return f.err
}

func (f *fakeUserSkills) RemoveWantedSkill(_ context.Context, _ string, id uuid.UUID) error {
	f.removed = id
	return f.err
}

type fakeSkills struct {
	items    []skill.Skill
	category string
	created  usecase.CreateSkillInput
	err      error
}

func (f *fakeSkills) ListSkills(_ context.Context, category string) ([]skill.Skill, error) {
	f.category = category
	return f.items, f.err
}

func (f *fakeSkills) SearchSkills(context.Context, string, int) ([]skill.Skill, error) {
	return f.items, f.err
}

func (f *fakeSkills) CreateSkill(_ context.Context, in usecase.CreateSkillInput) (skill.Skill, error) {
	f.created = in
	if f.err != nil {
		return skill.Skill{}, f.err
	}
	return skill.Skill{ID: uuid.New(), Name: in.Name}, nil
}

func (f *fakeSkills) GetOrCreateSkill(_ context.Context, name string) (skill.Skill, error) {
	return skill.Skill{ID: uuid.New(), Name: name}, f.err
}

type fakeSwaps struct {
	requester  string
	createIn   usecase.CreateSwapInput
	listStatus string
	listRole   string
	pending    bool
	stats      swap.Statistics
	err        error
}

func (f *fakeSwaps) CreateSwap(_ context.Context, requesterID string, in usecase.CreateSwapInput) (swap.Swap, error) {
	f.requester, f.createIn = requesterID, in
	if f.err != nil {
		return swap.Swap{}, f.err
	}
	return swap.Swap{ID: uuid.New(), RequesterID: requesterID, ProviderID: in.ProviderID, Status: swap.StatusPending}, nil
}

func (f *fakeSwaps) GetSwap(_ context.Context, _ string, id uuid.UUID) (swap.WithDetails, error) {
	if f.err != nil {
		return swap.WithDetails{}, f.err
	}
	return swap.WithDetails{Swap: swap.Swap{ID: id}}, nil
}

func (f *fakeSwaps) ListSwaps(_ context.Context, _ string, status, role string) ([]swap.Swap, error) {
	f.listStatus, f.listRole = status, role
	return []swap.Swap{}, f.err
}

func (f *fakeSwaps) ListPendingForProvider(context.Context, string) ([]swap.Swap, error) {
	f.pending = true
	return []swap.Swap{}, f.err
}

func (f *fakeSwaps) UpdateStatus(_ context.Context, _ string, id uuid.UUID, in usecase.UpdateSwapStatusInput) (swap.WithDetails, error) {
	if f.err != nil {
		return swap.WithDetails{}, f.err
	}
	return swap.WithDetails{Swap: swap.Swap{ID: id, Status: swap.Status(in.Status)}}, nil
}

func (f *fakeSwaps) DeleteSwap(context.Context, string, uuid.UUID) error { return f.err }

func (f *fakeSwaps) Statistics(context.Context, string) (swap.Statistics, error) {
	return f.stats, f.err
}

type fakeDiscovery struct {
	browse discovery.BrowseParams
	search discovery.SearchParams
	err    error
}

func (f *fakeDiscovery) Browse(_ context.Context, p discovery.BrowseParams) (discovery.BrowseResult, error) {
	f.browse = p
	if f.err != nil {
		return discovery.BrowseResult{}, f.err
	}
	return discovery.BrowseResult{Users: []discovery.UserPreview{}, Pagination: discovery.NewPagination(0, 1, 12)}, nil
}

func (f *fakeDiscovery) Search(_ context.Context, p discovery.SearchParams) (discovery.SearchResult, error) {
	f.search = p
	return discovery.SearchResult{Users: []discovery.UserPreview{}, FiltersApplied: map[string]string{}}, f.err
}

func (f *fakeDiscovery) PopularSkills(context.Context) (discovery.PopularSkillsResult, error) {
	return discovery.PopularSkillsResult{PopularSkills: []discovery.PopularSkill{}, TrendingSkills: []discovery.PopularSkill{}}, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
