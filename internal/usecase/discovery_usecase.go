package usecase

import (
	"context"
	"strings"

	"skill-swap/internal/domain/discovery"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type DiscoveryUsecase interface {
	Browse(ctx context.Context, p discovery.BrowseParams) (discovery.BrowseResult, error)
	Search(ctx context.Context, p discovery.SearchParams) (discovery.SearchResult, error)
	PopularSkills(ctx context.Context) (discovery.PopularSkillsResult, error)
}

type Discovery struct {
	repo    repository.DiscoveryRepository
	skills  repository.UserSkillRepository
	catalog repository.SkillRepository
}

func NewDiscoveryUsecase(repo repository.DiscoveryRepository, skills repository.UserSkillRepository, catalog repository.SkillRepository) *Discovery {
	return &Discovery{repo: repo, skills: skills, catalog: catalog}
}

// Browse pages through public profiles. Zero page and page size take their defaults.
func (u *Discovery) Browse(ctx context.Context, p discovery.BrowseParams) (discovery.BrowseResult, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = discovery.DefaultPageSize
	}
	if p.Page < 1 || p.PageSize < 1 || p.PageSize > discovery.MaxPageSize {
		return discovery.BrowseResult{}, ErrInvalidInput
	}

	f := repository.ProfileFilter{SkillName: p.SkillFilter, Location: p.LocationFilter}
	total, err := u.repo.CountProfiles(ctx, f)
	if err != nil {
		return discovery.BrowseResult{}, internal(err)
	}
	profiles, err := u.repo.ListProfiles(ctx, f, p.PageSize, discovery.Offset(p.Page, p.PageSize))
	if err != nil {
		return discovery.BrowseResult{}, internal(err)
	}
	users, err := u.previews(ctx, profiles)
	if err != nil {
		return discovery.BrowseResult{}, err
	}

	return discovery.BrowseResult{
		Users:      users,
		Pagination: discovery.NewPagination(total, p.Page, p.PageSize),
	}, nil
}

// Search matches q against names, locations and skill names. TotalCount is the size
// of the returned page, not of the full match set.
func (u *Discovery) Search(ctx context.Context, p discovery.SearchParams) (discovery.SearchResult, error) {
	if p.Limit == 0 {
		p.Limit = discovery.DefaultSearchLimit
	}
	if p.Limit < 1 || p.Limit > discovery.MaxSearchLimit {
		return discovery.SearchResult{}, ErrInvalidInput
	}
	q := strings.TrimSpace(p.Query)

	profiles, err := u.repo.ListProfiles(ctx, repository.ProfileFilter{Text: q}, p.Limit, 0)
	if err != nil {
		return discovery.SearchResult{}, internal(err)
	}
	users, err := u.previews(ctx, profiles)
	if err != nil {
		return discovery.SearchResult{}, err
	}

	res := discovery.SearchResult{
		Users:          users,
		TotalCount:     len(users),
		FiltersApplied: map[string]string{},
	}
	if q != "" {
		res.SearchQuery = &q
		res.FiltersApplied["search_query"] = q
	}
	return res, nil
}

// PopularSkills ranks skills by how many public profiles offer or want them.
// Trending is the head of the same ranking.
func (u *Discovery) PopularSkills(ctx context.Context) (discovery.PopularSkillsResult, error) {
	usage, err := u.repo.SkillUsage(ctx)
	if err != nil {
		return discovery.PopularSkillsResult{}, internal(err)
	}
	total, err := u.catalog.Count(ctx)
	if err != nil {
		return discovery.PopularSkillsResult{}, internal(err)
	}

	ranked := skill.RankUsage(usage, discovery.PopularSkillsLimit)
	popular := make([]discovery.PopularSkill, 0, len(ranked))
	for _, it := range ranked {
		popular = append(popular, discovery.PopularSkill{
			SkillName:    it.Name,
			Category:     it.Category,
			OfferedCount: it.OfferedCount,
			WantedCount:  it.WantedCount,
			TotalUsage:   it.TotalUsage(),
		})
	}
	trending := popular
	if len(trending) > discovery.TrendingSkillLimit {
		trending = trending[:discovery.TrendingSkillLimit]
	}

	return discovery.PopularSkillsResult{
		PopularSkills:  popular,
		TrendingSkills: append([]discovery.PopularSkill(nil), trending...),
		TotalSkills:    total,
	}, nil
}

func (u *Discovery) previews(ctx context.Context, profiles []user.Profile) ([]discovery.UserPreview, error) {
	out := make([]discovery.UserPreview, 0, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	offered, err := u.skills.ListOfferedByProfiles(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}
	wanted, err := u.skills.ListWantedByProfiles(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}

	for _, p := range profiles {
		out = append(out, preview(p, offered[p.ID], wanted[p.ID]))
	}
	return out, nil
}

func preview(p user.Profile, offered []skill.OfferedSkill, wanted []skill.WantedSkill) discovery.UserPreview {
	v := discovery.UserPreview{
		ID:               p.ID.String(),
		UserID:           p.UserID,
		Name:             p.DisplayName(),
		Location:         p.Location,
		ProfilePhotoURL:  p.ProfilePhotoURL,
		TopOfferedSkills: make([]discovery.OfferedSkillPreview, 0, discovery.TopSkillsPerUser),
		TopWantedSkills:  make([]discovery.WantedSkillPreview, 0, discovery.TopSkillsPerUser),
		Availability:     p.Availability,
		IsPublic:         p.IsPublic,
		MemberSince:      p.CreatedAt,
	}
	if v.Availability == nil {
		v.Availability = []string{}
	}
	for _, os := range skill.TopOffered(offered, discovery.TopSkillsPerUser) {
		item := discovery.OfferedSkillPreview{ProficiencyLevel: os.Level}
		if os.Skill != nil {
			item.SkillName = os.Skill.Name
			item.Category = os.Skill.Category
		}
		v.TopOfferedSkills = append(v.TopOfferedSkills, item)
	}
	for _, ws := range skill.TopWanted(wanted, discovery.TopSkillsPerUser) {
		item := discovery.WantedSkillPreview{UrgencyLevel: ws.Urgency}
		if ws.Skill != nil {
			item.SkillName = ws.Skill.Name
			item.Category = ws.Skill.Category
		}
		v.TopWantedSkills = append(v.TopWantedSkills, item)
	}
	return v
}
