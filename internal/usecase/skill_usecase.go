package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"
)

const (
	defaultSkillSearchLimit = 10
	maxSkillSearchLimit     = 50
	maxSkillNameLen         = 255
	maxCategoryLen          = 100
)

type CreateSkillInput struct {
	Name        string
	Category    *string
	Description *string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	SearchSkills(ctx context.Context, q string, limit int) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
	GetOrCreateSkill(ctx context.Context, name string) (skill.Skill, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

// ListSkills returns the whole catalog, or one category of it, by name.
func (u *Skill) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	var (
		items []skill.Skill
		err   error
	)
	if c := strings.TrimSpace(category); c != "" {
		items, err = u.repo.ListByCategory(ctx, c)
	} else {
		items, err = u.repo.List(ctx)
	}
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Skill) SearchSkills(ctx context.Context, q string, limit int) ([]skill.Skill, error) {
	if limit == 0 {
		limit = defaultSkillSearchLimit
	}
	if limit < 0 || limit > maxSkillSearchLimit {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.Search(ctx, q, limit)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Skill) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name, err := validSkillName(in.Name)
	if err != nil {
		return skill.Skill{}, err
	}
	category := trimPtr(in.Category)
	if category != nil && utf8.RuneCountInString(*category) > maxCategoryLen {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, repository.NewSkill{
		Name:        name,
		Category:    category,
		Description: trimPtr(in.Description),
	})
	if err != nil {
		return skill.Skill{}, translate(err)
	}
	return created, nil
}

// GetOrCreateSkill returns the skill named name, creating it under the default
// category when missing. Repeated calls return the same skill.
func (u *Skill) GetOrCreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	name, err := validSkillName(name)
	if err != nil {
		return skill.Skill{}, err
	}
	s, err := u.repo.GetOrCreate(ctx, repository.NewSkill{Name: name})
	if err != nil {
		return skill.Skill{}, translate(err)
	}
	return s, nil
}

func validSkillName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxSkillNameLen {
		return "", ErrInvalidInput
	}
	return name, nil
}
