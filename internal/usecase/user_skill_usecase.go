package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidProficiencyLevel = errors.New("invalid proficiency level")
	ErrInvalidUrgencyLevel     = errors.New("invalid urgency level")
)

// AddOfferedSkillInput names the skill by SkillID, or by SkillName when SkillID is
// empty. Unknown names are added to the catalog under Category (default "Other").
type AddOfferedSkillInput struct {
	SkillID          uuid.UUID
	SkillName        string
	Category         *string
	ProficiencyLevel string
	Description      *string
}

type AddWantedSkillInput struct {
	SkillID      uuid.UUID
	SkillName    string
	Category     *string
	UrgencyLevel string
	Description  *string
}

type UserSkillUsecase interface {
	AddOfferedSkill(ctx context.Context, userID string, in AddOfferedSkillInput) (skill.OfferedSkill, error)
	AddWantedSkill(ctx context.Context, userID string, in AddWantedSkillInput) (skill.WantedSkill, error)
	RemoveOfferedSkill(ctx context.Context, userID string, skillID uuid.UUID) error
	RemoveWantedSkill(ctx context.Context, userID string, skillID uuid.UUID) error
}

type UserSkill struct {
	profiles repository.ProfileRepository
	repo     repository.UserSkillRepository
}

func NewUserSkillUsecase(profiles repository.ProfileRepository, repo repository.UserSkillRepository) *UserSkill {
	return &UserSkill{profiles: profiles, repo: repo}
}

func (u *UserSkill) AddOfferedSkill(ctx context.Context, userID string, in AddOfferedSkillInput) (skill.OfferedSkill, error) {
	level, ok := skill.ParseProficiency(in.ProficiencyLevel)
	if !ok {
		return skill.OfferedSkill{}, ErrInvalidProficiencyLevel
	}
	ref, err := skillRef(in.SkillID, in.SkillName, in.Category)
	if err != nil {
		return skill.OfferedSkill{}, err
	}
	p, err := u.profile(ctx, userID)
	if err != nil {
		return skill.OfferedSkill{}, err
	}

	added, err := u.repo.AddOffered(ctx, repository.AddOfferedSkill{
		ProfileID:   p.ID,
		Skill:       ref,
		Level:       level,
		Description: trimPtr(in.Description),
	})
	if err != nil {
		return skill.OfferedSkill{}, translate(err)
	}
	added.UserID = p.UserID
	return added, nil
}

func (u *UserSkill) AddWantedSkill(ctx context.Context, userID string, in AddWantedSkillInput) (skill.WantedSkill, error) {
	urgency, ok := skill.ParseUrgency(in.UrgencyLevel)
	if !ok {
		return skill.WantedSkill{}, ErrInvalidUrgencyLevel
	}
	ref, err := skillRef(in.SkillID, in.SkillName, in.Category)
	if err != nil {
		return skill.WantedSkill{}, err
	}
	p, err := u.profile(ctx, userID)
	if err != nil {
		return skill.WantedSkill{}, err
	}

	added, err := u.repo.AddWanted(ctx, repository.AddWantedSkill{
		ProfileID:   p.ID,
		Skill:       ref,
		Urgency:     urgency,
		Description: trimPtr(in.Description),
	})
	if err != nil {
		return skill.WantedSkill{}, translate(err)
	}
	added.UserID = p.UserID
	return added, nil
}

// RemoveOfferedSkill succeeds whether or not the profile offered the skill.
func (u *UserSkill) RemoveOfferedSkill(ctx context.Context, userID string, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	p, err := u.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.repo.RemoveOffered(ctx, p.ID, skillID); err != nil {
		return internal(err)
	}
	return nil
}

func (u *UserSkill) RemoveWantedSkill(ctx context.Context, userID string, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	p, err := u.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.repo.RemoveWanted(ctx, p.ID, skillID); err != nil {
		return internal(err)
	}
	return nil
}

func (u *UserSkill) profile(ctx context.Context, userID string) (user.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return user.Profile{}, ErrInvalidInput
	}
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return user.Profile{}, translate(err)
	}
	return p, nil
}

func skillRef(id uuid.UUID, name string, category *string) (repository.SkillRef, error) {
	if id != uuid.Nil {
		return repository.SkillRef{ID: id}, nil
	}
	name, err := validSkillName(name)
	if err != nil {
		return repository.SkillRef{}, err
	}
	category = trimPtr(category)
	if category != nil && len([]rune(*category)) > maxCategoryLen {
		return repository.SkillRef{}, ErrInvalidInput
	}
	return repository.SkillRef{Name: name, Category: category}, nil
}
