package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
)

type CreateProfileInput struct {
	Name            *string
	Location        *string
	ProfilePhotoURL *string
	Availability    []string
	// IsPublic defaults to true.
	IsPublic *bool
}

type ListProfilesParams struct {
	Name     string
	Location string
	Limit    int
	Offset   int
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (user.ProfileWithSkills, error)
	CreateProfile(ctx context.Context, userID string, in CreateProfileInput) (user.ProfileWithSkills, error)
	UpdateProfile(ctx context.Context, userID string, upd user.ProfileUpdate) (user.ProfileWithSkills, error)
	DeleteProfile(ctx context.Context, userID string) error
	ListPublicProfiles(ctx context.Context, p ListProfilesParams) ([]user.Profile, error)
	FindMatches(ctx context.Context, userID string) ([]user.SkillMatch, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	skills   repository.UserSkillRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository, skills repository.UserSkillRepository) *Profile {
	return &Profile{profiles: profiles, skills: skills}
}

func (u *Profile) GetProfile(ctx context.Context, userID string) (user.ProfileWithSkills, error) {
	if strings.TrimSpace(userID) == "" {
		return user.ProfileWithSkills{}, ErrInvalidInput
	}
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return user.ProfileWithSkills{}, translate(err)
	}
	return u.withSkills(ctx, p)
}

// CreateProfile fails with ErrProfileExists when the user already has one.
func (u *Profile) CreateProfile(ctx context.Context, userID string, in CreateProfileInput) (user.ProfileWithSkills, error) {
	if strings.TrimSpace(userID) == "" {
		return user.ProfileWithSkills{}, ErrInvalidInput
	}

	_, err := u.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return user.ProfileWithSkills{}, ErrProfileExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.ProfileWithSkills{}, internal(err)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	created, err := u.profiles.Create(ctx, repository.NewProfile{
		UserID:          userID,
		Name:            trimPtr(in.Name),
		Location:        trimPtr(in.Location),
		ProfilePhotoURL: trimPtr(in.ProfilePhotoURL),
		Availability:    cleanList(in.Availability),
		IsPublic:        isPublic,
	})
	if err != nil {
		return user.ProfileWithSkills{}, translate(err)
	}
	return u.withSkills(ctx, created)
}

// UpdateProfile changes only the provided fields.
func (u *Profile) UpdateProfile(ctx context.Context, userID string, upd user.ProfileUpdate) (user.ProfileWithSkills, error) {
	if strings.TrimSpace(userID) == "" {
		return user.ProfileWithSkills{}, ErrInvalidInput
	}
	if upd.Availability != nil {
		list := cleanList(*upd.Availability)
		if list == nil {
			list = []string{}
		}
		upd.Availability = &list
	}
	updated, err := u.profiles.Update(ctx, userID, upd)
	if err != nil {
		return user.ProfileWithSkills{}, translate(err)
	}
	return u.withSkills(ctx, updated)
}

func (u *Profile) DeleteProfile(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	return translate(u.profiles.Delete(ctx, userID))
}

func (u *Profile) ListPublicProfiles(ctx context.Context, p ListProfilesParams) ([]user.Profile, error) {
	if p.Limit == 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit < 0 || p.Limit > maxListLimit || p.Offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.profiles.SearchPublic(ctx, p.Name, p.Location, p.Limit, p.Offset)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Profile) FindMatches(ctx context.Context, userID string) ([]user.SkillMatch, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := u.profiles.GetByUserID(ctx, userID); err != nil {
		return nil, translate(err)
	}
	items, err := u.profiles.FindMatches(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *Profile) withSkills(ctx context.Context, p user.Profile) (user.ProfileWithSkills, error) {
	offered, err := u.skills.ListOffered(ctx, p.ID)
	if err != nil {
		return user.ProfileWithSkills{}, internal(err)
	}
	wanted, err := u.skills.ListWanted(ctx, p.ID)
	if err != nil {
		return user.ProfileWithSkills{}, internal(err)
	}
	for i := range offered {
		offered[i].UserID = p.UserID
	}
	for i := range wanted {
		wanted[i].UserID = p.UserID
	}
	return user.ProfileWithSkills{Profile: p, OfferedSkills: offered, WantedSkills: wanted}, nil
}

const (
	DefaultListLimit = 20
	maxListLimit     = 100
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// cleanList trims entries and drops blanks. A nil input stays nil.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, it := range in {
		if v := strings.TrimSpace(it); v != "" {
			out = append(out, v)
		}
	}
	return out
}
