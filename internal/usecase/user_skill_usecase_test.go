package usecase

import (
	"context"
	"testing"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSkillUsecase_AddOfferedByName(t *testing.T) {
	pid := uuid.New()
	skills := newMockUserSkillRepo()
	uc := NewUserSkillUsecase(newMockProfileRepo(user.Profile{ID: pid, UserID: "u1"}), skills)

	got, err := uc.AddOfferedSkill(context.Background(), "u1", AddOfferedSkillInput{
		SkillName:        " Python ",
		ProficiencyLevel: "Expert",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, skill.ProficiencyExpert, got.Level)

	require.Len(t, skills.addedOffered, 1)
	assert.Equal(t, pid, skills.addedOffered[0].ProfileID)
	assert.Equal(t, "Python", skills.addedOffered[0].Skill.Name)
}

func TestUserSkillUsecase_AddOfferedInvalidLevel(t *testing.T) {
	uc := NewUserSkillUsecase(newMockProfileRepo(user.Profile{ID: uuid.New(), UserID: "u1"}), newMockUserSkillRepo())

	_, err := uc.AddOfferedSkill(context.Background(), "u1", AddOfferedSkillInput{
		SkillID:          uuid.New(),
		ProficiencyLevel: "guru",
	})
	assert.ErrorIs(t, err, ErrInvalidProficiencyLevel)
}

func TestUserSkillUsecase_AddWantedRequiresProfile(t *testing.T) {
	uc := NewUserSkillUsecase(newMockProfileRepo(), newMockUserSkillRepo())

	_, err := uc.AddWantedSkill(context.Background(), "u1", AddWantedSkillInput{
		SkillID:      uuid.New(),
		UrgencyLevel: "high",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUserSkillUsecase_AddWantedUnknownSkill(t *testing.T) {
	skills := newMockUserSkillRepo()
	skills.err = skill.ErrNotFound
	uc := NewUserSkillUsecase(newMockProfileRepo(user.Profile{ID: uuid.New(), UserID: "u1"}), skills)

	_, err := uc.AddWantedSkill(context.Background(), "u1", AddWantedSkillInput{
		SkillID:      uuid.New(),
		UrgencyLevel: "urgent",
	})
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestUserSkillUsecase_AddNeedsSkillIDOrName(t *testing.T) {
	uc := NewUserSkillUsecase(newMockProfileRepo(user.Profile{ID: uuid.New(), UserID: "u1"}), newMockUserSkillRepo())

	_, err := uc.AddWantedSkill(context.Background(), "u1", AddWantedSkillInput{UrgencyLevel: "low"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserSkillUsecase_RemoveIsIdempotent(t *testing.T) {
	skills := newMockUserSkillRepo()
	uc := NewUserSkillUsecase(newMockProfileRepo(user.Profile{ID: uuid.New(), UserID: "u1"}), skills)
	id := uuid.New()

	require.NoError(t, uc.RemoveOfferedSkill(context.Background(), "u1", id))
	require.NoError(t, uc.RemoveOfferedSkill(context.Background(), "u1", id))
	require.NoError(t, uc.RemoveWantedSkill(context.Background(), "u1", id))
	assert.Len(t, skills.removed, 3)
}
