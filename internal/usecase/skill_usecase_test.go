package usecase

import (
	"context"
	"strings"
	"testing"

	"skill-swap/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillUsecase_ListByCategory(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo)

	_, err := uc.ListSkills(context.Background(), " Technology ")
	require.NoError(t, err)
	assert.Equal(t, "Technology", repo.category)
}

func TestSkillUsecase_SearchDefaultsAndBounds(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo)

	_, err := uc.SearchSkills(context.Background(), "py", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.searchLim)
	assert.Equal(t, "py", repo.searchTerm)

	_, err = uc.SearchSkills(context.Background(), "py", 51)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSkillUsecase_CreateDuplicate(t *testing.T) {
	repo := &mockSkillRepo{items: []skill.Skill{{Name: "Go"}}}
	uc := NewSkillUsecase(repo)

	_, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: " Go "})
	assert.ErrorIs(t, err, ErrSkillExists)
}

func TestSkillUsecase_CreateValidates(t *testing.T) {
	uc := NewSkillUsecase(&mockSkillRepo{})

	_, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.CreateSkill(context.Background(), CreateSkillInput{Name: strings.Repeat("x", 256)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := strings.Repeat("c", 101)
	_, err = uc.CreateSkill(context.Background(), CreateSkillInput{Name: "Go", Category: &long})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSkillUsecase_GetOrCreateIsStable(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo)

	first, err := uc.GetOrCreateSkill(context.Background(), "Knitting")
	require.NoError(t, err)
	second, err := uc.GetOrCreateSkill(context.Background(), "Knitting")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, skill.DefaultCategory, *first.Category)
	assert.Len(t, repo.created, 1)
}
