package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFilter_CountAndPageShareArgs(t *testing.T) {
	filters := []ProfileFilter{
		{},
		{SkillName: "Python"},
		{Location: "Berlin"},
		{SkillName: "Go", Location: "Jakarta"},
		{Text: "design"},
	}
	for _, f := range filters {
		_, pageArgs, err := ProfilePageQuery(f, 12, 24).ToSql()
		require.NoError(t, err)
		countSQL, countArgs, err := ProfileCountQuery(f).ToSql()
		require.NoError(t, err)

		assert.Equal(t, pageArgs, countArgs, "filter %+v", f)
		assert.Contains(t, countSQL, "COUNT(*)")
	}
}

func TestProfileFilter_Where(t *testing.T) {
	sql, args, err := ProfilePageQuery(ProfileFilter{}, 12, 0).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{true}, args)
	assert.Contains(t, sql, "up.is_public = $1")
	assert.Contains(t, sql, "ORDER BY up.created_at DESC, up.id DESC")
	assert.Contains(t, sql, "LIMIT 12")
	assert.NotContains(t, sql, "OFFSET")

	sql, args, err = ProfilePageQuery(ProfileFilter{SkillName: "Py", Location: "Ber"}, 12, 12).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{true, "%Py%", "%Py%", "%Ber%"}, args)
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM user_offered_skills")
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM user_wanted_skills")
	assert.Contains(t, sql, "up.location ILIKE $4")
	assert.Contains(t, sql, "OFFSET 12")
}

func TestProfileFilter_TextSearchesNameLocationAndSkills(t *testing.T) {
	_, args, err := ProfileCountQuery(ProfileFilter{Text: "go"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{true, "%go%", "%go%", "%go%", "%go%"}, args)
}

func TestSkillUsageQuery(t *testing.T) {
	sql, args, err := SkillUsageQuery().ToSql()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, sql, "COUNT(DISTINCT o.profile_id)")
	assert.Contains(t, sql, "p.is_public = true")
	assert.Contains(t, sql, "u.offered_count + u.wanted_count > 0")
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern(" 50%_off "))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
