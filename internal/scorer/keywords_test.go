package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_FindsInConfiguredOrder(t *testing.T) {
	m, err := NewMatcher([]string{"moon", "rocket", "pump", "100x"})
	require.NoError(t, err)

	got := m.Find("100x PUMP to the Moon")
	assert.Equal(t, []string{"moon", "pump", "100x"}, got)
}

func TestMatcher_EachKeywordOnce(t *testing.T) {
	m, err := NewMatcher([]string{"moon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"moon"}, m.Find("moon moon moon"))
}

func TestMatcher_Substring(t *testing.T) {
	m, err := NewMatcher([]string{"rug", "gem"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rug", "gem"}, m.Find("DrugGems"))
}

func TestMatcher_NoMatch(t *testing.T) {
	m, err := NewMatcher([]string{"scam"})
	require.NoError(t, err)
	assert.Nil(t, m.Find("a perfectly normal token"))
	assert.Nil(t, m.Find(""))
}

func TestMatcher_Empty(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)
	assert.Nil(t, m.Find("moon"))
	assert.Empty(t, m.Keywords())
}

func TestMatcher_NormalizesKeywords(t *testing.T) {
	m, err := NewMatcher([]string{" Moon ", "moon", "", "DOGE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"moon", "doge"}, m.Keywords())
	assert.Equal(t, []string{"moon", "doge"}, m.Find("dogemoon"))
}
