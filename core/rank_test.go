package core

import (
	"testing"

	"github.com/huangsam/gitfolio/schema"
	"github.com/stretchr/testify/assert"
)

func names(ranked []schema.AuthorProfile) []string {
	out := make([]string, len(ranked))
	for i, ap := range ranked {
		out[i] = ap.Author
	}
	return out
}

func TestRankAuthors(t *testing.T) {
	authors := map[string]schema.ContributionProfile{
		"dave":  {Commits: 1},
		"carol": {Commits: 5, Lines: schema.NewLineStats(10, 0)},
		"bob":   {Commits: 5, Lines: schema.NewLineStats(50, 0)},
		"alice": {Commits: 1},
		"erin": {Commits: 1, Files: schema.FileTouches{
			Modified: schema.FileCategory{Count: 1, Files: []string{"a.go"}},
		}},
	}

	assert.Equal(t, []string{"bob", "carol", "erin", "alice", "dave"}, names(RankAuthors(authors, 0)))
	assert.Equal(t, []string{"bob", "carol"}, names(RankAuthors(authors, 2)))
	assert.Len(t, RankAuthors(authors, 100), 5)
	assert.Empty(t, RankAuthors(nil, 10))
}

func TestFilterAuthors(t *testing.T) {
	authors := map[string]schema.ContributionProfile{
		"Alice Smith": {Commits: 1},
		"Bob Jones":   {Commits: 2},
		"alicia":      {Commits: 3},
	}

	assert.Len(t, FilterAuthors(authors, ""), 3)
	filtered := FilterAuthors(authors, "ALI")
	assert.Len(t, filtered, 2)
	assert.Contains(t, filtered, "Alice Smith")
	assert.Contains(t, filtered, "alicia")
	assert.Empty(t, FilterAuthors(authors, "zed"))
}
