package core

import (
	"sort"
	"strings"

	"github.com/huangsam/gitfolio/schema"
)

// RankAuthors orders authors by commits, then lines added, then files
// touched, all descending, with the name as the final tie-breaker. It
// returns at most limit authors; a limit of zero or less keeps all of them.
func RankAuthors(authors map[string]schema.ContributionProfile, limit int) []schema.AuthorProfile {
	ranked := make([]schema.AuthorProfile, 0, len(authors))
	for name, p := range authors {
		ranked = append(ranked, schema.AuthorProfile{Author: name, Profile: p})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Profile, ranked[j].Profile
		if a.Commits != b.Commits {
			return a.Commits > b.Commits
		}
		if a.Lines.Added != b.Lines.Added {
			return a.Lines.Added > b.Lines.Added
		}
		if ta, tb := touched(a), touched(b); ta != tb {
			return ta > tb
		}
		return ranked[i].Author < ranked[j].Author
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

func touched(p schema.ContributionProfile) int {
	return p.Files.Created.Count + p.Files.Modified.Count + p.Files.Deleted.Count
}

// FilterAuthors keeps the authors whose name contains substr, ignoring case.
// An empty substr keeps everyone.
func FilterAuthors(authors map[string]schema.ContributionProfile, substr string) map[string]schema.ContributionProfile {
	if substr == "" {
		return authors
	}
	needle := strings.ToLower(substr)
	filtered := make(map[string]schema.ContributionProfile)
	for name, p := range authors {
		if strings.Contains(strings.ToLower(name), needle) {
			filtered[name] = p
		}
	}
	return filtered
}
