package profile

import "github.com/huangsam/gitfolio/schema"

// Merge joins the three sub-scans into one profile per author. The join is
// a full outer join on author name: a dimension an author is missing from
// is filled with zero values and empty file lists. Any argument may be nil.
func Merge(commits map[string]int, lines map[string]schema.LineStats, files map[string]schema.FileTouches) map[string]schema.ContributionProfile {
	authors := make(map[string]struct{}, len(commits))
	for a := range commits {
		authors[a] = struct{}{}
	}
	for a := range lines {
		authors[a] = struct{}{}
	}
	for a := range files {
		authors[a] = struct{}{}
	}

	result := make(map[string]schema.ContributionProfile, len(authors))
	for a := range authors {
		p := schema.ContributionProfile{
			Commits: commits[a],
			Lines:   schema.NewLineStats(0, 0),
			Files:   schema.EmptyFileTouches(),
		}
		if ls, ok := lines[a]; ok {
			p.Lines = schema.NewLineStats(ls.Added, ls.Deleted)
		}
		if ft, ok := files[a]; ok {
			p.Files = ft
		}
		result[a] = p
	}
	return result
}
