package profile

import "github.com/huangsam/gitfolio/schema"

// Summarize computes repository-wide totals. The top contributor has the
// most commits; ties go to the alphabetically first name.
func Summarize(profiles map[string]schema.ContributionProfile) schema.ProfileSummary {
	var s schema.ProfileSummary
	topCommits := -1
	for author, p := range profiles {
		s.TotalAuthors++
		s.TotalCommits += p.Commits
		s.LinesAdded += p.Lines.Added
		s.LinesDeleted += p.Lines.Deleted
		if p.Commits > topCommits || (p.Commits == topCommits && author < s.TopContributor) {
			topCommits = p.Commits
			s.TopContributor = author
		}
	}
	s.Collaborative = s.TotalAuthors > 1
	return s
}
