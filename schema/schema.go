// Package schema has the shared data types for contribution profiles.
package schema

import "time"

// LineStats holds the line totals attributed to one author.
// Cumulative is always Added - Deleted and may be negative.
type LineStats struct {
	Added      int `json:"added"`
	Deleted    int `json:"deleted"`
	Cumulative int `json:"cumulative"`
}

// NewLineStats builds a LineStats with the cumulative value derived.
func NewLineStats(added, deleted int) LineStats {
	return LineStats{Added: added, Deleted: deleted, Cumulative: added - deleted}
}

// FileCategory is an immutable view of one file-touch set.
// Count is derived from Files and is never set independently.
type FileCategory struct {
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// FileTouches groups the three file-touch categories of one author.
type FileTouches struct {
	Created  FileCategory `json:"created"`
	Modified FileCategory `json:"modified"`
	Deleted  FileCategory `json:"deleted"`
}

// Category returns the category with the given name.
func (ft FileTouches) Category(name FileCategoryName) FileCategory {
	switch name {
	case CreatedCategory:
		return ft.Created
	case ModifiedCategory:
		return ft.Modified
	default:
		return ft.Deleted
	}
}

// EmptyFileTouches returns touches with all categories empty but non-nil,
// so they serialize as empty lists.
func EmptyFileTouches() FileTouches {
	return FileTouches{
		Created:  FileCategory{Files: []string{}},
		Modified: FileCategory{Files: []string{}},
		Deleted:  FileCategory{Files: []string{}},
	}
}

// LanguageShare counts how many distinct touched files map to a language.
type LanguageShare struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
}

// ContributionProfile is the merged, user-facing result for one author.
type ContributionProfile struct {
	Commits         int             `json:"commits"`
	Lines           LineStats       `json:"lines"`
	Files           FileTouches     `json:"files"`
	Languages       []LanguageShare `json:"languages,omitempty"`
	PrimaryLanguage string          `json:"primary_language,omitempty"`
}

// AuthorProfile pairs an author name with its profile, for ranked output.
type AuthorProfile struct {
	Author  string              `json:"author"`
	Profile ContributionProfile `json:"profile"`
}

// ScanStats reports how one log scan went. Skipped lines are the
// malformed ones; orphans are records seen before any author header.
type ScanStats struct {
	Lines         int `json:"lines"`
	Headers       int `json:"headers"`
	Records       int `json:"records"`
	Skipped       int `json:"skipped"`
	Orphaned      int `json:"orphaned"`
	Uncategorized int `json:"uncategorized"`
}

// Anomalies returns the number of lines that did not contribute to any author.
func (s ScanStats) Anomalies() int {
	return s.Skipped + s.Orphaned
}

// ScanReport collects the stats of every scan that ran.
type ScanReport struct {
	Commits *ScanStats `json:"commits,omitempty"`
	Lines   *ScanStats `json:"lines,omitempty"`
	Files   *ScanStats `json:"files,omitempty"`
}

// Anomalies returns the total anomaly count over all scans that ran.
func (r ScanReport) Anomalies() int {
	total := 0
	for _, s := range []*ScanStats{r.Commits, r.Lines, r.Files} {
		if s != nil {
			total += s.Anomalies()
		}
	}
	return total
}

// ProfileSummary holds repository-wide totals.
type ProfileSummary struct {
	TotalAuthors   int    `json:"total_authors"`
	TotalCommits   int    `json:"total_commits"`
	LinesAdded     int    `json:"lines_added"`
	LinesDeleted   int    `json:"lines_deleted"`
	Collaborative  bool   `json:"collaborative"`
	TopContributor string `json:"top_contributor,omitempty"`
}

// ProfileReport is the complete result of profiling one repository.
type ProfileReport struct {
	Source      string                         `json:"source"`
	RepoHash    string                         `json:"repo_hash,omitempty"`
	View        ViewMode                       `json:"view"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Authors     map[string]ContributionProfile `json:"authors"`
	Summary     ProfileSummary                 `json:"summary"`
	Scans       ScanReport                     `json:"scans"`
}
