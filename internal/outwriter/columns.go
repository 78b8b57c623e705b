package outwriter

import (
	"strconv"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
)

// cellContext carries what a cell needs beyond the author's own profile.
type cellContext struct {
	totalCommits int
	fmtFloat     func(float64) string
	useColors    bool
}

// share returns the author's share of all commits as a percentage.
func (cc cellContext) share(p schema.ContributionProfile) float64 {
	if cc.totalCommits == 0 {
		return 0
	}
	return float64(p.Commits) / float64(cc.totalCommits) * 100
}

// column is one numeric or label column of a profile table or CSV.
type column struct {
	header  string // table header
	csvName string
	cell    func(p schema.ContributionProfile, cc cellContext, plain bool) string
}

func intColumn(header, csvName string, get func(schema.ContributionProfile) int) column {
	return column{header: header, csvName: csvName, cell: func(p schema.ContributionProfile, _ cellContext, _ bool) string {
		return strconv.Itoa(get(p))
	}}
}

// maxTableLanguages caps the languages listed in a table cell.
const maxTableLanguages = 3

var (
	commitsColumn = intColumn("Commits", "commits", func(p schema.ContributionProfile) int { return p.Commits })
	shareColumn   = column{header: "Share %", csvName: "share_pct", cell: func(p schema.ContributionProfile, cc cellContext, _ bool) string {
		return cc.fmtFloat(cc.share(p))
	}}
	labelColumn = column{header: "Label", csvName: "label", cell: func(p schema.ContributionProfile, cc cellContext, plain bool) string {
		if plain || !cc.useColors {
			return contract.GetPlainLabel(cc.share(p))
		}
		return contract.GetColorLabel(cc.share(p))
	}}
	addedColumn      = intColumn("Added", "lines_added", func(p schema.ContributionProfile) int { return p.Lines.Added })
	deletedColumn    = intColumn("Deleted", "lines_deleted", func(p schema.ContributionProfile) int { return p.Lines.Deleted })
	cumulativeColumn = intColumn("Net", "lines_cumulative", func(p schema.ContributionProfile) int { return p.Lines.Cumulative })
	createdColumn    = intColumn("Created", "files_created", func(p schema.ContributionProfile) int { return p.Files.Created.Count })
	modifiedColumn   = intColumn("Modified", "files_modified", func(p schema.ContributionProfile) int { return p.Files.Modified.Count })
	removedColumn    = intColumn("Removed", "files_deleted", func(p schema.ContributionProfile) int { return p.Files.Deleted.Count })
	// Tables list the top languages; CSV keeps the single primary language.
	languageColumn   = column{header: "Languages", csvName: "primary_language", cell: func(p schema.ContributionProfile, _ cellContext, plain bool) string {
		if !plain && len(p.Languages) > 0 {
			return schema.FormatLanguages(p.Languages, maxTableLanguages)
		}
		if p.PrimaryLanguage == "" {
			return "-"
		}
		return p.PrimaryLanguage
	}}
)

// columnsFor lists the columns a view shows. The language column only
// appears where file sets exist, and only in tables when detail is on.
func columnsFor(view schema.ViewMode, withLanguage bool) []column {
	var cols []column
	switch view {
	case schema.CommitsView:
		cols = []column{commitsColumn, shareColumn, labelColumn}
	case schema.LinesView:
		cols = []column{addedColumn, deletedColumn, cumulativeColumn}
	case schema.FilesView:
		cols = []column{createdColumn, modifiedColumn, removedColumn}
	default:
		cols = []column{
			commitsColumn, shareColumn, labelColumn,
			addedColumn, deletedColumn, cumulativeColumn,
			createdColumn, modifiedColumn, removedColumn,
		}
	}
	if withLanguage && view != schema.CommitsView && view != schema.LinesView {
		cols = append(cols, languageColumn)
	}
	return cols
}
