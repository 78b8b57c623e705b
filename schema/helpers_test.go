package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Basic cases
		{"popcorn", "popcorn"},
		{"Samuel Huang", "Samuel H"},
		{"First Second Third", "First T"},

		// Punctuation
		{"`backtickname", "backtickname"},
		{"Ava (Billy) Cathy", "Ava C"},
		{"O'Neill John", "O'Neill J"},
		{"Anne-Marie Smith", "Anne-Marie S"},

		// Spaces
		{"  Alice  ", "Alice"},
		{"John   Doe", "John D"},

		// Initials
		{"A. B. C.", "A C"},
		{"J. R. R. Tolkien", "J T"},

		// Bot accounts
		{"dependabot[bot]", "dependabot[bot]"},
		{"dependabot [bot]", "dependabot [bot]"},

		// Unicode
		{"张三", "张三"},
		{"Hans Müller", "Hans M"},
		{"José María", "José M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbbreviateName(tt.name), "AbbreviateName(%q)", tt.name)
		})
	}
}

func TestFormatLanguages(t *testing.T) {
	langs := []LanguageShare{{"Go", 4}, {"Python", 2}, {"Shell", 1}}

	assert.Equal(t, "Go (4), Python (2)", FormatLanguages(langs, 2))
	assert.Equal(t, "Go (4), Python (2), Shell (1)", FormatLanguages(langs, 0))
	assert.Equal(t, "Go (4), Python (2), Shell (1)", FormatLanguages(langs, 10))
	assert.Equal(t, "", FormatLanguages(nil, 3))
}

func TestNewLineStats(t *testing.T) {
	ls := NewLineStats(3, 10)
	assert.Equal(t, -7, ls.Cumulative, "cumulative may be negative")
	assert.Equal(t, ls.Added-ls.Deleted, ls.Cumulative)
}

func TestEmptyFileTouchesSerializesEmptyLists(t *testing.T) {
	data, err := json.Marshal(EmptyFileTouches())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"created": {"count": 0, "files": []},
		"modified": {"count": 0, "files": []},
		"deleted": {"count": 0, "files": []}
	}`, string(data))
}

func TestFileTouchesCategory(t *testing.T) {
	ft := FileTouches{
		Created:  FileCategory{Count: 1, Files: []string{"a"}},
		Modified: FileCategory{Count: 2, Files: []string{"b", "c"}},
		Deleted:  FileCategory{Count: 0, Files: []string{}},
	}
	assert.Equal(t, 1, ft.Category(CreatedCategory).Count)
	assert.Equal(t, 2, ft.Category(ModifiedCategory).Count)
	assert.Equal(t, 0, ft.Category(DeletedCategory).Count)
}

func TestScanReportAnomalies(t *testing.T) {
	report := ScanReport{
		Lines: &ScanStats{Skipped: 2, Orphaned: 1, Uncategorized: 5},
		Files: &ScanStats{Skipped: 1},
	}
	assert.Equal(t, 4, report.Anomalies(), "uncategorized records are not anomalies")
}
