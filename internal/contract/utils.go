package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Contribution share labels.
const (
	LeadValue       = "Lead"
	CoreValue       = "Core"
	RegularValue    = "Regular"
	OccasionalValue = "Occasional"
)

// Color variables for console output.
var (
	LeadColor       = color.New(color.FgRed, color.Bold)
	CoreColor       = color.New(color.FgMagenta, color.Bold)
	RegularColor    = color.New(color.FgYellow)
	OccasionalColor = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain label for an author's share of all commits,
// given as a percentage. This is the core logic used for CSV, JSON and tables.
func GetPlainLabel(sharePct float64) string {
	switch {
	case sharePct >= 50:
		return LeadValue
	case sharePct >= 20:
		return CoreValue
	case sharePct >= 5:
		return RegularValue
	default:
		return OccasionalValue
	}
}

// GetColorLabel returns a colored label for console output (table).
func GetColorLabel(sharePct float64) string {
	text := GetPlainLabel(sharePct)
	switch text {
	case LeadValue:
		return LeadColor.Sprint(text)
	case CoreValue:
		return CoreColor.Sprint(text)
	case RegularValue:
		return RegularColor.Sprint(text)
	default:
		return OccasionalColor.Sprint(text)
	}
}

// SelectOutputFile returns the file handle for output. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitfolio_cache.db"
	}
	return filepath.Join(homeDir, ".gitfolio_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitfolio_history.db"
	}
	return filepath.Join(homeDir, ".gitfolio_history.db")
}

// TruncateName truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one rune.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
