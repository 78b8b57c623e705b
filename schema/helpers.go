package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// trimNamePart strips punctuation from both ends of a name part, keeping
// letters, digits, hyphens and apostrophes, then drops a trailing period.
func trimNamePart(p string) string {
	cp := strings.TrimFunc(p, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
	})
	return strings.TrimSuffix(cp, ".")
}

// AbbreviateName formats "Samuel Huang" to "Samuel H" for narrow tables.
// Bot accounts like dependabot[bot] and single-word names are returned as-is.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "[bot]") {
		return strings.Join(strings.Fields(trimmed), " ")
	}

	trimmed = strings.Trim(trimmed, "()\"'`")
	var parts []string
	for _, p := range strings.Fields(trimmed) {
		if cp := trimNamePart(p); cp != "" {
			parts = append(parts, cp)
		}
	}

	switch len(parts) {
	case 0:
		return trimmed
	case 1:
		return parts[0]
	}
	first, last := parts[0], []rune(parts[len(parts)-1])
	if len(last) == 0 {
		return first
	}
	return first + " " + string(last[0])
}

// FormatLanguages renders the first n languages as "Go (4), Python (1)".
// A non-positive n renders all of them.
func FormatLanguages(langs []LanguageShare, n int) string {
	if n <= 0 || n > len(langs) {
		n = len(langs)
	}
	out := make([]string, 0, n)
	for _, l := range langs[:n] {
		out = append(out, fmt.Sprintf("%s (%d)", l.Language, l.Files))
	}
	return strings.Join(out, ", ")
}
