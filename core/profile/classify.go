// Package profile turns raw git log text into per-author contribution profiles.
package profile

import (
	"strconv"
	"strings"
)

// LineKind tags what a single log line turned out to be.
type LineKind int

const (
	// KindBlank is an empty line. It is skipped and never counted as malformed.
	KindBlank LineKind = iota
	// KindHeader is an author name that starts a new commit block.
	KindHeader
	// KindNumstat is an added/deleted/path record.
	KindNumstat
	// KindNameStatus is a status/path record.
	KindNameStatus
	// KindUnrecognized is a line with a tab that matches no record shape.
	KindUnrecognized
)

// String returns the name of the kind, for logs.
func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeader:
		return "header"
	case KindNumstat:
		return "numstat"
	case KindNameStatus:
		return "name-status"
	default:
		return "unrecognized"
	}
}

// Line is the classified form of one physical log line.
// Only the fields relevant to Kind are set.
type Line struct {
	Kind    LineKind
	Author  string // KindHeader
	Added   int    // KindNumstat
	Deleted int    // KindNumstat
	Status  string // KindNameStatus
	Path    string // KindNumstat, KindNameStatus (destination path for renames and copies)
	OldPath string // KindNameStatus, renames and copies only
}

// ClassifyNumstat classifies one line of `log --pretty=format:%an --numstat` output.
//
// The format has no explicit marker for author lines, so the decision is
// structural: a line without a tab is a header, a line that splits into
// exactly added<TAB>deleted<TAB>path with numeric-or-dash counts is a record,
// and anything else is unrecognized. An author name containing a tab is
// therefore misread as a malformed record.
func ClassifyNumstat(raw string) Line {
	line := strings.TrimSuffix(raw, "\r")
	if strings.TrimSpace(line) == "" {
		return Line{Kind: KindBlank}
	}
	if !strings.Contains(line, "\t") {
		return Line{Kind: KindHeader, Author: strings.TrimSpace(line)}
	}

	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Line{Kind: KindUnrecognized}
	}
	added, ok := parseCount(parts[0])
	if !ok {
		return Line{Kind: KindUnrecognized}
	}
	deleted, ok := parseCount(parts[1])
	if !ok {
		return Line{Kind: KindUnrecognized}
	}
	return Line{Kind: KindNumstat, Added: added, Deleted: deleted, Path: parts[2]}
}

// ClassifyNameStatus classifies one line of `log --name-status --pretty=format:%an` output.
// Records are status<TAB>path, or status<TAB>old<TAB>new for renames and copies.
func ClassifyNameStatus(raw string) Line {
	line := strings.TrimSuffix(raw, "\r")
	if strings.TrimSpace(line) == "" {
		return Line{Kind: KindBlank}
	}
	if !strings.Contains(line, "\t") {
		return Line{Kind: KindHeader, Author: strings.TrimSpace(line)}
	}

	parts := strings.Split(line, "\t")
	status := strings.TrimSpace(parts[0])
	if status == "" || len(parts) > 3 {
		return Line{Kind: KindUnrecognized}
	}
	for _, p := range parts[1:] {
		if p == "" {
			return Line{Kind: KindUnrecognized}
		}
	}
	if len(parts) == 3 {
		return Line{Kind: KindNameStatus, Status: status, OldPath: parts[1], Path: parts[2]}
	}
	return Line{Kind: KindNameStatus, Status: status, Path: parts[1]}
}

// parseCount converts a numstat count, handling "-" (binary file) as 0.
func parseCount(s string) (int, bool) {
	if s == "-" {
		return 0, true
	}
	val, err := strconv.Atoi(s)
	if err != nil || val < 0 || strings.HasPrefix(s, "+") {
		return 0, false
	}
	return val, true
}
