package profile

import (
	"sort"
	"strings"

	"github.com/huangsam/gitfolio/schema"
)

// pathSet is an insertion-idempotent set of file paths.
type pathSet map[string]struct{}

func (s pathSet) add(path string) {
	s[path] = struct{}{}
}

// category returns the set as a sorted, immutable FileCategory.
func (s pathSet) category() schema.FileCategory {
	files := make([]string, 0, len(s))
	for p := range s {
		files = append(files, p)
	}
	sort.Strings(files)
	return schema.FileCategory{Count: len(files), Files: files}
}

// touchSets accumulates the three categories for one author.
type touchSets struct {
	created  pathSet
	modified pathSet
	deleted  pathSet
}

func newTouchSets() *touchSets {
	return &touchSets{created: pathSet{}, modified: pathSet{}, deleted: pathSet{}}
}

func (t *touchSets) touches() schema.FileTouches {
	return schema.FileTouches{
		Created:  t.created.category(),
		Modified: t.modified.category(),
		Deleted:  t.deleted.category(),
	}
}

// categoryOf maps a status code to its category by its first letter, ignoring case.
// Other statuses (renames, copies, type changes) have no category.
func categoryOf(status string) (schema.FileCategoryName, bool) {
	switch strings.ToUpper(status[:1]) {
	case "A":
		return schema.CreatedCategory, true
	case "M":
		return schema.ModifiedCategory, true
	case "D":
		return schema.DeletedCategory, true
	default:
		return "", false
	}
}

func (t *touchSets) set(c schema.FileCategoryName) pathSet {
	switch c {
	case schema.CreatedCategory:
		return t.created
	case schema.ModifiedCategory:
		return t.modified
	default:
		return t.deleted
	}
}

// ParseFileTouches collects the files each author created, modified and
// deleted from `log --name-status --pretty=format:%an` output. An author
// whose records all have uncategorized statuses gets no entry.
func ParseFileTouches(out []byte) (map[string]schema.FileTouches, schema.ScanStats) {
	acc := make(map[string]*touchSets)
	stats := scanLog("name-status", out, ClassifyNameStatus, func(author string, line Line, stats *schema.ScanStats) {
		cat, ok := categoryOf(line.Status)
		if !ok {
			stats.Uncategorized++
			return
		}
		sets, ok := acc[author]
		if !ok {
			sets = newTouchSets()
			acc[author] = sets
		}
		sets.set(cat).add(line.Path)
	})

	result := make(map[string]schema.FileTouches, len(acc))
	for author, sets := range acc {
		result[author] = sets.touches()
	}
	return result, stats
}
