package profile

import (
	"path/filepath"
	"sort"

	"github.com/huangsam/gitfolio/schema"
	"github.com/src-d/enry/v2"
)

// DetectLanguages maps the files an author created or modified to
// languages by file name. Vendored paths and unknown extensions are not
// counted. Shares are ordered by file count, then language name.
func DetectLanguages(files schema.FileTouches) []schema.LanguageShare {
	seen := make(map[string]struct{})
	counts := make(map[string]int)
	for _, cat := range []schema.FileCategory{files.Created, files.Modified} {
		for _, f := range cat.Files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			if enry.IsVendor(f) {
				continue
			}
			lang := enry.GetLanguage(filepath.Base(f), nil)
			if lang == "" {
				continue
			}
			counts[lang]++
		}
	}

	shares := make([]schema.LanguageShare, 0, len(counts))
	for lang, n := range counts {
		shares = append(shares, schema.LanguageShare{Language: lang, Files: n})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Files != shares[j].Files {
			return shares[i].Files > shares[j].Files
		}
		return shares[i].Language < shares[j].Language
	})
	return shares
}

// AttachLanguages fills the language fields of every profile in place.
func AttachLanguages(profiles map[string]schema.ContributionProfile) {
	for author, p := range profiles {
		p.Languages, p.PrimaryLanguage = nil, ""
		if shares := DetectLanguages(p.Files); len(shares) > 0 {
			p.Languages = shares
			p.PrimaryLanguage = shares[0].Language
		}
		profiles[author] = p
	}
}
