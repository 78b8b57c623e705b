package profile

import (
	"strings"

	"github.com/huangsam/gitfolio/schema"
)

// ParseCommitCounts counts commits per author in a bare author log
// (`log --pretty=format:%an`), where every non-blank line is one commit.
// Names are kept verbatim apart from a trailing carriage return, so
// differently spelled names count as different authors.
func ParseCommitCounts(out []byte) (map[string]int, schema.ScanStats) {
	counts := make(map[string]int)
	var stats schema.ScanStats
	if len(out) == 0 {
		return counts, stats
	}

	for _, l := range strings.Split(string(out), "\n") {
		stats.Lines++
		author := strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(author) == "" {
			continue // Skip blank lines
		}
		stats.Headers++
		counts[author]++
	}
	return counts, stats
}
