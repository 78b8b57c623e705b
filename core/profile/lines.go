package profile

import "github.com/huangsam/gitfolio/schema"

// ParseLineChanges sums added and deleted lines per author from
// `log --pretty=format:%an --numstat` output. A "-" count (binary file)
// adds nothing.
func ParseLineChanges(out []byte) (map[string]schema.LineStats, schema.ScanStats) {
	totals := make(map[string]schema.LineStats)
	stats := scanLog("numstat", out, ClassifyNumstat, func(author string, line Line, _ *schema.ScanStats) {
		cur := totals[author]
		totals[author] = schema.NewLineStats(cur.Added+line.Added, cur.Deleted+line.Deleted)
	})
	return totals, stats
}
