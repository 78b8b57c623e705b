package profile

import (
	"strings"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
	"github.com/sirupsen/logrus"
)

// scanState carries the current author through one forward scan.
type scanState struct {
	name          string
	currentAuthor string
	hasAuthor     bool
	stats         schema.ScanStats
}

// scanLog drives a single pass over log output. Each line is classified,
// headers move the current author, and records go to onRecord together
// with the author they belong to. Malformed lines and orphans are counted
// and logged at debug level; they never stop the scan.
func scanLog(name string, out []byte, classify func(string) Line, onRecord func(author string, line Line, stats *schema.ScanStats)) schema.ScanStats {
	st := &scanState{name: name}
	if len(out) == 0 {
		return st.stats
	}

	for i, raw := range strings.Split(string(out), "\n") {
		st.stats.Lines++
		line := classify(raw)
		switch line.Kind {
		case KindBlank:
			continue
		case KindHeader:
			st.stats.Headers++
			st.currentAuthor = line.Author
			st.hasAuthor = true
		case KindUnrecognized:
			st.stats.Skipped++
			st.logSkip(i+1, raw, "malformed line")
		default:
			if !st.hasAuthor {
				st.stats.Orphaned++
				st.logSkip(i+1, raw, "record before any author")
				continue
			}
			st.stats.Records++
			onRecord(st.currentAuthor, line, &st.stats)
		}
	}
	return st.stats
}

func (st *scanState) logSkip(lineNo int, raw, reason string) {
	contract.Logger().WithFields(logrus.Fields{
		"scan": st.name,
		"line": lineNo,
		"text": strings.TrimSuffix(raw, "\r"),
	}).Debug(reason)
}
