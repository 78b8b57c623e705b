package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/internal/parquet"
	"github.com/huangsam/gitfolio/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProfileResults outputs the ranked authors, dispatching based on the output format configured.
func WriteProfileResults(report *schema.ProfileReport, ranked []schema.AuthorProfile, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileJSON(w, report, ranked)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileCSV(w, report, ranked, cfg)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteAuthorProfiles(w, parquet.ConvertProfiles(ranked, report.GeneratedAt))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table; its footer reports skipped lines
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileTable(w, report, ranked, cfg, duration)
		}, "Wrote table")
	}
	reportAnomalies(noticeWriter, report)
	return nil
}

// noticeWriter receives status lines that must stay out of structured output.
var noticeWriter io.Writer = os.Stderr

// reportAnomalies writes the skipped line count next to structured output,
// whose formats have no place for it.
func reportAnomalies(w io.Writer, report *schema.ProfileReport) {
	if n := report.Scans.Anomalies(); n > 0 {
		_, _ = fmt.Fprintf(w, "⚠️  Skipped %d log lines that matched no author record\n", n)
	}
}

// writeProfileTable generates and writes the human-readable table.
func writeProfileTable(w io.Writer, report *schema.ProfileReport, ranked []schema.AuthorProfile, cfg *contract.Config, duration time.Duration) error {
	cols := columnsFor(report.View, cfg.Detail)
	cc := cellContext{
		totalCommits: report.Summary.TotalCommits,
		fmtFloat:     createFormatter(cfg.Precision),
		useColors:    cfg.UseColors,
	}
	nameWidth := GetMaxTableNameWidth(cfg, len(cols))

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Author"}
	for _, c := range cols {
		headers = append(headers, c.header)
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, ap := range ranked {
		name := ap.Author
		if cfg.Abbreviate {
			name = contract.TruncateName(schema.AbbreviateName(name), nameWidth)
		}
		row := []string{strconv.Itoa(i + 1), name}
		for _, c := range cols {
			row = append(row, c.cell(ap.Profile, cc, false))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeTableFooter(w, report, len(ranked), cfg, duration)
}

// writeTableFooter prints totals and scan anomalies below the table.
func writeTableFooter(w io.Writer, report *schema.ProfileReport, shown int, cfg *contract.Config, duration time.Duration) error {
	s := report.Summary
	if _, err := fmt.Fprintf(w, "Showing %d of %d authors (total commits: %d, lines: +%d/-%d)\n",
		shown, s.TotalAuthors, s.TotalCommits, s.LinesAdded, s.LinesDeleted); err != nil {
		return err
	}
	if s.TopContributor != "" && s.TotalCommits > 0 {
		if _, err := fmt.Fprintf(w, "Top contributor: %s (collaborative: %t)\n", s.TopContributor, s.Collaborative); err != nil {
			return err
		}
	}
	if n := report.Scans.Anomalies(); n > 0 {
		if _, err := fmt.Fprintf(w, "Skipped %d log lines that matched no author record\n", n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Profiled in %v. Cache backend: %s\n", duration.Round(time.Millisecond), cfg.CacheBackend)
	return err
}

// writeProfileCSV writes one row per ranked author with every column of the view.
func writeProfileCSV(w io.Writer, report *schema.ProfileReport, ranked []schema.AuthorProfile, cfg *contract.Config) error {
	cols := columnsFor(report.View, true)
	cc := cellContext{
		totalCommits: report.Summary.TotalCommits,
		fmtFloat:     createFormatter(cfg.Precision),
	}
	header := []string{"rank", "author"}
	for _, c := range cols {
		header = append(header, c.csvName)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, ap := range ranked {
			rec := []string{strconv.Itoa(i + 1), ap.Author}
			for _, c := range cols {
				rec = append(rec, c.cell(ap.Profile, cc, true))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeProfileJSON writes the ranked authors as a mapping from author name.
// The profile view wraps the mapping with the summary and scan stats; the
// single-dimension views emit only that dimension per author.
func writeProfileJSON(w io.Writer, report *schema.ProfileReport, ranked []schema.AuthorProfile) error {
	switch report.View {
	case schema.CommitsView:
		out := make(map[string]int, len(ranked))
		for _, ap := range ranked {
			out[ap.Author] = ap.Profile.Commits
		}
		return writeJSON(w, out)
	case schema.LinesView:
		out := make(map[string]schema.LineStats, len(ranked))
		for _, ap := range ranked {
			out[ap.Author] = ap.Profile.Lines
		}
		return writeJSON(w, out)
	case schema.FilesView:
		out := make(map[string]schema.FileTouches, len(ranked))
		for _, ap := range ranked {
			out[ap.Author] = ap.Profile.Files
		}
		return writeJSON(w, out)
	}

	type jsonReport struct {
		schema.ProfileReport
		Ranking []string `json:"ranking"`
	}
	out := jsonReport{ProfileReport: *report, Ranking: make([]string, 0, len(ranked))}
	out.Authors = make(map[string]schema.ContributionProfile, len(ranked))
	for _, ap := range ranked {
		out.Authors[ap.Author] = ap.Profile
		out.Ranking = append(out.Ranking, ap.Author)
	}
	return writeJSON(w, out)
}
