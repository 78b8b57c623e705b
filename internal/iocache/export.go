package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/internal/parquet"
)

// ExecuteHistoryExport writes the run history to two Parquet files next to
// outputFile: <outputFile>.profile_runs.parquet and <outputFile>.author_profiles.parquet.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total profiling runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total author records: %d\n", status.TableSizes[authorProfilesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve profile runs: %w", err)
	}
	authors, err := store.GetAllAuthorProfiles()
	if err != nil {
		return fmt.Errorf("failed to retrieve author profiles: %w", err)
	}

	runsFile := outputFile + ".profile_runs.parquet"
	parquetRuns := parquet.ConvertProfileRunRecords(runs)
	if err := parquet.WriteProfileRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write profile runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d profiling runs to: %s\n", len(parquetRuns), runsFile)

	authorsFile := outputFile + ".author_profiles.parquet"
	parquetAuthors := parquet.ConvertAuthorProfileRecords(authors)
	if err := parquet.WriteAuthorProfilesParquet(parquetAuthors, authorsFile); err != nil {
		return fmt.Errorf("failed to write author profiles: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d author records to: %s\n", len(parquetAuthors), authorsFile)
	return nil
}
