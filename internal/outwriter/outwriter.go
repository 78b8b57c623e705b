// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProfile prints ranked authors using the configured output format.
func (ow *OutWriter) WriteProfile(report *schema.ProfileReport, ranked []schema.AuthorProfile, cfg *contract.Config, duration time.Duration) error {
	return WriteProfileResults(report, ranked, cfg, duration)
}

// LogProfileHeader prints a one-line header naming the source and view.
// It goes to stderr so structured output on stdout stays parseable.
func LogProfileHeader(cfg *contract.Config) {
	name := filepath.Base(cfg.SourcePath)
	if name == "" || name == "." {
		name = "current"
	}
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Source: %s (View: %s)\n", name, cfg.View)
}
