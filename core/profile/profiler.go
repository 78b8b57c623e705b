package profile

import (
	"context"
	"fmt"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
)

// Profiler runs the log scans against one located repository.
// The zero value has no repository and refuses to run.
type Profiler struct {
	client  contract.GitClient
	repoDir string
}

// NewProfiler binds a git client to a located repository directory.
func NewProfiler(client contract.GitClient, repoDir string) *Profiler {
	return &Profiler{client: client, repoDir: repoDir}
}

// Result is the outcome of a full profiling pass.
type Result struct {
	Authors map[string]schema.ContributionProfile
	Scans   schema.ScanReport
}

func (p *Profiler) ready() error {
	if p == nil || p.repoDir == "" || p.client == nil {
		return contract.ErrNotExtracted
	}
	return nil
}

// CommitCounts returns the number of commits per author.
func (p *Profiler) CommitCounts(ctx context.Context) (map[string]int, schema.ScanStats, error) {
	if err := p.ready(); err != nil {
		return nil, schema.ScanStats{}, err
	}
	out, err := p.client.GetAuthorLog(ctx, p.repoDir)
	if err != nil {
		return nil, schema.ScanStats{}, fmt.Errorf("author log: %w", err)
	}
	counts, stats := ParseCommitCounts(out)
	return counts, stats, nil
}

// LineChanges returns added, deleted and cumulative lines per author.
func (p *Profiler) LineChanges(ctx context.Context) (map[string]schema.LineStats, schema.ScanStats, error) {
	if err := p.ready(); err != nil {
		return nil, schema.ScanStats{}, err
	}
	out, err := p.client.GetNumstatLog(ctx, p.repoDir)
	if err != nil {
		return nil, schema.ScanStats{}, fmt.Errorf("numstat log: %w", err)
	}
	totals, stats := ParseLineChanges(out)
	return totals, stats, nil
}

// FileTouches returns the created, modified and deleted file sets per author.
func (p *Profiler) FileTouches(ctx context.Context) (map[string]schema.FileTouches, schema.ScanStats, error) {
	if err := p.ready(); err != nil {
		return nil, schema.ScanStats{}, err
	}
	out, err := p.client.GetNameStatusLog(ctx, p.repoDir)
	if err != nil {
		return nil, schema.ScanStats{}, fmt.Errorf("name-status log: %w", err)
	}
	touches, stats := ParseFileTouches(out)
	return touches, stats, nil
}

// Profile runs the scans a view needs and merges them. The profile view
// runs all three; the other views run only their own scan. Languages are
// attached when requested and file sets are available.
func (p *Profiler) Profile(ctx context.Context, view schema.ViewMode, languages bool) (*Result, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}

	var (
		commits map[string]int
		lines   map[string]schema.LineStats
		files   map[string]schema.FileTouches
		report  schema.ScanReport
	)
	all := view == schema.ProfileView || view == ""

	if all || view == schema.CommitsView {
		c, stats, err := p.CommitCounts(ctx)
		if err != nil {
			return nil, err
		}
		commits, report.Commits = c, &stats
	}
	if all || view == schema.LinesView {
		l, stats, err := p.LineChanges(ctx)
		if err != nil {
			return nil, err
		}
		lines, report.Lines = l, &stats
	}
	if all || view == schema.FilesView {
		f, stats, err := p.FileTouches(ctx)
		if err != nil {
			return nil, err
		}
		files, report.Files = f, &stats
	}

	authors := Merge(commits, lines, files)
	if languages && files != nil {
		AttachLanguages(authors)
	}
	return &Result{Authors: authors, Scans: report}, nil
}
