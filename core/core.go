// Package core orchestrates a profiling run: repository access, caching,
// history tracking and ranking.
package core

import (
	"context"
	"time"

	"github.com/huangsam/gitfolio/core/profile"
	"github.com/huangsam/gitfolio/internal/archive"
	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/internal/outwriter"
	"github.com/huangsam/gitfolio/schema"
)

// ExecutorFunc defines the function signature for executing a profiling view.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteProfile profiles the configured source and prints the ranked authors.
// It serves as the main entry point for every view.
func ExecuteProfile(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	client := contract.NewLocalGitClient(cfg.GitTimeout)
	report, ranked, err := GetProfileResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteProfile(report, ranked, cfg, time.Since(start))
}

// GetProfileResults locates the repository behind cfg.SourcePath, profiles it
// and returns the full report plus the filtered, ranked and limited authors.
// Any extracted copy of the repository is removed before returning.
func GetProfileResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.ProfileReport, []schema.AuthorProfile, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogProfileHeader(cfg)
	}

	ws, err := archive.Open(ctx, cfg.SourcePath)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			contract.LogWarn("Failed to remove extracted repository", err)
		}
	}()

	contract.Logger().WithField("repo", ws.RepoDir).WithField("extracted", ws.Extracted()).Debug("repository located")

	repoHash, err := client.GetRepoHash(ctx, ws.RepoDir)
	if err != nil {
		contract.Logger().WithError(err).Debug("repository hash unavailable, skipping cache")
		repoHash = ""
	}

	run := beginRun(cfg, mgr)
	result, err := cachedProfile(ctx, cfg, profile.NewProfiler(client, ws.RepoDir), repoHash, mgr)
	if err != nil {
		return nil, nil, err
	}

	report := &schema.ProfileReport{
		Source:      cfg.SourcePath,
		RepoHash:    repoHash,
		View:        cfg.View,
		GeneratedAt: time.Now(),
		Authors:     result.Authors,
		Summary:     profile.Summarize(result.Authors),
		Scans:       result.Scans,
	}
	if n := report.Scans.Anomalies(); n > 0 {
		contract.Logger().WithField("lines", n).Info("log lines did not contribute to any author")
	}
	run.finish(report)

	ranked := RankAuthors(FilterAuthors(result.Authors, cfg.AuthorFilter), cfg.ResultLimit)
	return report, ranked, nil
}
