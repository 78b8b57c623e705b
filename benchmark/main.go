// Package main benchmarks the gitfolio CLI across repositories of different sizes.
// Each view runs several times without a cache and several times with the
// SQLite cache; the first cached run is reported as cold and the rest are
// averaged as warm. Results go to a timestamped CSV file.
//
// Prerequisites:
// - gitfolio binary installed and available in PATH
// - Test repositories cloned to the specified base directory
//
// Usage: go run benchmark/main.go [repo-base-dir] [repo...]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultRepos are profiled when no repositories are named on the command line.
var defaultRepos = []string{"csv-parser", "fd", "git", "kubernetes"}

// views are the subcommands timed for every repository.
var views = []string{"commits", "lines", "files", "profile"}

// BenchmarkResult holds the timings of one view on one repository.
type BenchmarkResult struct {
	Repository  string
	View        string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	TestRepos   []string
	CacheFile   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s [repo-base-dir] [repo...]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:    os.Args[1],
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		TestRepos:   defaultRepos,
		CacheFile:   filepath.Join(os.TempDir(), "gitfolio_benchmark_cache.db"),
	}
	if len(os.Args) > 2 {
		config.TestRepos = os.Args[2:]
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Every benchmark starts from an empty cache
	_ = os.Remove(config.CacheFile)
	defer func() { _ = os.Remove(config.CacheFile) }()

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that gitfolio and the test repositories exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gitfolio"); err != nil {
		return errors.New("gitfolio binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks times every view on every configured repository.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, view := range views {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, view))
		}
	}
	return results
}

// runBenchmarkSuite runs the no-cache and cache phases for one view.
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, view string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", view, repo)

	_, noCache := runBenchmark(config, repoPath, view, "none", config.NoCacheRuns)
	cold, warm := runBenchmark(config, repoPath, view, "sqlite", config.CacheRuns)

	result := BenchmarkResult{
		Repository:  repo,
		View:        view,
		NoCacheTime: formatAverage(append([]float64{}, noCache...)),
		ColdTime:    "TIMEOUT",
		WarmTime:    formatAverage(warm),
	}
	if cold > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", cold)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", result.NoCacheTime, result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark runs one view numRuns times and returns the first successful
// time and the times of the successful runs after it.
func runBenchmark(config BenchmarkConfig, repoPath, view, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{view, "--cache-backend", cacheBackend, "--output", "text", "--color", "no"}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", config.CacheFile)
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		cmd := exec.CommandContext(ctx, "gitfolio", args...)
		cmd.Dir = repoPath
		output, err := cmd.CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	// Without a cache every run is equivalent
	if cacheBackend == "none" {
		warmTimes = times
	}
	return coldTime, warmTimes
}

// formatAverage renders the mean of times, or TIMEOUT when none succeeded.
func formatAverage(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// isSuccess checks the table footer that every completed text run prints.
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Profiled in")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gitfolio_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"repo", "view", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.View, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the results grouped by view.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, view := range views {
		fmt.Printf("%s:\n", view)
		for _, result := range results {
			if result.View == view {
				fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
