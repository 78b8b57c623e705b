package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultGitTimeout bounds every git invocation. Log queries on large
// histories are slow, so this is generous.
const DefaultGitTimeout = 2 * time.Minute

// Log argument sets for the three scans.
var (
	authorLogArgs     = []string{"log", "--pretty=format:%an"}
	numstatLogArgs    = []string{"log", "--pretty=format:%an", "--numstat"}
	nameStatusLogArgs = []string{"log", "--name-status", "--pretty=format:%an"}
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct {
	Timeout time.Duration
}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
// A non-positive timeout falls back to DefaultGitTimeout.
func NewLocalGitClient(timeout time.Duration) *LocalGitClient {
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	return &LocalGitClient{Timeout: timeout}
}

// Run executes a git command and returns its stdout output.
// Every failure is a *ToolError, which matches ErrToolInvocationFailed.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	toolErr := &ToolError{Args: args, RepoPath: repoPath, Err: err}
	if ctxErr := ctx.Err(); ctxErr != nil {
		toolErr.Err = fmt.Errorf("timed out after %s: %w", timeout, ctxErr)
		return nil, toolErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.Stderr = strings.TrimSpace(string(exitErr.Stderr))
		return nil, toolErr
	}
	toolErr.Err = fmt.Errorf("%w. Ensure Git is installed and available on your PATH", err)
	return nil, toolErr
}

// GetAuthorLog implements the GitClient interface.
func (c *LocalGitClient) GetAuthorLog(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, authorLogArgs...)
}

// GetNumstatLog implements the GitClient interface.
func (c *LocalGitClient) GetNumstatLog(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, numstatLogArgs...)
}

// GetNameStatusLog implements the GitClient interface.
func (c *LocalGitClient) GetNameStatusLog(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, nameStatusLogArgs...)
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
