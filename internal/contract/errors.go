package contract

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the repository access layer and the profiler.
var (
	// ErrRepositoryNotFound means the supplied archive or directory holds no .git marker.
	ErrRepositoryNotFound = errors.New("no git repository found")

	// ErrNotExtracted means a profiling method ran before a repository was located.
	ErrNotExtracted = errors.New("repository not extracted: locate a repository before profiling")

	// ErrToolInvocationFailed means the external git call failed, timed out or could not start.
	ErrToolInvocationFailed = errors.New("git invocation failed")
)

// ToolError describes one failed git invocation.
type ToolError struct {
	Args     []string
	RepoPath string
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("git %s failed in %q: %v", strings.Join(e.Args, " "), e.RepoPath, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is makes every ToolError match ErrToolInvocationFailed.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolInvocationFailed
}
