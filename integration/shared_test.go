//go:build integration || database

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedGitfolioPath holds the path to a shared gitfolio binary built once for all tests.
	sharedGitfolioPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getGitfolioBinary returns the path to the gitfolio binary, building it once if needed.
func getGitfolioBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "gitfolio-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		gitfolioPath := filepath.Join(tempDir, "gitfolio")
		buildCmd := exec.Command("go", "build", "-o", gitfolioPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build gitfolio: %v", err))
		}

		sharedGitfolioPath = gitfolioPath
	})

	return sharedGitfolioPath
}

// skipIfGitNotAvailable skips the test if git binary is not found in PATH.
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// fixtureCommit is one commit of the fixture repository.
type fixtureCommit struct {
	author string
	files  map[string]string // path -> content; empty content removes the file
}

// fixtureHistory has three authors, a deletion and a rewrite.
var fixtureHistory = []fixtureCommit{
	{author: "Alice", files: map[string]string{"main.go": "package main\n\nfunc main() {}\n", "README.md": "# demo\n"}},
	{author: "Bob", files: map[string]string{"util.py": "def f():\n    return 1\n"}},
	{author: "Alice", files: map[string]string{"main.go": "package main\n\nfunc main() {\n\tprintln(1)\n}\n"}},
	{author: "Carol", files: map[string]string{"README.md": ""}},
	{author: "Bob", files: map[string]string{"util.py": "def f():\n    return 2\n"}},
}

// newFixtureRepo creates a git repository in a temp dir with fixtureHistory.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	runGit(t, dir, "", "init", "--quiet")
	for i, c := range fixtureHistory {
		for path, content := range c.files {
			full := filepath.Join(dir, path)
			if content == "" {
				runGit(t, dir, "", "rm", "--quiet", path)
				continue
			}
			require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
			runGit(t, dir, "", "add", path)
		}
		runGit(t, dir, c.author, "commit", "--quiet", "-m", fmt.Sprintf("commit %d", i+1))
	}
	return dir
}

// runGit runs git in dir, committing as author when given.
func runGit(t *testing.T, dir, author string, args ...string) string {
	t.Helper()
	if author == "" {
		author = "Fixture"
	}
	email := author + "@example.com"
	full := append([]string{"-c", "user.name=" + author, "-c", "user.email=" + email, "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// runGitfolio runs the binary in dir and returns stdout and stderr.
func runGitfolio(t *testing.T, dir string, env []string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(getGitfolioBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
	}
	return stdout.String(), stderr.String(), err
}
