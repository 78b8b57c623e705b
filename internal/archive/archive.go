// Package archive locates a git repository inside an uploaded ZIP archive
// or a plain directory, and owns any temporary files that takes.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/klauspost/compress/zip"
)

// gitMarker is the entry that identifies a repository root.
const gitMarker = ".git"

// Workspace is a located repository. Close must be called on every exit
// path; it removes the extraction directory, if one was created.
type Workspace struct {
	RepoDir string // directory containing the .git marker
	tempDir string // removed on Close; empty for directory sources
}

// Close releases the temporary files behind the workspace. It is safe to
// call more than once and on a nil workspace.
func (w *Workspace) Close() error {
	if w == nil || w.tempDir == "" {
		return nil
	}
	dir := w.tempDir
	w.tempDir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}

// Extracted reports whether the workspace unpacked an archive.
func (w *Workspace) Extracted() bool {
	return w != nil && w.tempDir != ""
}

// Open locates the repository in src, which may be a ZIP archive or a
// directory. ZIP archives are unpacked into a fresh temporary directory.
// The repository root is src itself or one of its direct subdirectories.
// If no root is found, the error matches contract.ErrRepositoryNotFound
// and nothing is left behind.
func Open(ctx context.Context, src string) (*Workspace, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	if info.IsDir() {
		root, err := findRepoRoot(src)
		if err != nil {
			return nil, err
		}
		return &Workspace{RepoDir: root}, nil
	}

	tempDir, err := os.MkdirTemp("", "gitfolio-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	ws := &Workspace{tempDir: tempDir}
	ok := false
	defer func() {
		if !ok {
			_ = ws.Close()
		}
	}()

	if err := extractZip(ctx, src, tempDir); err != nil {
		return nil, err
	}
	root, err := findRepoRoot(tempDir)
	if err != nil {
		return nil, err
	}
	ws.RepoDir = root
	ok = true
	contract.Logger().WithField("repo", root).Debug("extracted archive")
	return ws, nil
}

// findRepoRoot returns dir if it holds the marker, else the first direct
// subdirectory (in name order) that does.
func findRepoRoot(dir string) (string, error) {
	if hasMarker(dir) {
		return dir, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if !e.IsDir() || e.Name() == gitMarker {
			continue
		}
		candidate := filepath.Join(dir, e.Name())
		if hasMarker(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s", contract.ErrRepositoryNotFound, dir)
}

// hasMarker accepts both a .git directory and a .git file (worktrees, submodules).
func hasMarker(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, gitMarker))
	return err == nil
}

// extractZip unpacks every entry of the archive under dest, rejecting
// entries that would escape it.
func extractZip(ctx context.Context, src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("read archive %s: %w", src, err)
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractEntry(f, dest); err != nil {
			return err
		}
	}
	return nil
}

// errUnsafePath is returned for entries whose names point outside the destination.
var errUnsafePath = errors.New("archive entry escapes destination")

func extractEntry(f *zip.File, dest string) error {
	name := filepath.FromSlash(f.Name)
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", errUnsafePath, f.Name)
	}

	mode := f.Mode()
	if mode.IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if mode&os.ModeSymlink != 0 {
		contract.Logger().WithField("entry", f.Name).Debug("skipping symlink in archive")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return out.Close()
}
