package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const repoDir = "/tmp/repo"

func TestProfiler_NotExtracted(t *testing.T) {
	ctx := context.Background()
	mockClient := new(contract.MockGitClient)

	for _, p := range []*Profiler{nil, {}, NewProfiler(mockClient, ""), NewProfiler(nil, repoDir)} {
		_, _, err := p.CommitCounts(ctx)
		assert.ErrorIs(t, err, contract.ErrNotExtracted)
		_, _, err = p.LineChanges(ctx)
		assert.ErrorIs(t, err, contract.ErrNotExtracted)
		_, _, err = p.FileTouches(ctx)
		assert.ErrorIs(t, err, contract.ErrNotExtracted)
		_, err = p.Profile(ctx, schema.ProfileView, true)
		assert.ErrorIs(t, err, contract.ErrNotExtracted)
	}
	mockClient.AssertNotCalled(t, "GetAuthorLog", mock.Anything, mock.Anything)
}

func TestProfiler_Profile(t *testing.T) {
	ctx := context.Background()
	mockClient := new(contract.MockGitClient)
	mockClient.On("GetAuthorLog", ctx, repoDir).Return([]byte("Alice\nBob\nAlice\nDana"), nil)
	mockClient.On("GetNumstatLog", ctx, repoDir).Return([]byte("Alice\n5\t0\tmain.go\nBob\n0\t3\tREADME.md\nAlice\n1\t1\tmain.go"), nil)
	mockClient.On("GetNameStatusLog", ctx, repoDir).Return([]byte("Alice\nA\tmain.go\nBob\nD\tREADME.md\nAlice\nM\tmain.go"), nil)

	res, err := NewProfiler(mockClient, repoDir).Profile(ctx, schema.ProfileView, true)
	require.NoError(t, err)

	require.Len(t, res.Authors, 3)
	alice := res.Authors["Alice"]
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, schema.NewLineStats(6, 1), alice.Lines)
	assert.Equal(t, []string{"main.go"}, alice.Files.Created.Files)
	assert.Equal(t, "Go", alice.PrimaryLanguage)

	dana := res.Authors["Dana"]
	assert.Equal(t, 1, dana.Commits)
	assert.Equal(t, schema.EmptyFileTouches(), dana.Files)

	require.NotNil(t, res.Scans.Commits)
	require.NotNil(t, res.Scans.Lines)
	require.NotNil(t, res.Scans.Files)
	assert.Equal(t, 3, res.Scans.Lines.Records)
	mockClient.AssertExpectations(t)
}

func TestProfiler_SingleView(t *testing.T) {
	ctx := context.Background()
	mockClient := new(contract.MockGitClient)
	mockClient.On("GetNumstatLog", ctx, repoDir).Return([]byte("Alice\n2\t1\ta.go"), nil).Once()

	res, err := NewProfiler(mockClient, repoDir).Profile(ctx, schema.LinesView, true)
	require.NoError(t, err)
	assert.Nil(t, res.Scans.Commits)
	assert.Nil(t, res.Scans.Files)
	assert.Equal(t, 1, res.Authors["Alice"].Lines.Cumulative)
	assert.Empty(t, res.Authors["Alice"].Languages, "no file scan, no languages")

	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "GetAuthorLog", mock.Anything, mock.Anything)
}

func TestProfiler_ToolFailurePropagates(t *testing.T) {
	ctx := context.Background()
	mockClient := new(contract.MockGitClient)
	toolErr := &contract.ToolError{Args: []string{"log"}, RepoPath: repoDir, Err: errors.New("exit status 128")}
	mockClient.On("GetAuthorLog", ctx, repoDir).Return(nil, toolErr).Once()

	_, err := NewProfiler(mockClient, repoDir).Profile(ctx, schema.ProfileView, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrToolInvocationFailed)
	mockClient.AssertNumberOfCalls(t, "GetAuthorLog", 1)
	mockClient.AssertNotCalled(t, "GetNumstatLog", mock.Anything, mock.Anything)
}
