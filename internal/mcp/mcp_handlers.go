package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/gitfolio/core"
	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/huangsam/gitfolio/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	client  contract.GitClient
}

// profileResponse is the JSON payload of profile_contributors.
type profileResponse struct {
	Source   string                 `json:"source"`
	View     schema.ViewMode        `json:"view"`
	RepoHash string                 `json:"repo_hash,omitempty"`
	Summary  schema.ProfileSummary  `json:"summary"`
	Authors  []schema.AuthorProfile `json:"authors"`
	Scans    schema.ScanReport      `json:"scans"`
}

func (h *toolHandler) handleProfileContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyProfileArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile parameters: %v", err)), nil
	}

	client := h.client
	if client == nil {
		client = contract.NewLocalGitClient(cfg.GitTimeout)
	}
	report, ranked, err := core.GetProfileResults(core.WithSuppressHeader(ctx), cfg, client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profiling failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(profileResponse{
		Source:   report.Source,
		View:     report.View,
		RepoHash: report.RepoHash,
		Summary:  report.Summary,
		Authors:  ranked,
		Scans:    report.Scans,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode profile: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyProfileArgs overrides the base config with the tool arguments.
func applyProfileArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	if src := request.GetString("source", ""); src != "" {
		abs, err := filepath.Abs(src)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("cannot read source %q: %w", src, err)
		}
		cfg.SourcePath = abs
	}
	if cfg.SourcePath == "" {
		return fmt.Errorf("source is required")
	}

	if v := request.GetString("view", ""); v != "" {
		view := schema.ViewMode(strings.ToLower(v))
		if _, ok := schema.ValidViewModes[view]; !ok {
			return fmt.Errorf("invalid view '%s'. must be profile, commits, lines, files", v)
		}
		cfg.View = view
	}
	if cfg.View == "" {
		cfg.View = schema.ProfileView
	}

	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", contract.MaxResultLimit, l)
		}
		cfg.ResultLimit = l
	}
	cfg.AuthorFilter = request.GetString("author", cfg.AuthorFilter)
	cfg.Languages = request.GetBool("languages", cfg.Languages)
	return nil
}
