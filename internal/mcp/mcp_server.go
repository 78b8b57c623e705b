// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitfolio/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitfolio MCP server without starting it.
// A nil client makes every call use a local git client with the configured timeout.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"gitfolio Contribution Profiler",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		client:  client,
	}

	s.AddTool(mcp.NewTool("profile_contributors",
		mcp.WithDescription("Profile every author of a git repository: commits, line changes and created, modified or deleted files."),
		mcp.WithString("source", mcp.Description("Path to a ZIP archive or directory containing the repository (defaults to the server's configured source).")),
		mcp.WithString("view", mcp.Description("Which dimensions to compute. Defaults to 'profile' (all of them)."), mcp.Enum("profile", "commits", "lines", "files")),
		mcp.WithString("author", mcp.Description("Only return authors whose name contains this text (case-insensitive).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned.")),
		mcp.WithBoolean("languages", mcp.Description("Attach a per-author language breakdown. Defaults to the server setting.")),
	), h.handleProfileContributors)

	return s
}

// StartMCPServer starts the gitfolio MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr, nil)
	return server.ServeStdio(s)
}
