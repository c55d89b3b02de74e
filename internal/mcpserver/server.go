// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes memo tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jwlee-dev/memopad/internal/memoview"
	"github.com/jwlee-dev/memopad/internal/models"
	"github.com/jwlee-dev/memopad/internal/store"
)

// Server wraps the MCP server with memo tools. All tools operate on the
// persisted memos of a single account fixed at construction time.
type Server struct {
	mcp       *server.MCPServer
	store     store.Store
	accountID string
}

// New creates a new MCP server with all memo tools registered.
func New(st store.Store, accountID string) *Server {
	s := &Server{store: st, accountID: accountID}

	s.mcp = server.NewMCPServer(
		"Memopad",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_memos",
		mcp.WithDescription("List all memos, pinned ones first."),
	), s.listMemos)

	s.mcp.AddTool(mcp.NewTool("search_memos",
		mcp.WithDescription("Case-insensitive substring search over memo titles and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchMemos)

	s.mcp.AddTool(mcp.NewTool("create_memo",
		mcp.WithDescription("Create a new memo. Color must be one of: peach, mint, lavender, lemon, rose, sky (defaults to peach)."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Memo title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Memo body text")),
		mcp.WithString("color", mcp.Description("Optional color tag")),
	), s.createMemo)

	s.mcp.AddTool(mcp.NewTool("toggle_pin",
		mcp.WithDescription("Pin or unpin a memo by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Memo id")),
	), s.togglePin)

	s.mcp.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Memo counts: total, pinned, and created today."),
	), s.getStats)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listMemos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memos, err := s.store.ListMemos(ctx, s.accountID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view := memoview.Filter(memos, "")
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchMemos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	memos, err := s.store.ListMemos(ctx, s.accountID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view := memoview.Filter(memos, query)
	if len(view.Pinned)+len(view.Others) == 0 {
		return mcp.NewToolResultText("no memos match"), nil
	}
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createMemo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw := ""
	if v, ok := req.GetArguments()["color"]; ok {
		str, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("color must be a string"), nil
		}
		raw = str
	}
	color, err := models.ParseColor(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	now := time.Now()
	m := models.Memo{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveMemo(ctx, s.accountID, m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", m.ID)), nil
}

func (s *Server) togglePin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	memos, err := s.store.ListMemos(ctx, s.accountID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, m := range memos {
		if m.ID != id {
			continue
		}
		m.IsPinned = !m.IsPinned
		m.UpdatedAt = time.Now()
		if err := s.store.SaveMemo(ctx, s.accountID, m); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if m.IsPinned {
			return mcp.NewToolResultText(fmt.Sprintf("pinned: %s", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("unpinned: %s", id)), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
}

func (s *Server) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memos, err := s.store.ListMemos(ctx, s.accountID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stats := memoview.Derive(memos, time.Now())
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
