package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jwlee-dev/memopad/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db := testutil.TestDB(t)
	acc := testutil.TestAccount(t, db, "mcp@example.com")
	return New(db, acc.ID)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_memos":
		result, err = srv.listMemos(ctx, req)
	case "search_memos":
		result, err = srv.searchMemos(ctx, req)
	case "create_memo":
		result, err = srv.createMemo(ctx, req)
	case "toggle_pin":
		result, err = srv.togglePin(ctx, req)
	case "get_stats":
		result, err = srv.getStats(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndListMemos(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_memo", map[string]interface{}{
		"title":   "회의 준비",
		"content": "안건 정리",
		"color":   "mint",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: ") {
		t.Fatalf("create result = %q", text)
	}

	r = callTool(t, srv, "list_memos", map[string]interface{}{})
	text = resultText(r)
	if !strings.Contains(text, "회의 준비") {
		t.Errorf("list missing created memo: %q", text)
	}
}

func TestCreateMemoRejectsUnknownColor(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_memo", map[string]interface{}{
		"title":   "x",
		"content": "y",
		"color":   "magenta",
	})
	if !r.IsError {
		t.Error("expected error for unknown color")
	}
}

func TestCreateMemoRejectsNonStringColor(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_memo", map[string]interface{}{
		"title":   "x",
		"content": "y",
		"color":   7,
	})
	if !r.IsError {
		t.Fatal("expected error for non-string color")
	}
	if got := resultText(r); got != "color must be a string" {
		t.Errorf("message = %q", got)
	}
}

func TestSearchMemos(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_memo", map[string]interface{}{"title": "장보기 목록", "content": "우유"})
	_ = callTool(t, srv, "create_memo", map[string]interface{}{"title": "독서 기록", "content": "소설"})

	r := callTool(t, srv, "search_memos", map[string]interface{}{"query": "장보기"})
	text := resultText(r)
	if !strings.Contains(text, "장보기 목록") || strings.Contains(text, "독서 기록") {
		t.Errorf("search result = %q", text)
	}

	r = callTool(t, srv, "search_memos", map[string]interface{}{"query": "zzz"})
	if resultText(r) != "no memos match" {
		t.Errorf("no-match result = %q", resultText(r))
	}
}

func TestTogglePin(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "create_memo", map[string]interface{}{"title": "a", "content": "b"})
	id := strings.TrimPrefix(resultText(r), "created: ")

	r = callTool(t, srv, "toggle_pin", map[string]interface{}{"id": id})
	if resultText(r) != "pinned: "+id {
		t.Errorf("first toggle = %q", resultText(r))
	}
	r = callTool(t, srv, "toggle_pin", map[string]interface{}{"id": id})
	if resultText(r) != "unpinned: "+id {
		t.Errorf("second toggle = %q", resultText(r))
	}

	r = callTool(t, srv, "toggle_pin", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown id")
	}
}

func TestGetStats(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_memo", map[string]interface{}{"title": "a", "content": "b"})

	r := callTool(t, srv, "get_stats", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, `"total": 1`) {
		t.Errorf("stats = %q", text)
	}
}
