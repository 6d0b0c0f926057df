package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/search"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()
	_, store := testutil.TestVault(t)
	logger := testutil.SilentLogger()
	svc := noteservice.NewService(store, search.NewEngine(store, logger), logger)
	return New(svc), store
}

// callTool invokes a tool handler directly; mcp-go has no in-process
// call-tool test helper.
func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "create_conversation_note":
		result, err = srv.createConversationNote(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "get_note_structure":
		result, err = srv.getNoteStructure(ctx, req)
	case "get_note_contract":
		result, err = srv.getNoteContract(ctx, req)
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

func TestCreateConversationNoteTool(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "create_conversation_note", map[string]interface{}{
		"topic":      "Weekly sync",
		"highlights": []interface{}{"point one", "point two"},
		"style":      "concise",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}

	var res noteservice.CreateResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatalf("bad JSON result: %v", err)
	}
	if !res.Success || res.Path == "" {
		t.Fatalf("result = %+v", res)
	}
	data, err := store.Read(res.Path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(string(data), "- point one") {
		t.Errorf("content = %q", data)
	}
}

func TestCreateConversationNote_MissingHighlights(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "create_conversation_note", map[string]interface{}{
		"topic": "No points",
	})
	if !r.IsError {
		t.Error("expected error for missing highlights")
	}
}

func TestSearchNotesTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("a.md", []byte("the magic word"))
	_ = store.Write("b.md", []byte("nothing here"))

	r := callTool(t, srv, "search_notes", map[string]interface{}{
		"query": "magic",
	})
	if r.IsError {
		t.Fatalf("search failed: %s", resultText(r))
	}
	var results []search.Result
	if err := json.Unmarshal([]byte(resultText(r)), &results); err != nil {
		t.Fatalf("bad JSON result: %v", err)
	}
	if len(results) != 1 || results[0].Path != "a.md" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchNotesTool_TagsAndNumbers(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("tagged.md", []byte("body #keep"))
	_ = store.Write("other.md", []byte("body"))

	// JSON-shaped arguments: arrays as []interface{}, numbers as float64.
	r := callTool(t, srv, "search_notes", map[string]interface{}{
		"tags":  []interface{}{"keep"},
		"limit": float64(5),
	})
	var results []search.Result
	if err := json.Unmarshal([]byte(resultText(r)), &results); err != nil {
		t.Fatalf("bad JSON result: %v", err)
	}
	if len(results) != 1 || results[0].Path != "tagged.md" {
		t.Errorf("results = %+v", results)
	}
}

func TestListNotesTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("b.md", []byte("b"))
	_ = store.Write("a.md", []byte("a"))

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("list failed: %s", resultText(r))
	}
	var res search.ListResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatalf("bad JSON result: %v", err)
	}
	if res.Total != 2 || res.Notes[0].Filename != "a.md" {
		t.Errorf("result = %+v", res)
	}
}

func TestGetNoteStructureTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("n.md", []byte("---\ntags: [\"x\"]\n---\n# Title\nbody"))

	r := callTool(t, srv, "get_note_structure", map[string]interface{}{
		"note_path": "n.md",
	})
	if r.IsError {
		t.Fatalf("get failed: %s", resultText(r))
	}
	var ns noteservice.NoteStructure
	if err := json.Unmarshal([]byte(resultText(r)), &ns); err != nil {
		t.Fatalf("bad JSON result: %v", err)
	}
	if ns.Title != "Title" || len(ns.Tags) != 1 {
		t.Errorf("structure = %+v", ns)
	}
}

func TestGetNoteStructureTool_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_note_structure", map[string]interface{}{
		"note_path": "missing.md",
	})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestGetNoteContractTool(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_note_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Conversation Note Format") {
		t.Error("contract text missing")
	}
}
