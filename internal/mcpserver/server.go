// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Ansuz vault tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/notegen"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/search"
)

// Server wraps the MCP server with the Ansuz vault tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all vault tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_conversation_note",
		mcp.WithDescription("Create a structured Markdown note from a conversation summary. "+
			"The note gets generated frontmatter (created date, style, tags) and a body "+
			"shaped by the style selector. See the ansuz://note-format resource."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("Topic of the conversation; becomes the note title and filename")),
		mcp.WithArray("highlights", mcp.Required(), mcp.Description("Key points of the conversation"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("tags", mcp.Description("Extra tags for the frontmatter tag list"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("folder", mcp.Description("Target folder inside the vault (default \"MCP Notes\")")),
		mcp.WithString("style", mcp.Description("Body style"), mcp.Enum("concise", "detailed", "simple")),
	), s.createConversationNote)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search notes by text, tags, and/or regular expression. "+
			"Returns enriched results with the fields that caused each match."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring to look for")),
		mcp.WithArray("tags", mcp.Description("Tags the note must carry"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("tagOperator", mcp.Description("How multiple tags combine (default AND)"), mcp.Enum("AND", "OR")),
		mcp.WithString("folder", mcp.Description("Restrict the search to this folder")),
		mcp.WithString("searchIn", mcp.Description("Field scope for the query (default content)"), mcp.Enum("filename", "title", "content", "all")),
		mcp.WithString("regex", mcp.Description("Case-insensitive regular expression tested against content, then filename")),
		mcp.WithBoolean("includeContent", mcp.Description("Include full note content in results")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 10)")),
		mcp.WithNumber("offset", mcp.Description("Results to skip (default 0)")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes with sorting and pagination."),
		mcp.WithString("folder", mcp.Description("Restrict the listing to this folder")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
		mcp.WithNumber("offset", mcp.Description("Notes to skip (default 0)")),
		mcp.WithString("sortBy", mcp.Description("Sort key (default name)"), mcp.Enum("name", "date", "size")),
		mcp.WithString("sortOrder", mcp.Description("Sort direction (default asc)"), mcp.Enum("asc", "desc")),
		mcp.WithBoolean("includeContent", mcp.Description("Include full note content in results")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_note_structure",
		mcp.WithDescription("Read a note and return its parsed structure: title, frontmatter, tags, content."),
		mcp.WithString("note_path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.getNoteStructure)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical conversation note format. "+
			"Call this to understand the structure of generated notes."),
	), s.getNoteContract)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical Markdown format of generated conversation notes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

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

func (s *Server) createConversationNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	highlights := stringSliceArg(req, "highlights")
	if len(highlights) == 0 {
		return mcp.NewToolResultError("highlights is required and must be a non-empty array of strings"), nil
	}

	res := s.svc.CreateConversationNote(ctx, notegen.NoteParams{
		Topic:      topic,
		Highlights: highlights,
		Tags:       stringSliceArg(req, "tags"),
		Folder:     stringArg(req, "folder"),
		Style:      notegen.Style(stringArg(req, "style")),
	})
	if !res.Success {
		return mcp.NewToolResultError(res.Error), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results := s.svc.SearchNotes(ctx, search.Criteria{
		Query:          stringArg(req, "query"),
		Tags:           stringSliceArg(req, "tags"),
		TagOperator:    search.TagOperator(stringArg(req, "tagOperator")),
		Folder:         stringArg(req, "folder"),
		SearchIn:       search.Field(stringArg(req, "searchIn")),
		Regex:          stringArg(req, "regex"),
		IncludeContent: boolArg(req, "includeContent"),
		Limit:          intArg(req, "limit"),
		Offset:         intArg(req, "offset"),
	})
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.svc.ListNotes(ctx, search.ListParams{
		Folder:         stringArg(req, "folder"),
		Limit:          intArg(req, "limit"),
		Offset:         intArg(req, "offset"),
		SortBy:         search.SortKey(stringArg(req, "sortBy")),
		SortOrder:      search.SortOrder(stringArg(req, "sortOrder")),
		IncludeContent: boolArg(req, "includeContent"),
	})
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNoteStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notePath, err := req.RequireString("note_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ns, err := s.svc.GetNoteStructure(ctx, notePath)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", notePath)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(ns, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}

// stringArg returns the string argument for key, or "" when absent.
func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.GetArguments()[key].(string)
	return v
}

// stringSliceArg returns the string-array argument for key. JSON decoding
// delivers arrays as []interface{}; non-string items are dropped.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	switch v := req.GetArguments()[key].(type) {
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// intArg returns the numeric argument for key, or 0 when absent.
func intArg(req mcp.CallToolRequest, key string) int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// boolArg returns the boolean argument for key, or false when absent.
func boolArg(req mcp.CallToolRequest, key string) bool {
	v, _ := req.GetArguments()[key].(bool)
	return v
}
