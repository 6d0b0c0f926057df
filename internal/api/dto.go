package api

import (
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/search"
)

// CreateConversationRequest is the request body for creating a conversation note.
type CreateConversationRequest struct {
	Topic      string   `json:"topic" example:"Weekly sync" validate:"required"`
	Highlights []string `json:"highlights" example:"decided on roadmap" validate:"required"`
	Tags       []string `json:"tags,omitempty" example:"project"`
	Folder     string   `json:"folder,omitempty" example:"Meetings"`
	Style      string   `json:"style,omitempty" example:"concise" enums:"concise,detailed,simple"`
}

// NoteStructure is the parsed single-note response (aliased from the domain layer).
type NoteStructure = noteservice.NoteStructure

// CreateResult is the note creation outcome (aliased from the domain layer).
type CreateResult = noteservice.CreateResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []search.Result `json:"results" validate:"required"`
}

// ListResponse is the paginated listing (aliased from the engine).
type ListResponse = search.ListResult
