package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/notegen"
	"github.com/starford/ansuz/internal/noteservice"
	"github.com/starford/ansuz/internal/search"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// notePath extracts the note path from the URL (everything after /notes/).
// Supports encoded slashes from OpenAPI clients (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListNotes handles GET /notes.
//
//	@Summary		List notes with sorting and pagination
//	@Tags			notes
//	@Produce		json
//	@Param			folder		query		string	false	"Folder scope"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Page offset"
//	@Param			sortBy		query		string	false	"Sort key"	Enums(name, date, size)
//	@Param			sortOrder	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Success		200			{object}	search.ListResult
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	res := h.svc.ListNotes(r.Context(), search.ListParams{
		Folder:         q.Get("folder"),
		Limit:          limit,
		Offset:         offset,
		SortBy:         search.SortKey(q.Get("sortBy")),
		SortOrder:      search.SortOrder(q.Get("sortOrder")),
		IncludeContent: q.Get("includeContent") == "true",
	})
	writeJSON(w, http.StatusOK, res)
}

// GetNote handles GET /notes/*.
//
//	@Summary		Get the parsed structure of a single note
//	@Tags			notes
//	@Produce		json
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{object}	noteservice.NoteStructure
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{path} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	ns, err := h.svc.GetNoteStructure(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get note failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

// CreateConversationNote handles POST /notes/conversation.
//
//	@Summary		Create a conversation note from a summary
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateConversationRequest	true	"Note parameters"
//	@Success		201		{object}	noteservice.CreateResult
//	@Failure		400		{object}	noteservice.CreateResult
//	@Security		BearerAuth
//	@Router			/notes/conversation [post]
func (h *Handler) CreateConversationNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Topic == "" || len(req.Highlights) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("topic and highlights are required"))
		return
	}

	res := h.svc.CreateConversationNote(r.Context(), notegen.NoteParams{
		Topic:      req.Topic,
		Highlights: req.Highlights,
		Tags:       req.Tags,
		Folder:     req.Folder,
		Style:      notegen.Style(req.Style),
	})
	if !res.Success {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Search handles GET /search.
//
//	@Summary		Search notes by text, tags, and regex
//	@Tags			search
//	@Produce		json
//	@Param			q			query		string	false	"Query string"
//	@Param			tags		query		string	false	"Comma-separated required tags"
//	@Param			tagOperator	query		string	false	"Tag combination"	Enums(AND, OR)
//	@Param			searchIn	query		string	false	"Field scope"	Enums(filename, title, content, all)
//	@Param			regex		query		string	false	"Regular expression"
//	@Param			folder		query		string	false	"Folder scope"
//	@Param			limit		query		int		false	"Max results"
//	@Param			offset		query		int		false	"Results to skip"
//	@Success		200			{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	var tags []string
	if raw := q.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	results := h.svc.SearchNotes(r.Context(), search.Criteria{
		Query:          q.Get("q"),
		Tags:           tags,
		TagOperator:    search.TagOperator(q.Get("tagOperator")),
		Folder:         q.Get("folder"),
		SearchIn:       search.Field(q.Get("searchIn")),
		Regex:          q.Get("regex"),
		IncludeContent: q.Get("includeContent") == "true",
		Limit:          limit,
		Offset:         offset,
	})
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}
