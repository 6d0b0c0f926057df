package search

import (
	"context"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// SortKey selects the list ordering key.
type SortKey string

// Sort keys.
const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// SortOrder selects ascending or descending order.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams describes a single list request.
type ListParams struct {
	Folder         string    `json:"folder,omitempty"`
	Limit          int       `json:"limit,omitempty"`
	Offset         int       `json:"offset,omitempty"`
	SortBy         SortKey   `json:"sortBy,omitempty"`
	SortOrder      SortOrder `json:"sortOrder,omitempty"`
	IncludeContent bool      `json:"includeContent,omitempty"`
}

func (p *ListParams) normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.SortBy == "" {
		p.SortBy = SortByName
	}
	if p.SortOrder == "" {
		p.SortOrder = SortAsc
	}
}

// ListResult is the paginated response of List.
type ListResult struct {
	Notes   []Result `json:"notes"`
	Total   int      `json:"total"`
	HasMore bool     `json:"hasMore"`
}

// List enumerates every note under params.Folder, sorts the full set, and
// returns the page [offset, offset+limit). Total counts all notes before
// pagination.
func (e *Engine) List(ctx context.Context, p ListParams) (*ListResult, error) {
	p.normalize()

	paths, err := e.store.List(p.Folder, storage.DefaultExtension)
	if err != nil {
		return nil, err
	}

	var notes []Result
	for _, nf := range e.readAll(ctx, paths) {
		if nf == nil {
			continue
		}
		title := parser.Title(nf.content)
		tags := parser.Tags(nf.content)
		notes = append(notes, buildResult(nf, title, tags, p.IncludeContent, nil))
	}

	sortNotes(notes, p.SortBy, p.SortOrder)

	total := len(notes)
	return &ListResult{
		Notes:   nonNilSlice(paginate(notes, p.Offset, p.Limit)),
		Total:   total,
		HasMore: p.Offset+p.Limit < total,
	}, nil
}

// sortNotes orders the full set in place. Name uses locale-aware collation
// of filenames; date uses the modification timestamp. Size compares the
// excerpt string length, capped at 200 characters, not the true file size;
// two notes differing only past the cap sort as equal.
func sortNotes(notes []Result, key SortKey, order SortOrder) {
	coll := collate.New(language.Und)
	less := func(a, b Result) bool {
		switch key {
		case SortByDate:
			return a.ModifiedAt.Before(b.ModifiedAt)
		case SortBySize:
			return utf8.RuneCountInString(a.Excerpt) < utf8.RuneCountInString(b.Excerpt)
		default:
			return coll.CompareString(a.Filename, b.Filename) < 0
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if order == SortDesc {
			return less(notes[j], notes[i])
		}
		return less(notes[i], notes[j])
	})
}
