// Package search implements the stateless query engines over the vault:
// multi-field filtered search and sorted, paginated listing. Every call
// rereads the candidate files from storage; nothing is cached across calls.
package search

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// batchSize bounds how many files are read concurrently per batch.
const batchSize = 50

// excerptLength is the excerpt cap in characters.
const excerptLength = 200

// Result is an enriched note entry returned by both Search and List.
type Result struct {
	Path          string    `json:"path"`
	Filename      string    `json:"filename"`
	Title         string    `json:"title"`
	Tags          []string  `json:"tags"`
	Excerpt       string    `json:"excerpt"`
	Checksum      string    `json:"checksum"`
	ModifiedAt    time.Time `json:"modified_at"`
	Content       string    `json:"content,omitempty"`
	MatchedFields []string  `json:"matched_fields,omitempty"`
}

// Engine evaluates search and list requests against the vault.
type Engine struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewEngine creates a new Engine.
func NewEngine(store storage.Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// noteFile is a candidate loaded from storage.
type noteFile struct {
	path    string
	content string
	stat    models.NoteStat
}

// readAll loads candidate files in fixed-size batches to bound concurrent
// file handles. Results come back in listing order regardless of completion
// order within a batch. Unreadable files are logged and skipped (nil slot).
func (e *Engine) readAll(ctx context.Context, paths []string) []*noteFile {
	out := make([]*noteFile, len(paths))
	for start := 0; start < len(paths); start += batchSize {
		end := min(start+batchSize, len(paths))
		g, _ := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				p := paths[i]
				data, err := e.store.Read(p)
				if err != nil {
					e.logger.Warn("read note failed",
						slog.String("path", p), slog.String("error", err.Error()))
					return nil
				}
				stat, err := e.store.Stat(p)
				if err != nil {
					e.logger.Warn("stat note failed",
						slog.String("path", p), slog.String("error", err.Error()))
				}
				out[i] = &noteFile{path: p, content: string(data), stat: stat}
				return nil
			})
		}
		_ = g.Wait()
	}
	return out
}

// Search evaluates every note under criteria.Folder and returns the matching
// slice [offset, offset+limit) in listing order.
func (e *Engine) Search(ctx context.Context, c Criteria) ([]Result, error) {
	c.normalize()

	paths, err := e.store.List(c.Folder, storage.DefaultExtension)
	if err != nil {
		return nil, err
	}

	var re *regexp.Regexp
	if c.Regex != "" {
		re, err = regexp.Compile("(?i)" + c.Regex)
		if err != nil {
			// An invalid pattern disables the regex filter; it never
			// excludes notes and never fails the call.
			e.logger.Warn("invalid regex pattern, skipping regex filter",
				slog.String("regex", c.Regex), slog.String("error", err.Error()))
			re = nil
		}
	}

	query := strings.ToLower(c.Query)

	var matched []Result
	for _, nf := range e.readAll(ctx, paths) {
		if nf == nil {
			continue
		}
		filename := path.Base(nf.path)
		title := parser.Title(nf.content)

		var fields []string
		if query != "" {
			if c.scopeHas(FieldFilename) && strings.Contains(strings.ToLower(filename), query) {
				fields = appendField(fields, FieldFilename)
			}
			if c.scopeHas(FieldTitle) && strings.Contains(strings.ToLower(title), query) {
				fields = appendField(fields, FieldTitle)
			}
			if c.scopeHas(FieldContent) && strings.Contains(strings.ToLower(nf.content), query) {
				fields = appendField(fields, FieldContent)
			}
		}
		queryMatched := len(fields) > 0

		regexMatched := false
		if re != nil {
			switch {
			case re.MatchString(nf.content):
				fields = appendField(fields, FieldContent)
				regexMatched = true
			case re.MatchString(filename):
				fields = appendField(fields, FieldFilename)
				regexMatched = true
			}
		}

		// Inclusion is an OR of the two independent match signals: a
		// failing regex never overrides a query hit, and vice versa.
		include := true
		switch {
		case query != "" && re != nil:
			include = queryMatched || regexMatched
		case query != "":
			include = queryMatched
		case re != nil:
			include = regexMatched
		}
		if !include {
			continue
		}

		tags := parser.Tags(nf.content)
		if len(c.Tags) > 0 {
			if !matchTags(tags, c.Tags, c.TagOperator) {
				continue
			}
			fields = appendField(fields, FieldTags)
		}

		matched = append(matched, buildResult(nf, title, tags, c.IncludeContent, fields))
	}

	return paginate(matched, c.Offset, c.Limit), nil
}

// appendField appends the field name if not already present.
func appendField(fields []string, f Field) []string {
	s := string(f)
	for _, existing := range fields {
		if existing == s {
			return fields
		}
	}
	return append(fields, s)
}

// matchTags applies the AND/OR tag filter.
func matchTags(noteTags, required []string, op TagOperator) bool {
	set := make(map[string]struct{}, len(noteTags))
	for _, t := range noteTags {
		set[t] = struct{}{}
	}
	if op == TagOperatorOR {
		for _, t := range required {
			if _, ok := set[t]; ok {
				return true
			}
		}
		return false
	}
	for _, t := range required {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// buildResult assembles the enriched entry for one note.
func buildResult(nf *noteFile, title string, tags []string, includeContent bool, matchedFields []string) Result {
	r := Result{
		Path:          nf.path,
		Filename:      path.Base(nf.path),
		Title:         title,
		Tags:          nonNilSlice(tags),
		Excerpt:       excerpt(nf.content),
		Checksum:      checksum.Sum([]byte(nf.content)),
		ModifiedAt:    nf.stat.ModTime,
		MatchedFields: matchedFields,
	}
	if includeContent {
		r.Content = nf.content
	}
	return r
}

// excerpt returns the first excerptLength characters of content.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength])
}

// paginate slices [offset, offset+limit) off the full result set.
func paginate(results []Result, offset, limit int) []Result {
	if offset >= len(results) {
		return []Result{}
	}
	end := min(offset+limit, len(results))
	return results[offset:end]
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
