// Package noteservice orchestrates note creation and retrieval on top of
// storage, the parser, and the search engines.
package noteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notegen"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/search"
	"github.com/starford/ansuz/internal/storage"
)

// NoteStructure is the parsed representation of a single note.
type NoteStructure struct {
	Path        string                             `json:"path"`
	Title       string                             `json:"title"`
	Content     string                             `json:"content"`
	Frontmatter map[string]models.FrontmatterValue `json:"frontmatter,omitempty"`
	Tags        []string                           `json:"tags"`
	Checksum    string                             `json:"checksum"`
	ModifiedAt  time.Time                          `json:"modified_at"`
}

// CreateResult is the structured outcome of a note creation. Failures are
// carried in Error rather than returned as a Go error: the dispatcher
// forwards this shape to the caller as-is.
type CreateResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service coordinates storage, parsing, and the query engines.
type Service struct {
	store  storage.Provider
	engine *search.Engine
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new note service.
func NewService(store storage.Provider, engine *search.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// CreateConversationNote formats and writes a conversation note. All
// failures are converted into a CreateResult with Success=false; no error
// ever propagates to the caller.
func (s *Service) CreateConversationNote(_ context.Context, p notegen.NoteParams) CreateResult {
	isDir, err := s.store.IsDir("")
	if err != nil || !isDir {
		return s.failure("", fmt.Errorf("%w: vault root is not a directory", apperr.ErrInvalidVault))
	}

	folder := p.Folder
	if folder == "" {
		folder = notegen.DefaultFolder
	}
	if err := s.store.EnsureDir(folder); err != nil {
		return s.failure(folder, err)
	}

	date := s.now()
	notePath := path.Join(folder, notegen.Filename(p.Topic, date))

	exists, err := s.store.Exists(notePath)
	if err != nil {
		return s.failure(notePath, err)
	}
	if exists {
		// Single-shot collision fallback: suffix the topic with a
		// timestamp and regenerate. A second collision is not retried.
		suffixed := fmt.Sprintf("%s %s", p.Topic, date.Format("150405"))
		notePath = path.Join(folder, notegen.Filename(suffixed, date))
	}

	content := notegen.ConversationNote(p, date)
	if err := s.store.Write(notePath, []byte(content)); err != nil {
		return s.failure(notePath, err)
	}

	s.logger.Info("conversation note created", slog.String("path", notePath))
	return CreateResult{Success: true, Path: notePath}
}

// GetNoteStructure reads and parses a single note.
func (s *Service) GetNoteStructure(_ context.Context, notePath string) (*NoteStructure, error) {
	data, err := s.store.Read(notePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	content := string(data)
	note := parser.Parse(content)

	stat, err := s.store.Stat(notePath)
	if err != nil {
		s.logger.Warn("stat note failed",
			slog.String("path", notePath), slog.String("error", err.Error()))
	}

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &NoteStructure{
		Path:        notePath,
		Title:       note.Title,
		Content:     content,
		Frontmatter: note.Frontmatter,
		Tags:        tags,
		Checksum:    checksum.Sum(data),
		ModifiedAt:  stat.ModTime,
	}, nil
}

// SearchNotes delegates to the search engine. Operational failures (bad
// folder, storage errors) are logged and degrade to an empty result set;
// they never reach the caller as a fault.
func (s *Service) SearchNotes(ctx context.Context, c search.Criteria) []search.Result {
	results, err := s.engine.Search(ctx, c)
	if err != nil {
		s.logger.Error("search failed",
			slog.String("folder", c.Folder), slog.String("error", err.Error()))
		return []search.Result{}
	}
	if results == nil {
		results = []search.Result{}
	}
	return results
}

// ListNotes delegates to the list engine, with the same empty-result
// degradation as SearchNotes.
func (s *Service) ListNotes(ctx context.Context, p search.ListParams) *search.ListResult {
	res, err := s.engine.List(ctx, p)
	if err != nil {
		s.logger.Error("list failed",
			slog.String("folder", p.Folder), slog.String("error", err.Error()))
		return &search.ListResult{Notes: []search.Result{}}
	}
	return res
}

func (s *Service) failure(notePath string, err error) CreateResult {
	s.logger.Error("create conversation note failed",
		slog.String("path", notePath), slog.String("error", err.Error()))
	return CreateResult{Success: false, Error: err.Error()}
}
