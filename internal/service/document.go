package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/herinqueoliveira/Teste-Wiki/internal/archive"
	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
	"github.com/herinqueoliveira/Teste-Wiki/internal/repository"
)

var (
	// ErrNotFound is returned when no document exists for an id.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidDocument wraps field-level validation failures. The wrapped
	// message names the failing field and is safe to show to callers.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrStorageUnavailable stands in for any persistence failure. The cause
	// is logged with context and never surfaced to callers.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// UpdateDocumentInput is a partial update; nil fields keep the stored values.
type UpdateDocumentInput struct {
	Title *string `json:"title"`
	Kind  *string `json:"type"`
	HTML  *string `json:"html"`
}

// DocumentService is the document store contract: validated CRUD over
// rendered documents plus the substring search used by the list view.
type DocumentService interface {
	// Create validates and persists a new document; created_at and
	// updated_at are set to the same instant.
	Create(ctx context.Context, title, kind, html string) (*model.Document, error)

	// Get returns the full document for an id.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// List returns previews of every document, newest first.
	List(ctx context.Context) ([]model.DocumentPreview, error)

	// Search filters List by case-insensitive substring match on title and
	// preview html. An empty query returns everything.
	Search(ctx context.Context, query string) ([]model.DocumentPreview, error)

	// Update merges the partial input over the stored document, re-validates
	// the result and persists it with a fresh updated_at.
	Update(ctx context.Context, id int64, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes a document. Deleting an id twice returns ErrNotFound
	// the second time.
	Delete(ctx context.Context, id int64) error
}

type documentService struct {
	repo repository.DocumentRepository
	arc  archive.Archive // optional; nil disables source cleanup on delete
	now  func() string
}

// NewDocumentService constructs a DocumentService. arc may be nil when no
// source-file archive is configured.
func NewDocumentService(repo repository.DocumentRepository, arc archive.Archive) DocumentService {
	return &documentService{repo: repo, arc: arc, now: model.NowISO}
}

// validateDocument applies the store-level schema rules. Every failure names
// its field so the caller can correct the request.
func validateDocument(title, kind, html string) error {
	err := validation.Errors{
		"title": validation.Validate(title, validation.Required.Error("title is required")),
		"type":  validation.Validate(kind, validation.Required.Error("type is required")),
		"html": validation.Validate(html,
			validation.Required.Error("html content is required"),
			validation.Length(0, model.MaxHTMLBytes).Error("document too large (max 500KB)"),
		),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func (s *documentService) Create(ctx context.Context, title, kind, html string) (*model.Document, error) {
	if err := validateDocument(title, kind, html); err != nil {
		return nil, err
	}
	now := s.now()
	stored, err := s.repo.Create(ctx, &model.Document{
		Title:     title,
		Kind:      kind,
		HTML:      html,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.storageError("create document", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, s.storageError("get document", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context) ([]model.DocumentPreview, error) {
	previews, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storageError("list documents", err)
	}
	return previews, nil
}

func (s *documentService) Search(ctx context.Context, query string) ([]model.DocumentPreview, error) {
	previews, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return previews, nil
	}
	filtered := make([]model.DocumentPreview, 0, len(previews))
	for _, p := range previews {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.PreviewHTML), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *documentService) Update(ctx context.Context, id int64, in UpdateDocumentInput) (*model.Document, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, s.storageError("update document", err)
	}

	title, kind, html := existing.Title, existing.Kind, existing.HTML
	if in.Title != nil {
		title = *in.Title
	}
	if in.Kind != nil {
		kind = *in.Kind
	}
	if in.HTML != nil {
		html = *in.HTML
	}
	if err := validateDocument(title, kind, html); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &model.Document{
		ID:        id,
		Title:     title,
		Kind:      kind,
		HTML:      html,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, s.storageError("update document", err)
	}
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return s.storageError("delete document", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return s.storageError("delete document", err)
	}

	// Source cleanup is best-effort: the row is gone, a stale archived file
	// only costs space.
	if s.arc != nil {
		if err := s.arc.Remove(ctx, id, doc.Kind); err != nil {
			logJSON("warn", "archive_remove_failed", map[string]any{"doc_id": id, "error": err.Error()})
		}
	}
	return nil
}

// storageError logs the real cause and returns the opaque sentinel.
func (s *documentService) storageError(op string, err error) error {
	logJSON("error", "storage_error", map[string]any{"op": op, "error": err.Error()})
	return ErrStorageUnavailable
}

// logJSON writes a one-line JSON log entry, matching the format the HTTP
// request logger emits.
func logJSON(level, event string, fields map[string]any) {
	entry := map[string]any{
		"ts":    model.NowISO(),
		"level": level,
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
