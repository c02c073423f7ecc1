// Package repository contains data access layer abstractions. Implementations
// live in subpackages (e.g. postgres).
package repository

import (
	"context"

	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
)

// DocumentRepository defines persistence for rendered documents using SQL
// queries only. No business logic here; validation and timestamping happen in
// the service layer. Missing rows surface as sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new row and returns it with the id assigned by the
	// database. Ids are never reused.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the full document for an id.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns preview projections of every document, ordered by
	// created_at descending with the newest insert first on ties.
	List(ctx context.Context) ([]model.DocumentPreview, error)

	// Update overwrites title, type, html and updated_at of an existing row,
	// leaving created_at untouched, and returns the stored result.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a row by id; sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id int64) error
}
