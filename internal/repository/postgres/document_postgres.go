package postgres

import (
	"context"
	"database/sql"

	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
	"github.com/herinqueoliveira/Teste-Wiki/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of
// repository.DocumentRepository. It uses database/sql with parameterized
// queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO docs (title, type, html, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, type, html, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.Title,
		doc.Kind,
		doc.HTML,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its id.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT id, title, type, html, created_at, updated_at
		FROM docs
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns preview projections of all documents, newest first. The
// preview is computed in SQL (substr is character-based, 300 matches
// model.PreviewLength) so full html bodies never leave the database for
// list views.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.DocumentPreview, error) {
	const q = `
		SELECT id, title, type, substr(html, 1, 300) AS preview_html, created_at, updated_at
		FROM docs
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentPreview, 0)
	for rows.Next() {
		var p model.DocumentPreview
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Kind,
			&p.PreviewHTML,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites the mutable columns of an existing row. A missing id
// yields sql.ErrNoRows via the empty RETURNING set.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE docs
		SET title = $1, type = $2, html = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, title, type, html, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.Title,
		doc.Kind,
		doc.HTML,
		doc.UpdatedAt,
		doc.ID,
	)
	return scanDocument(row)
}

// Delete removes a document by id. Deleting a row that does not exist
// returns sql.ErrNoRows so callers can distinguish the second delete.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM docs WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Kind,
		&d.HTML,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
