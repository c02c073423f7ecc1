package model

import "time"

// TimeLayout is the ISO-8601 form used for document timestamps. Millisecond
// precision with a fixed width keeps the stored strings lexicographically
// sortable, which the list ordering relies on.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// NowISO returns the current UTC time formatted with TimeLayout.
func NowISO() string {
	return time.Now().UTC().Format(TimeLayout)
}

// PreviewLength is the number of leading characters of html served in list
// views. Truncation is plain character truncation; a cut-off tag is expected.
const PreviewLength = 300

// MaxHTMLBytes is the ceiling on the size of a stored html fragment.
const MaxHTMLBytes = 500000

// Document is a stored, pre-rendered document. HTML holds the complete
// self-contained fragment produced by the conversion pipeline; PDF pages are
// embedded as data URIs, so it can be large.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"type"`
	HTML      string `json:"html"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// DocumentPreview is the list-view projection of a Document: html is replaced
// by its first PreviewLength characters. It is derived at read time and never
// stored.
type DocumentPreview struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Kind        string `json:"type"`
	PreviewHTML string `json:"previewHtml"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
