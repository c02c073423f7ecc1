// Package archive keeps the original uploaded source files alongside their
// rendered documents, so a source can be downloaded or re-rendered later.
// Implementations must avoid local disk and rely on streaming I/O only.
package archive

import (
	"context"
	"fmt"
	"io"
)

// Archive stores raw source files keyed by document id and kind. Archival is
// best-effort from the caller's point of view: the rendered html in the
// document store stays the source of truth.
type Archive interface {
	// Store saves the raw bytes of a document's source file.
	Store(ctx context.Context, docID int64, kind string, data []byte) error
	// Fetch streams a previously stored source file back.
	Fetch(ctx context.Context, docID int64, kind string) (io.ReadCloser, error)
	// Remove deletes a stored source file. Removing a missing file is not an
	// error.
	Remove(ctx context.Context, docID int64, kind string) error
}

// sourceKey builds the object key for a document's source file. The extension
// is derived from the kind so the key is reconstructible from the stored row
// alone.
func sourceKey(docID int64, kind string) string {
	return fmt.Sprintf("sources/%d.%s", docID, ExtensionFor(kind))
}

// ExtensionFor maps a document kind to its canonical file extension.
func ExtensionFor(kind string) string {
	switch kind {
	case "markdown":
		return "md"
	case "text":
		return "txt"
	case "docx":
		return "docx"
	case "pdf":
		return "pdf"
	}
	return "bin"
}

// ContentTypeFor maps a document kind to the MIME type of its source file.
func ContentTypeFor(kind string) string {
	switch kind {
	case "markdown":
		return "text/markdown"
	case "text":
		return "text/plain"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
