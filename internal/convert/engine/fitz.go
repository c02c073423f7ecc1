// Package engine provides the concrete rendering capabilities injected into
// the conversion pipeline: a MuPDF-backed PDF rasterizer and a minimal DOCX
// to HTML converter.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
)

// FitzRenderer rasterizes PDF pages with MuPDF via go-fitz.
type FitzRenderer struct{}

// NewFitzRenderer returns the MuPDF-backed PDF rendering capability.
func NewFitzRenderer() *FitzRenderer {
	return &FitzRenderer{}
}

var _ convert.PDFRenderer = (*FitzRenderer)(nil)

// Open loads a PDF from memory. The returned document owns a MuPDF context
// and must be closed.
func (*FitzRenderer) Open(_ context.Context, data []byte) (convert.PDFDocument, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("mupdf open: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

// fitzDocument serializes page renders: MuPDF draws on a single shared
// surface per document, so pages are rasterized one at a time.
type fitzDocument struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) RenderPage(_ context.Context, page int, scale float64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// go-fitz pages are zero-based; scale 1.0 corresponds to 72 DPI.
	return d.doc.ImagePNG(page-1, 72*scale)
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
