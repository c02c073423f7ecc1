package convert

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Default PDF rendering parameters, matching the limits the upload UI was
// tuned for: 1.5x zoom keeps text legible, 25 pages bounds the size of the
// stored fragment.
const (
	DefaultPDFScale    = 1.5
	DefaultMaxPDFPages = 25
)

// PDFRenderer opens raw PDF bytes for rasterization. Implementations wrap an
// external engine and are injected into the pipeline so it can be tested with
// fakes and ported without pinning a rendering library.
type PDFRenderer interface {
	Open(ctx context.Context, data []byte) (PDFDocument, error)
}

// PDFDocument is a scoped rendering surface over one open PDF. Page rendering
// is sequential: the surface is shared, so one page must finish before the
// next starts. Close releases the surface.
type PDFDocument interface {
	PageCount() int
	// RenderPage rasterizes a 1-based page to PNG bytes at the given zoom.
	RenderPage(ctx context.Context, page int, scale float64) ([]byte, error)
	Close() error
}

// PDFOptions carries per-file rendering options. Zero values select the
// defaults; MaxPages < 0 disables the page cap. OnProgress, when set, is
// called inline before each page render and must not panic.
type PDFOptions struct {
	Scale      float64
	MaxPages   int
	OnProgress func(page, total int)
}

// renderPDF rasterizes every page to an embedded PNG image, labeled in order.
// The page-count check runs before any rendering so an oversized document is
// rejected at the cheapest possible point.
func renderPDF(ctx context.Context, r PDFRenderer, data []byte, opts PDFOptions) (string, error) {
	if r == nil {
		return "", ErrPDFEngineMissing
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultPDFScale
	}
	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = DefaultMaxPDFPages
	}

	doc, err := r.Open(ctx, data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.PageCount()
	if maxPages > 0 && total > maxPages {
		return "", fmt.Errorf("%w: %d pages (limit %d)", ErrTooManyPages, total, maxPages)
	}

	var b strings.Builder
	b.WriteString(`<div class="pdf">`)
	for page := 1; page <= total; page++ {
		if opts.OnProgress != nil {
			opts.OnProgress(page, total)
		}
		img, err := doc.RenderPage(ctx, page, scale)
		if err != nil {
			return "", fmt.Errorf("render page %d: %w", page, err)
		}
		dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
		fmt.Fprintf(&b, "\n<div class=\"pdf-page\">\n<div class=\"pdf-page-label\">Page %d</div>\n<img class=\"pdf-page-img\" src=\"%s\" alt=\"Page %d\" />\n</div>", page, dataURL, page)
	}
	b.WriteString("\n</div>")
	return b.String(), nil
}
