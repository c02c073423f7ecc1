// Package convert implements the document ingestion pipeline: format
// detection, per-format rendering to a sanit-ready HTML fragment, and the
// size and page limits that bound resource usage.
package convert

import (
	"context"
	"fmt"
	"io"
)

// DefaultMaxFileSize is the pre-flight ceiling on uploaded file size.
const DefaultMaxFileSize = 10 << 20 // 10MB

// Options carries renderer-specific options forwarded per file.
type Options struct {
	PDF PDFOptions
}

// Pipeline turns an uploaded file into a single HTML fragment. It detects the
// format, enforces the file-size ceiling before reading content, dispatches to
// the matching renderer, and wraps failures with the filename. It never skips
// a failed file itself; batch policy belongs to the caller.
type Pipeline struct {
	pdf         PDFRenderer
	docx        DocxConverter
	maxFileSize int64
}

// NewPipeline builds a pipeline with the given rendering capabilities. Either
// capability may be nil; converting that format then fails with an error
// naming the missing engine. maxFileSize <= 0 selects DefaultMaxFileSize.
func NewPipeline(pdf PDFRenderer, docx DocxConverter, maxFileSize int64) *Pipeline {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Pipeline{pdf: pdf, docx: docx, maxFileSize: maxFileSize}
}

// MaxFileSize reports the configured pre-flight size ceiling in bytes.
func (p *Pipeline) MaxFileSize() int64 {
	return p.maxFileSize
}

// Convert renders one uploaded file. The declared size is checked before any
// bytes are read; the reader is additionally capped in case the declared size
// was wrong.
func (p *Pipeline) Convert(ctx context.Context, filename string, size int64, r io.Reader, opts Options) (string, error) {
	if size > p.maxFileSize {
		return "", p.fail(filename, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, p.maxFileSize))
	}

	kind := KindFromFilename(filename)
	if kind == KindOther {
		return "", p.fail(filename, ErrUnsupportedFormat)
	}

	data, err := p.readCapped(r)
	if err != nil {
		return "", p.fail(filename, err)
	}

	var html string
	switch kind {
	case KindMarkdown:
		html = RenderMarkdown(string(data))
	case KindText:
		html = RenderText(string(data))
	case KindDOCX:
		html, err = renderDocx(ctx, p.docx, data)
	case KindPDF:
		html, err = renderPDF(ctx, p.pdf, data, opts.PDF)
	}
	if err != nil {
		return "", p.fail(filename, err)
	}
	return html, nil
}

// ReadAsText renders any file as escaped plain text, regardless of extension.
// This is the opt-in best-effort path for raw-content viewing; the upload gate
// must use Convert, which rejects unknown kinds instead.
func (p *Pipeline) ReadAsText(filename string, size int64, r io.Reader) (string, error) {
	if size > p.maxFileSize {
		return "", p.fail(filename, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, p.maxFileSize))
	}
	data, err := p.readCapped(r)
	if err != nil {
		return "", p.fail(filename, err)
	}
	return RenderText(string(data)), nil
}

func (p *Pipeline) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, p.maxFileSize)
	}
	return data, nil
}

func (p *Pipeline) fail(filename string, err error) error {
	return &Error{Filename: filename, Err: err}
}
