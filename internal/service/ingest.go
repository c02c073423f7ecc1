package service

import (
	"bytes"
	"context"
	"io"

	"github.com/herinqueoliveira/Teste-Wiki/internal/archive"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
)

// Converter is the conversion capability the ingest service depends on,
// satisfied by *convert.Pipeline.
type Converter interface {
	Convert(ctx context.Context, filename string, size int64, r io.Reader, opts convert.Options) (string, error)
}

// IngestService turns one uploaded file into a stored document: detect and
// render via the pipeline, persist through the document store, then archive
// the raw source when an archive is configured. Batch uploads call Ingest
// once per file; a conversion failure is per-file and the caller continues
// with the rest.
type IngestService interface {
	Ingest(ctx context.Context, filename string, size int64, r io.Reader, onProgress func(page, total int)) (*model.Document, error)
}

type ingestService struct {
	converter   Converter
	docs        DocumentService
	arc         archive.Archive // optional
	pdfScale    float64
	pdfMaxPages int
}

// NewIngestService constructs an IngestService. pdfScale and pdfMaxPages come
// from configuration and apply to every PDF in a batch; arc may be nil.
func NewIngestService(converter Converter, docs DocumentService, arc archive.Archive, pdfScale float64, pdfMaxPages int) IngestService {
	return &ingestService{
		converter:   converter,
		docs:        docs,
		arc:         arc,
		pdfScale:    pdfScale,
		pdfMaxPages: pdfMaxPages,
	}
}

func (s *ingestService) Ingest(ctx context.Context, filename string, size int64, r io.Reader, onProgress func(page, total int)) (*model.Document, error) {
	title := convert.TitleFromFilename(filename)
	if title == "" {
		title = convert.DefaultTitle
	}
	kind := convert.KindFromFilename(filename)

	// The pipeline consumes the reader; tee the bytes off for the archive so
	// the upload is only read once.
	src := r
	var raw bytes.Buffer
	if s.arc != nil {
		src = io.TeeReader(r, &raw)
	}

	html, err := s.converter.Convert(ctx, filename, size, src, convert.Options{
		PDF: convert.PDFOptions{
			Scale:      s.pdfScale,
			MaxPages:   s.pdfMaxPages,
			OnProgress: onProgress,
		},
	})
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, title, string(kind), html)
	if err != nil {
		return nil, err
	}

	// Best-effort: the rendered html is already the source of truth.
	if s.arc != nil {
		if aerr := s.arc.Store(ctx, doc.ID, doc.Kind, raw.Bytes()); aerr != nil {
			logJSON("warn", "archive_store_failed", map[string]any{"doc_id": doc.ID, "error": aerr.Error()})
		}
	}
	return doc, nil
}
