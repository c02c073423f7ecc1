package convert

import (
	"context"
	"fmt"
)

// DocxConverter turns raw DOCX bytes into an HTML body fragment. The pipeline
// never parses DOCX itself; the capability is injected.
type DocxConverter interface {
	ConvertToHTML(ctx context.Context, data []byte) (string, error)
}

func renderDocx(ctx context.Context, conv DocxConverter, data []byte) (string, error) {
	if conv == nil {
		return "", ErrDocxEngineMissing
	}
	body, err := conv.ConvertToHTML(ctx, data)
	if err != nil {
		return "", fmt.Errorf("docx conversion: %w", err)
	}
	return `<div class="docx">` + body + `</div>`, nil
}
