package engine

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
)

// DocxEngine converts the word/document.xml body of a DOCX container into a
// minimal HTML fragment: paragraphs become <p>, bold and italic runs become
// <strong>/<em>, explicit breaks become <br/>. Markup the walker does not
// understand is dropped rather than guessed at.
type DocxEngine struct{}

// NewDocxEngine returns the DOCX conversion capability.
func NewDocxEngine() *DocxEngine {
	return &DocxEngine{}
}

var _ convert.DocxConverter = (*DocxEngine)(nil)

func (*DocxEngine) ConvertToHTML(_ context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if docXML == nil {
		return "", errors.New("docx container has no word/document.xml")
	}

	return walkDocumentXML(docXML)
}

func walkDocumentXML(docXML []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var out, para strings.Builder
	inParagraph := false
	inText := false
	bold := false
	italic := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				para.Reset()
			case "r":
				// Run properties reset per run; w:b / w:i inside rPr re-enable them.
				bold, italic = false, false
			case "b":
				bold = !propDisabled(t)
			case "i":
				italic = !propDisabled(t)
			case "t":
				inText = true
			case "br":
				if inParagraph {
					para.WriteString("<br/>")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					out.WriteString("<p>" + para.String() + "</p>\n")
				}
				inParagraph = false
			}
		case xml.CharData:
			if !inParagraph || !inText {
				continue
			}
			text := convert.EscapeHTML(string(t))
			switch {
			case bold && italic:
				para.WriteString("<strong><em>" + text + "</em></strong>")
			case bold:
				para.WriteString("<strong>" + text + "</strong>")
			case italic:
				para.WriteString("<em>" + text + "</em>")
			default:
				para.WriteString(text)
			}
		}
	}

	return strings.TrimSuffix(out.String(), "\n"), nil
}

// propDisabled reports whether a boolean run property element carries an
// explicit off value (w:val="false" or "0").
func propDisabled(el xml.StartElement) bool {
	for _, a := range el.Attr {
		if a.Name.Local == "val" && (a.Value == "false" || a.Value == "0") {
			return true
		}
	}
	return false
}
