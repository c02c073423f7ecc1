package convert

import (
	"regexp"
	"strings"
)

// Kind classifies an uploaded file. Classification is a pure function of the
// lower-cased extension after the last dot in the filename.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
	KindPDF      Kind = "pdf"
	KindDOCX     Kind = "docx"
	// KindOther marks everything the pipeline refuses to convert.
	KindOther Kind = "other"
)

// DefaultTitle is used when an uploaded file has no usable name.
const DefaultTitle = "Document"

// KindFromFilename maps a filename to its Kind. A file without an extension
// maps to KindOther.
func KindFromFilename(name string) Kind {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return KindOther
	}
	switch strings.ToLower(name[i+1:]) {
	case "md":
		return KindMarkdown
	case "txt":
		return KindText
	case "pdf":
		return KindPDF
	case "docx":
		return KindDOCX
	}
	return KindOther
}

// trailingExt matches a final ".ext" segment (no dots or slashes inside).
var trailingExt = regexp.MustCompile(`\.[^/.]+$`)

// TitleFromFilename derives a document title: the filename with one trailing
// extension stripped. An empty filename yields DefaultTitle.
func TitleFromFilename(name string) string {
	if name == "" {
		return DefaultTitle
	}
	return trailingExt.ReplaceAllString(name, "")
}
