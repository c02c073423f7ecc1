package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversion failures. Handlers match on these to decide
// the status class; the messages are safe to show to end users.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type (accepted: md, txt, pdf, docx)")
	ErrFileTooLarge      = errors.New("file exceeds the maximum allowed size")
	ErrTooManyPages      = errors.New("pdf exceeds the maximum page count")
	ErrPDFEngineMissing  = errors.New("pdf rendering engine is not available")
	ErrDocxEngineMissing = errors.New("docx conversion engine is not available")
)

// Error is a per-file conversion failure. It carries the offending filename so
// batch callers can report which file failed and move on to the next one.
type Error struct {
	Filename string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Filename, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
