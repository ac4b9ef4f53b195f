package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("corrupt document")
)

var allowed = map[Format]struct{}{
	FormatPDF:  {},
	FormatDOCX: {},
}

// FormatOf returns the lower-cased extension of filename without the dot.
func FormatOf(filename string) Format {
	ext := strings.TrimPrefix(filepath.Ext(strings.TrimSpace(filename)), ".")
	return Format(strings.ToLower(ext))
}

func Allowed(filename string) bool {
	_, ok := allowed[FormatOf(filename)]
	return ok
}

// Extract turns an uploaded document into plain text. PDF pages are joined in
// page order; DOCX paragraphs are joined with newlines.
func Extract(filename string, data []byte) (string, error) {
	switch f := FormatOf(filename); f {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func corrupt(kind string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, kind, err)
}
