package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", corrupt("pdf", fmt.Errorf("empty file"))
	}

	// The pdf reader panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = corrupt("pdf", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt("pdf", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", corrupt("pdf", fmt.Errorf("page %d: %w", i, err))
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
