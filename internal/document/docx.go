package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", corrupt("docx", fmt.Errorf("empty file"))
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", corrupt("docx", err)
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", corrupt("docx", err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs walks word/document.xml and returns the text of every
// paragraph outside tables, in document order. Text boxes and shapes
// (txbxContent, AlternateContent) nest their own paragraphs inside a run;
// their content is dropped and the host paragraph keeps its own text.
func bodyParagraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		out        []string
		cur        strings.Builder
		paraDepth  int
		tableDepth int
		skipDepth  int
		inText     bool
	)
	collecting := func() bool {
		return paraDepth == 1 && tableDepth == 0 && skipDepth == 0
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txbxContent", "AlternateContent":
				skipDepth++
			case "tbl":
				if skipDepth == 0 {
					tableDepth++
				}
			case "p":
				if skipDepth > 0 {
					continue
				}
				paraDepth++
				if paraDepth == 1 && tableDepth == 0 {
					cur.Reset()
				}
			case "t":
				inText = collecting()
			case "tab":
				if collecting() {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if collecting() {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "txbxContent", "AlternateContent":
				if skipDepth > 0 {
					skipDepth--
				}
			case "tbl":
				if skipDepth == 0 && tableDepth > 0 {
					tableDepth--
				}
			case "p":
				if skipDepth > 0 || paraDepth == 0 {
					continue
				}
				if paraDepth == 1 && tableDepth == 0 {
					out = append(out, cur.String())
				}
				paraDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return out, nil
}
