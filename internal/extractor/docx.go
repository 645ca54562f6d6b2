package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// extractDocx reads word/document.xml and returns the text of every
// body-level paragraph in document order, each followed by a newline.
// Paragraphs nested in tables, text boxes or content controls are not part
// of the body paragraph list and are skipped.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer func() { _ = rc.Close() }()

	return paragraphText(rc)
}

func paragraphText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		out       strings.Builder
		para      strings.Builder
		stack     []string
		openParas int
		bodyPara  bool
		inText    bool
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "p":
				openParas++
				if openParas == 1 && parent() == "body" {
					bodyPara = true
					para.Reset()
				}
			case "t":
				inText = bodyPara && openParas == 1
			case "tab":
				if bodyPara && openParas == 1 && parent() == "r" {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if bodyPara && openParas == 1 && parent() == "r" {
					para.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.CharData:
			if inText {
				para.Write(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if openParas == 1 && bodyPara {
					out.WriteString(para.String())
					out.WriteByte('\n')
					bodyPara = false
				}
				openParas--
			}
		}
	}

	return out.String(), nil
}
