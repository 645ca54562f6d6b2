package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// kerningSpace is the TJ adjustment (thousandths of an em) past which a gap
// is treated as a word break.
const kerningSpace = -250

// extractPDF concatenates the text of every page in page order.
func extractPDF(data []byte) (string, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text, err := extractPageText(ctx, pageNr)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNr, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractPageText(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textFromContentStream(content), nil
}

// textFromContentStream walks a page content stream and collects the operands
// of the text-showing operators (Tj, TJ, ' and ").
func textFromContentStream(data []byte) string {
	var (
		out     strings.Builder
		pending strings.Builder
		inArray bool
	)

	lastIsSpace := func() bool {
		s := out.String()
		return s == "" || unicode.IsSpace(rune(s[len(s)-1]))
	}

	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isPDFWhitespace(c):
			i++

		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}

		case c == '(':
			s, next := readLiteralString(data, i)
			pending.WriteString(decodePDFText(s))
			i = next

		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2

		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2

		case c == '<':
			s, next := readHexString(data, i)
			pending.WriteString(decodePDFText(s))
			i = next

		case c == '[':
			inArray = true
			i++

		case c == ']':
			inArray = false
			i++

		case c == '/':
			i++
			for i < len(data) && !isPDFDelimiter(data[i]) && !isPDFWhitespace(data[i]) {
				i++
			}

		default:
			start := i
			for i < len(data) && !isPDFDelimiter(data[i]) && !isPDFWhitespace(data[i]) {
				i++
			}
			if i == start {
				i++
				continue
			}
			tok := string(data[start:i])

			if n, err := strconv.ParseFloat(tok, 64); err == nil {
				if inArray && n <= kerningSpace {
					pending.WriteByte(' ')
				}
				continue
			}

			switch tok {
			case "Tj", "TJ":
				out.WriteString(pending.String())
			case "'", `"`:
				out.WriteByte('\n')
				out.WriteString(pending.String())
			case "T*":
				out.WriteByte('\n')
			case "Td", "TD":
				if !lastIsSpace() {
					out.WriteByte(' ')
				}
			case "ID":
				i = skipInlineImage(data, i)
			}
			pending.Reset()
		}
	}

	return out.String()
}

// readLiteralString reads a balanced (...) string starting at data[start] and
// resolves its escape sequences.
func readLiteralString(data []byte, start int) ([]byte, int) {
	var buf []byte
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '\r', '\n':
				// line continuation
				if e == '\r' && i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					buf = append(buf, byte(val))
				} else {
					buf = append(buf, e)
				}
			}
		case c == '(':
			if depth > 0 {
				buf = append(buf, c)
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return buf, i + 1
			}
			buf = append(buf, c)
		default:
			buf = append(buf, c)
		}
		i++
	}
	return buf, i
}

func readHexString(data []byte, start int) ([]byte, int) {
	var digits []byte
	i := start + 1
	for i < len(data) && data[i] != '>' {
		if isHexDigit(data[i]) {
			digits = append(digits, data[i])
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	buf := make([]byte, 0, len(digits)/2)
	for k := 0; k < len(digits); k += 2 {
		v, _ := strconv.ParseUint(string(digits[k:k+2]), 16, 8)
		buf = append(buf, byte(v))
	}
	return buf, i + 1
}

// skipInlineImage advances past the binary payload of an inline image that
// starts after the ID operator at data[i].
func skipInlineImage(data []byte, i int) int {
	end := bytes.Index(data[i:], []byte("EI"))
	for end >= 0 {
		pos := i + end
		before := pos == 0 || isPDFWhitespace(data[pos-1])
		after := pos+2 >= len(data) || isPDFWhitespace(data[pos+2])
		if before && after {
			return pos + 2
		}
		next := bytes.Index(data[pos+2:], []byte("EI"))
		if next < 0 {
			break
		}
		end = pos + 2 + next - i
	}
	return len(data)
}

// decodePDFText turns a PDF string into UTF-8. UTF-16BE strings carry a BOM;
// everything else is treated as a single-byte encoding.
func decodePDFText(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		units := make([]uint16, 0, (len(b)-2)/2)
		for k := 2; k+1 < len(b); k += 2 {
			units = append(units, uint16(b[k])<<8|uint16(b[k+1]))
		}
		return string(utf16.Decode(units))
	}
	runes := make([]rune, 0, len(b))
	for _, c := range b {
		r := rune(c)
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	return string(runes)
}

func isPDFWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
