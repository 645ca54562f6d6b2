package extractor_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalyze/internal/domain"
	"legalyze/internal/extractor"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_Docx_ParagraphsSeparatedByNewline(t *testing.T) {
	data := buildDocx(t, `
		<w:p><w:r><w:t>RESIDENTIAL LEASE</w:t></w:r></w:p>
		<w:p><w:r><w:t xml:space="preserve">The landlord </w:t></w:r><w:r><w:t>and the tenant agree.</w:t></w:r></w:p>
		<w:p/>
		<w:p><w:r><w:t>Rent:</w:t><w:tab/><w:t>1200</w:t><w:br/><w:t>monthly</w:t></w:r></w:p>`)

	text, err := extractor.New().Extract(data, domain.FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "RESIDENTIAL LEASE\nThe landlord and the tenant agree.\n\nRent:\t1200\nmonthly\n", text)
}

func TestExtract_Docx_SkipsTableParagraphsAndTabStops(t *testing.T) {
	data := buildDocx(t, `
		<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Intro</w:t></w:r></w:p>
		<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell text</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
		<w:p><w:r><w:delText>removed</w:delText><w:t>Closing</w:t></w:r></w:p>`)

	text, err := extractor.New().Extract(data, domain.FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "Intro\nClosing\n", text)
}

func TestExtract_Docx_EmptyBody(t *testing.T) {
	text, err := extractor.New().Extract(buildDocx(t, ""), domain.FormatDOCX)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_Docx_Idempotent(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>Borrower shall repay the principal.</w:t></w:r></w:p>`)
	e := extractor.New()

	first, err := e.Extract(data, domain.FormatDOCX)
	require.NoError(t, err)
	second, err := e.Extract(data, domain.FormatDOCX)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_Docx_NotAZip(t *testing.T) {
	_, err := extractor.New().Extract([]byte("plain text, not a docx"), domain.FormatDOCX)

	var extErr *domain.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, domain.FormatDOCX, extErr.Format)
}

func TestExtract_Docx_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<styles/>"))
	require.NoError(t, zw.Close())

	_, err := extractor.New().Extract(buf.Bytes(), domain.FormatDOCX)

	var extErr *domain.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Contains(t, err.Error(), "word/document.xml not found")
}

// buildPDF writes a minimal PDF with one text-showing content stream per page
// and a byte-accurate xref table.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	const fontObj = 3
	var objects []string
	var kids bytes.Buffer
	for i := range pages {
		fmt.Fprintf(&kids, "%d 0 R ", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDF_PagesJoinedInOrder(t *testing.T) {
	data := buildPDF(t, "The landlord and tenant", "agree on monthly rent")

	text, err := extractor.New().Extract(data, domain.FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "The landlord and tenantagree on monthly rent", text)
}

func TestExtract_PDF_Idempotent(t *testing.T) {
	data := buildPDF(t, "Borrower shall repay", "the principal in full")
	e := extractor.New()

	first, err := e.Extract(data, domain.FormatPDF)
	require.NoError(t, err)
	second, err := e.Extract(data, domain.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Borrower shall repaythe principal in full", first)
}

func TestExtract_PDF_NoPages(t *testing.T) {
	text, err := extractor.New().Extract(buildPDF(t), domain.FormatPDF)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_PDF_Corrupt(t *testing.T) {
	_, err := extractor.New().Extract([]byte("%PDF-1.4 this is not really a pdf"), domain.FormatPDF)

	var extErr *domain.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, domain.FormatPDF, extErr.Format)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := extractor.New().Extract([]byte("x"), domain.DocumentFormat("odt"))

	var extErr *domain.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
