package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:hyperlink r:id="rId5"><w:r><w:t>Grifter</w:t></w:r></w:hyperlink><w:r><w:tab/><w:t xml:space="preserve"> - resume roaster</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body>
</w:document>`

	docxRelsWithLinks = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://github.com/jane/grifter" TargetMode="External"/>
<Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://github.com/jane" TargetMode="External"/>
</Relationships>`
)

func buildDOCX(t *testing.T, rels string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, body string }{
		{"[Content_Types].xml", docxContentTypes},
		{"word/document.xml", docxBody},
		{"word/_rels/document.xml.rels", rels},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one text line and optional URI links per page.
func buildPDF(t *testing.T, pageTexts []string, pageLinks [][]string) []byte {
	t.Helper()

	objs := map[int]string{}
	n := 3
	kids := make([]string, 0, len(pageTexts))
	for i, text := range pageTexts {
		pageNum, contentNum := n+1, n+2
		n += 2

		var annotRefs []string
		if i < len(pageLinks) {
			for _, link := range pageLinks[i] {
				n++
				objs[n] = fmt.Sprintf("<< /Type /Annot /Subtype /Link /Rect [72 700 300 720] /Border [0 0 0] /A << /S /URI /URI (%s) >> >>", link)
				annotRefs = append(annotRefs, fmt.Sprintf("%d 0 R", n))
			}
		}

		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objs[contentNum] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)

		annots := ""
		if len(annotRefs) > 0 {
			annots = " /Annots [" + strings.Join(annotRefs, " ") + "]"
		}
		objs[pageNum] = fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R%s >>", contentNum, annots)
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objs[1] = "<< /Type /Catalog /Pages 2 0 R >>"
	objs[2] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))
	objs[3] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, n+1)
	for i := 1; i <= n; i++ {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i, objs[i])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", n+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", n+1, xref)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"resume.pdf", FormatPDF, false},
		{"Resume.PDF", FormatPDF, false},
		{"cv.docx", FormatDOCX, false},
		{"cv.doc", "", true},
		{"notes.txt", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDocument_DOCX(t *testing.T) {
	doc, err := ExtractDocument("cv.docx", buildDOCX(t, docxRelsWithLinks))
	require.NoError(t, err)

	assert.Equal(t, FormatDOCX, doc.Format)
	assert.Equal(t, []string{"https://github.com/jane/grifter", "https://github.com/jane"}, doc.Links)
	assert.True(t, strings.HasPrefix(doc.Text, "Jane Doe\nGrifter\t - resume roaster\nLine one\nLine two"))
	assert.True(t, strings.HasSuffix(doc.Text, " \nLinks: https://github.com/jane/grifter, https://github.com/jane"))
	assert.Len(t, doc.Hash, 64)
}

func TestExtractDocument_DOCXWithoutLinks(t *testing.T) {
	rels := `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	doc, err := ExtractDocument("cv.docx", buildDOCX(t, rels))
	require.NoError(t, err)
	assert.Empty(t, doc.Links)
	assert.NotNil(t, doc.Links)
	assert.NotContains(t, doc.Text, "Links:")
}

func TestExtractDocument_PDF(t *testing.T) {
	data := buildPDF(t,
		[]string{"Jane Doe Projects", "Grifter resume roaster"},
		[][]string{nil, {"https://github.com/jane/grifter"}},
	)

	doc, err := ExtractDocument("resume.pdf", data)
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, doc.Format)
	assert.Contains(t, doc.Text, "Jane Doe Projects")
	assert.Contains(t, doc.Text, "Grifter resume roaster")
	assert.Contains(t, doc.Text, "Links: https://github.com/jane/grifter")
	assert.Equal(t, []string{"https://github.com/jane/grifter"}, doc.Links)
}

func TestExtractDocument_Errors(t *testing.T) {
	_, err := ExtractDocument("resume.txt", []byte("hello"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractDocument("resume.pdf", nil)
	require.Error(t, err)

	_, err = ExtractDocument("resume.pdf", []byte("definitely not a pdf"))
	require.Error(t, err)

	_, err = ExtractDocument("resume.docx", []byte("not a zip"))
	require.Error(t, err)
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, buildDOCX(t, docxRelsWithLinks), 0o600))

	doc, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cv.docx", doc.Filename)
	assert.Contains(t, doc.Text, "Jane Doe")

	_, err = IngestFromFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestWordText(t *testing.T) {
	got, err := wordText(docxBody)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGrifter\t - resume roaster\nLine one\nLine two", got)

	_, err = wordText("<w:p><w:t>unclosed")
	require.Error(t, err)
}
