// Package ingestion turns uploaded resumes into text and structured project lists.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for files that are neither PDF nor DOCX.
var ErrUnsupportedFormat = errors.New("unsupported file format, please provide a PDF or DOCX file")

// Format is a supported resume document format.
type Format string

// Supported formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const (
	linksPrefix = " \nLinks: "
	docxRels    = "word/_rels/document.xml.rels"
	hyperlinkRT = "/hyperlink"
)

// Document is the text extracted from a resume file.
type Document struct {
	Filename string   `json:"filename"`
	Format   Format   `json:"format"`
	Text     string   `json:"text"`
	Links    []string `json:"links"`
	Hash     string   `json:"hash"`
}

// DetectFormat picks the format from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// ExtractDocument extracts text and embedded hyperlinks from a PDF or DOCX file.
// Links are appended to the text in a "Links:" section so the extractor can
// associate them with projects.
func ExtractDocument(filename string, data []byte) (*Document, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", filename)
	}

	doc := &Document{Filename: filename, Format: format, Hash: computeHash(data)}
	switch format {
	case FormatPDF:
		err = extractPDF(data, doc)
	case FormatDOCX:
		err = extractDOCX(data, doc)
	}
	if err != nil {
		return nil, err
	}
	if doc.Links == nil {
		doc.Links = []string{}
	}
	return doc, nil
}

// IngestFromFile reads a resume from disk and extracts it.
func IngestFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractDocument(filepath.Base(path), data)
}

// extractPDF reads each page's text and URI link annotations. Pages are joined
// with a space; a page with links gets its own "Links:" suffix.
func extractPDF(data []byte, doc *Document) (err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}

		links := pageLinks(page)
		doc.Links = append(doc.Links, links...)
		if len(links) > 0 {
			text += linksPrefix + strings.Join(links, ", ")
		}
		pages = append(pages, text)
	}

	doc.Text = strings.Join(pages, " ")
	return nil
}

// pageLinks returns the URI targets of a page's link annotations.
func pageLinks(page pdf.Page) []string {
	annots := page.V.Key("Annots")
	var links []string
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		if uri := strings.TrimSpace(annot.Key("A").Key("URI").RawString()); uri != "" {
			links = append(links, uri)
		}
	}
	return links
}

// extractDOCX reads the body text through the docx reader and the external
// hyperlink targets from the document relationships part.
func extractDOCX(data []byte, doc *Document) error {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = reader.Close() }()

	text, err := wordText(reader.Editable().GetContent())
	if err != nil {
		return fmt.Errorf("failed to parse docx body: %w", err)
	}

	links, err := docxHyperlinks(data)
	if err != nil {
		return fmt.Errorf("failed to parse docx relationships: %w", err)
	}

	doc.Links = links
	if len(links) > 0 {
		text += linksPrefix + strings.Join(links, ", ")
	}
	doc.Text = text
	return nil
}

// wordText flattens WordprocessingML into text: one line per paragraph, with tabs
// and breaks preserved.
func wordText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

type relationship struct {
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// docxHyperlinks lists external hyperlink targets in relationship order.
func docxHyperlinks(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if f.Name != docxRels {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()

		var rels relationships
		if err := xml.NewDecoder(rc).Decode(&rels); err != nil {
			return nil, err
		}

		links := make([]string, 0, len(rels.Items))
		for _, rel := range rels.Items {
			if strings.HasSuffix(rel.Type, hyperlinkRT) && rel.Target != "" {
				links = append(links, rel.Target)
			}
		}
		return links, nil
	}
	return nil, nil
}
