// Package ingest loads analyzable text from local files. Plain text,
// markdown, HTML, PDF and DOCX are supported; binary media like images
// and audio are rejected with an explicit error since the analysis covers
// language only.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Source is the text loaded from one input file
type Source struct {
	Path   string
	Format string // text, markdown, html, pdf, docx
	Text   string
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".webp": true, ".svg": true, ".tiff": true,
}

var audioVideoExts = map[string]bool{
	".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".flac": true,
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
}

// ReadFile loads path and extracts its text by format. Plain text and
// markdown pass through untouched so rewrites can preserve the original
// bytes; structured formats go through text extraction.
func ReadFile(path string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case imageExts[ext]:
		return nil, fmt.Errorf("image input is not supported (%s): only language is analyzed", filepath.Base(path))
	case audioVideoExts[ext]:
		return nil, fmt.Errorf("audio/video input is not supported (%s): only language is analyzed", filepath.Base(path))
	}

	switch ext {
	case ".txt", "":
		text, err := readPlain(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Format: "text", Text: text}, nil

	case ".md", ".markdown":
		text, err := readPlain(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Format: "markdown", Text: text}, nil

	case ".html", ".htm":
		text, err := readHTML(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Format: "html", Text: text}, nil

	case ".pdf":
		text, err := readPDF(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Format: "pdf", Text: text}, nil

	case ".docx":
		text, err := readDOCX(path)
		if err != nil {
			return nil, err
		}
		return &Source{Path: path, Format: "docx", Text: text}, nil

	default:
		// Unknown extensions pass through as plain text when the content
		// really is text; binary payloads fail the UTF-8 check.
		text, err := readPlain(path)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("unsupported file type: %s (content is not UTF-8 text)", ext)
		}
		return &Source{Path: path, Format: "text", Text: text}, nil
	}
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func readHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	text := extractVisibleText(doc)
	if text == "" {
		return "", fmt.Errorf("no extractable text found in html")
	}
	return text, nil
}

// extractVisibleText collects text nodes from HTML, skipping scripts,
// styles and other non-content tags.
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return normalizeWhitespace(b.String()), nil
}

func readDOCX(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", fmt.Errorf("open document.xml: %w", openErr)
			}
			xmlData, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
			if t.Name.Local == "p" && b.Len() > 0 {
				b.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.WriteString(string(t))
			}
		}
	}
	return normalizeWhitespace(b.String()), nil
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}
