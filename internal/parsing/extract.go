package parsing

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported upload MIME types
const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeHTML = "text/html"
)

// MimeFromFilename maps a file extension to one of the supported MIME types.
func MimeFromFilename(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return MimeText, nil
	case ".pdf":
		return MimePDF, nil
	case ".docx":
		return MimeDOCX, nil
	case ".html", ".htm":
		return MimeHTML, nil
	default:
		return "", &ExtractError{Mime: filepath.Ext(name), Message: "unsupported file extension"}
	}
}

// ExtractText pulls plain text out of an uploaded resume and cleans it.
func ExtractText(mime string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ExtractError{Mime: mime, Message: "empty document"}
	}

	// Drop parameters such as "; charset=utf-8"
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	var (
		text string
		err  error
	)
	switch mime {
	case MimeText, "text/markdown":
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	case MimeHTML:
		text, err = extractHTMLText(data)
	default:
		return "", &ExtractError{Mime: mime, Message: "unsupported file type"}
	}
	if err != nil {
		return "", &ExtractError{Mime: mime, Message: "failed to read document", Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &ExtractError{Mime: mime, Message: "document contains no text"}
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns the document.xml body into text, one paragraph per line.
func docxXMLToText(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "</w:p>\n")
	content = strings.ReplaceAll(content, "<w:tab/>", " ")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")

	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return htmlUnescaper.Replace(sb.String())
}

var htmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, td, dt, dd").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})
	if sb.Len() == 0 {
		return doc.Find("body").Text(), nil
	}
	return sb.String(), nil
}
