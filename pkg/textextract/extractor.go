// Package textextract pulls plain text out of customs declaration uploads.
// Each file type gets a chain of strategies tried in order; the first one
// that yields non-empty text wins.
package textextract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Gobusters/ectologger"
	pdf "github.com/ledongthuc/pdf"
)

// ErrNoExtractableText is returned when every strategy in the chain fails or
// yields only whitespace. Scanned image-only PDFs are the usual cause.
var ErrNoExtractableText = errors.New("no extractable text found in document")

var xmlTagRegex = regexp.MustCompile(`<[^>]+>`)

// Extractor is a single text extraction strategy
type Extractor interface {
	Name() string
	Extract(data []byte) (string, error)
}

// Chain tries its extractors in order and returns the first non-empty result
type Chain struct {
	logger     ectologger.Logger
	extractors []Extractor
}

// NewChain builds the extraction chain for the given filename. PDF and DOCX
// get format-aware strategies; anything else is treated as plain text.
func NewChain(logger ectologger.Logger, filename string) *Chain {
	var extractors []Extractor
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		extractors = []Extractor{pdfDocument{}, pdfPages{}}
	case ".docx":
		extractors = []Extractor{docx{}}
	default:
		extractors = []Extractor{plainText{}}
	}
	return &Chain{
		logger:     logger,
		extractors: extractors,
	}
}

// Extract runs the chain over data. Strategy failures are logged and the next
// strategy is tried; ErrNoExtractableText is returned only when the whole
// chain comes up empty.
func (c *Chain) Extract(ctx context.Context, data []byte) (string, error) {
	for _, extractor := range c.extractors {
		text, err := extractor.Extract(data)
		if err != nil {
			c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"strategy": extractor.Name(),
			}).Debug("Text extraction strategy failed")
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	return "", ErrNoExtractableText
}

// pdfDocument extracts the whole PDF in one pass
type pdfDocument struct{}

func (pdfDocument) Name() string { return "pdf-document" }

func (pdfDocument) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	stream, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pdfPages extracts page by page, skipping pages that fail to decode. Some
// declarations mix text pages with scanned attachments; this recovers the
// text pages the whole-document pass gives up on.
type pdfPages struct{}

func (pdfPages) Name() string { return "pdf-pages" }

func (pdfPages) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// docx unpacks word/document.xml and strips the markup
type docx struct{}

func (docx) Name() string { return "docx" }

func (docx) Extract(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var document []byte
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		document, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(document) == 0 {
		return "", fmt.Errorf("no word/document.xml entry in archive")
	}

	xml := string(document)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return xmlTagRegex.ReplaceAllString(xml, " "), nil
}

// plainText passes the bytes through, dropping invalid UTF-8
type plainText struct{}

func (plainText) Name() string { return "plain-text" }

func (plainText) Extract(data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), ""), nil
}
