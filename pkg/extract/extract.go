package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	docx "github.com/nguyenthenguyen/docx"
)

// Format identifies a supported resume document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatText Format = "txt"
)

var (
	// ErrUnsupportedFormat means the document format is not one we can read.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed means a supported document could not be decoded.
	ErrExtractionFailed = errors.New("document extraction failed")
)

// DetectFormat maps a filename extension onto a Format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDocx, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Text extracts plain UTF-8 text from a document. An empty but well-formed
// document yields empty text, not an error.
func Text(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractTextFromPDF(data)
	case FormatDocx:
		return extractTextFromDocx(data)
	case FormatText:
		return normalizeWhitespace(strings.ToValidUTF8(string(data), "")), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FromFile detects the format from the filename and extracts the text.
func FromFile(filename string, data []byte) (string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", err
	}
	return Text(format, data)
}

func extractTextFromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	xml := doc.Editable().GetContent()
	// Convert paragraph boundaries to newlines (very naive but effective).
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := reTags.ReplaceAllString(xml, " ")
	return normalizeWhitespace(txt), nil
}

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// normalizeWhitespace collapses horizontal whitespace within lines, trims
// every line and drops the blank ones, so CRLF documents come out with
// single clean newlines.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reSpaces.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
