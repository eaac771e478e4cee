package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/artem13815/microbridge/pkg/wizard"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	ErrDocumentTooLarge  = errors.New("docx document body exceeds the extraction limit")
)

// maxDocumentXML caps the decompressed word/document.xml read during extraction.
const maxDocumentXML = 16 << 20

var (
	reTags  = regexp.MustCompile(`<[^>]+>`)
	reSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines = regexp.MustCompile(`\n+`)
)

// ExtractText pulls plain text out of an uploaded resume. The MIME type decides the
// format; the file extension is the fallback when the client sent a generic type.
func ExtractText(mimeType, filename string, data []byte) (string, error) {
	switch format(mimeType, filename) {
	case wizard.MimePDF:
		return extractTextFromPDF(data)
	case wizard.MimeDOCX:
		return extractTextFromDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func format(mimeType, filename string) string {
	if mimeType == wizard.MimePDF || mimeType == wizard.MimeDOCX {
		return mimeType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return wizard.MimePDF
	case ".docx":
		return wizard.MimeDOCX
	}
	return ""
}

// extension maps a supported MIME type to the file suffix used on disk.
func extension(mimeType string) string {
	if mimeType == wizard.MimeDOCX {
		return ".docx"
	}
	return ".pdf"
}

func extractTextFromPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed documents
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		if f.UncompressedSize64 > maxDocumentXML {
			return "", ErrDocumentTooLarge
		}
		if docXML, err = readDocumentXML(f); err != nil {
			return "", err
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	// paragraph boundaries become newlines
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return normalizeWhitespace(reTags.ReplaceAllString(xml, " ")), nil
}

// readDocumentXML does not trust the declared size: the stream itself is cut at the cap.
func readDocumentXML(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, maxDocumentXML+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxDocumentXML {
		return nil, ErrDocumentTooLarge
	}
	return b, nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	s = reLines.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}
