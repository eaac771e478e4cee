package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/microbridge/pkg/wizard"
)

var errFileRequired = errors.New("file is required (pdf or docx)")

// readResume reads the "file" form field. Sizes over the limit are reported to the
// wizard, which rejects them with its own message.
func readResume(c *fiber.Ctx) (wizard.File, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return wizard.File{}, errFileRequired
	}
	f := wizard.File{Name: fh.Filename, Type: contentType(fh), Size: fh.Size}
	if fh.Size > wizard.MaxResumeBytes {
		return f, nil
	}
	file, err := fh.Open()
	if err != nil {
		return wizard.File{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	f.Data, err = readAtMost(file, wizard.MaxResumeBytes)
	if err != nil {
		return wizard.File{}, err
	}
	return f, nil
}

// contentType trusts the media type of the part header unless the client sent none or
// a generic one. Parameters such as "; name=cv.pdf" are dropped.
func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".pdf":
		return wizard.MimePDF
	case ".docx":
		return wizard.MimeDOCX
	}
	return ct
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
