package handlers

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/microbridge/pkg/wizard"
)

func TestContentType(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		header   string
		want     string
	}{
		{"plain", "cv.pdf", "application/pdf", wizard.MimePDF},
		{"parameters", "cv.pdf", "application/pdf; name=cv.pdf", wizard.MimePDF},
		{"upper case", "cv.pdf", "Application/PDF", wizard.MimePDF},
		{"docx with charset", "cv.docx", wizard.MimeDOCX + "; charset=binary", wizard.MimeDOCX},
		{"generic falls back to extension", "CV.DOCX", "application/octet-stream", wizard.MimeDOCX},
		{"missing falls back to extension", "cv.pdf", "", wizard.MimePDF},
		{"other type kept", "me.png", "image/png", "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := make(textproto.MIMEHeader)
			if tc.header != "" {
				h.Set("Content-Type", tc.header)
			}
			fh := &multipart.FileHeader{Filename: tc.filename, Header: h}
			assert.Equal(t, tc.want, contentType(fh))
		})
	}
}
