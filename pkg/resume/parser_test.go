package resume

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"hash/crc32"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/wizard"
)

// compressibleDocx deflates n bytes of filler into word/document.xml.
func compressibleDocx(t *testing.T, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	chunk := bytes.Repeat([]byte("a"), 1<<20)
	for written := 0; written < n; written += len(chunk) {
		_, err = w.Write(chunk[:min(len(chunk), n-written)])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// understatedDocx stores n bytes of filler but declares a tiny uncompressed size.
func understatedDocx(t *testing.T, n int) []byte {
	t.Helper()
	body := bytes.Repeat([]byte("a"), n)
	var deflated bytes.Buffer
	fw, err := flate.NewWriter(&deflated, flate.BestCompression)
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateRaw(&zip.FileHeader{
		Name:               "word/document.xml",
		Method:             zip.Deflate,
		CRC32:              crc32.ChecksumIEEE(body),
		CompressedSize64:   uint64(deflated.Len()),
		UncompressedSize64: 1024,
	})
	require.NoError(t, err)
	_, err = w.Write(deflated.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextDocxBodyLimit(t *testing.T) {
	data := compressibleDocx(t, maxDocumentXML+1<<20)
	require.Less(t, len(data), int(wizard.MaxResumeBytes))

	_, err := ExtractText(wizard.MimeDOCX, "cv.docx", data)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
}

func TestExtractTextDocxIgnoresDeclaredSize(t *testing.T) {
	data := understatedDocx(t, maxDocumentXML+1<<20)
	require.Less(t, len(data), int(wizard.MaxResumeBytes))

	txt, err := ExtractText(wizard.MimeDOCX, "cv.docx", data)
	assert.Error(t, err)
	assert.Empty(t, txt)
}

func TestUploadKeepsOversizedDocxWithoutText(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, t.TempDir(), zap.NewNop())
	owner := uuid.New()

	data := compressibleDocx(t, maxDocumentXML+1<<20)
	ref, err := svc.Storage(owner).Upload(context.Background(), wizard.File{
		Name: "cv.docx", Type: wizard.MimeDOCX, Size: int64(len(data)), Data: data,
	})
	require.NoError(t, err)

	id := uuid.MustParse(ref.ID)
	_, err = svc.Get(context.Background(), owner, id)
	require.NoError(t, err)
	repo.mu.Lock()
	_, parsed := repo.parsed[id]
	repo.mu.Unlock()
	assert.False(t, parsed)
}
