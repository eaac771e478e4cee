package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/microbridge/pkg/profile"
)

type fakeStorage struct {
	mu        sync.Mutex
	uploads   int
	removed   []profile.ResumeFile
	err       error
	removeErr error
	block     chan struct{}
	started   chan struct{}
}

func (f *fakeStorage) Upload(ctx context.Context, file File) (profile.ResumeFile, error) {
	f.mu.Lock()
	f.uploads++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return profile.ResumeFile{}, f.err
	}
	return profile.ResumeFile{ID: "r-1", Name: file.Name, URL: "/api/v1/resumes/r-1/file", Size: file.Size, Type: file.Type}, nil
}

func (f *fakeStorage) Remove(ctx context.Context, r profile.ResumeFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, r)
	return nil
}

func pdf(size int) File {
	return File{Name: "cv.pdf", Type: MimePDF, Size: int64(size), Data: make([]byte, size)}
}

func TestResumeGuardRejectsWithoutUpload(t *testing.T) {
	st := &fakeStorage{}
	c := New()
	step := NewResumeStep(st, c.Update)

	got := step.Select(context.Background(), File{Name: "me.png", Type: "image/png", Size: 1000})
	assert.Equal(t, UploadRejected, got.Status)
	assert.Equal(t, ErrUnsupportedType.Error(), got.Message)

	got = step.Select(context.Background(), File{Name: "big.pdf", Type: MimePDF, Size: MaxResumeBytes + 1})
	assert.Equal(t, UploadRejected, got.Status)

	assert.Zero(t, st.uploads)
	assert.Nil(t, c.Record().Resume)
	assert.Equal(t, UploadIdle, step.State().Status)
}

func TestResumeRejectionKeepsPreviousState(t *testing.T) {
	st := &fakeStorage{}
	c := New()
	step := NewResumeStep(st, c.Update)

	ok := step.Select(context.Background(), pdf(10))
	require.Equal(t, UploadSuccess, ok.Status)

	got := step.Select(context.Background(), File{Name: "me.png", Type: "image/png", Size: 1000})
	assert.Equal(t, UploadRejected, got.Status)
	assert.Equal(t, ok, step.State())
}

func TestResumeUploadRecordsArtifact(t *testing.T) {
	st := &fakeStorage{}
	c := New()
	step := NewResumeStep(st, c.Update)

	got := step.Select(context.Background(), pdf(1024))
	require.Equal(t, UploadSuccess, got.Status)
	require.NotNil(t, c.Record().Resume)
	assert.Equal(t, "cv.pdf", c.Record().Resume.Name)
	assert.Equal(t, got, step.State())

	require.NoError(t, step.Remove(context.Background(), c.Record().Resume))
	assert.Nil(t, c.Record().Resume)
	assert.Len(t, st.removed, 1)
	assert.Equal(t, UploadIdle, step.State().Status)
}

func TestResumeUploadFailureKeepsRecord(t *testing.T) {
	st := &fakeStorage{err: errors.New("disk full")}
	c := New()
	step := NewResumeStep(st, c.Update)

	got := step.Select(context.Background(), pdf(10))
	assert.Equal(t, UploadError, got.Status)
	assert.Contains(t, got.Message, "disk full")
	assert.Nil(t, c.Record().Resume)
	assert.False(t, step.Pending())
}

func TestResumeUploadDropsFileWhenRecordRejects(t *testing.T) {
	st := &fakeStorage{}
	step := NewResumeStep(st, func(profile.Patch) error { return ErrAlreadyCompleted })

	got := step.Select(context.Background(), pdf(10))
	assert.Equal(t, UploadError, got.Status)
	assert.Len(t, st.removed, 1)
}

func TestResumeUploadsAreSerialized(t *testing.T) {
	st := &fakeStorage{block: make(chan struct{}), started: make(chan struct{})}
	c := New()
	step := NewResumeStep(st, c.Update)

	done := make(chan UploadState)
	go func() { done <- step.Select(context.Background(), pdf(10)) }()
	<-st.started

	assert.True(t, step.Pending())
	assert.Equal(t, UploadUploading, step.State().Status)
	busy := step.Select(context.Background(), pdf(20))
	assert.Equal(t, UploadBusy, busy.Status)

	close(st.block)
	assert.Equal(t, UploadSuccess, (<-done).Status)
	assert.Equal(t, 1, st.uploads)
}

func TestResumeRemoveKeepsFileWhenRecordRejects(t *testing.T) {
	st := &fakeStorage{}
	step := NewResumeStep(st, func(profile.Patch) error { return ErrAlreadyCompleted })

	current := &profile.ResumeFile{ID: "r-1", Name: "cv.pdf"}
	err := step.Remove(context.Background(), current)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Empty(t, st.removed)
}

func TestResumeRemoveClearsRecordWhenDeleteFails(t *testing.T) {
	st := &fakeStorage{}
	c := New()
	step := NewResumeStep(st, c.Update)
	require.Equal(t, UploadSuccess, step.Select(context.Background(), pdf(10)).Status)

	st.removeErr = errors.New("permission denied")
	err := step.Remove(context.Background(), c.Record().Resume)
	assert.ErrorIs(t, err, ErrResumeNotDeleted)
	assert.Nil(t, c.Record().Resume)
	assert.Equal(t, UploadIdle, step.State().Status)
}
