package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/artem13815/microbridge/pkg/profile"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MaxResumeBytes is the upload limit (5 MiB).
	MaxResumeBytes int64 = 5 << 20
)

var (
	ErrUnsupportedType  = errors.New("unsupported file type: please upload a PDF or DOCX file")
	ErrFileTooLarge     = errors.New("file too large: the limit is 5MB")
	ErrResumeNotDeleted = errors.New("resume cleared but the stored file was not deleted")
)

// File is a resume selected by the user.
type File struct {
	Name string
	Type string
	Size int64
	Data []byte
}

// CheckResumeFile is the guard run before any upload.
func CheckResumeFile(f File) error {
	if f.Type != MimePDF && f.Type != MimeDOCX {
		return ErrUnsupportedType
	}
	if f.Size > MaxResumeBytes || int64(len(f.Data)) > MaxResumeBytes {
		return ErrFileTooLarge
	}
	return nil
}

// ResumeStorage persists resume files for the host.
type ResumeStorage interface {
	Upload(ctx context.Context, f File) (profile.ResumeFile, error)
	Remove(ctx context.Context, r profile.ResumeFile) error
}

type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
	UploadRejected  UploadStatus = "rejected"
	UploadBusy      UploadStatus = "busy"
)

// UploadState is what the resume view renders next to the file input.
type UploadState struct {
	Status  UploadStatus        `json:"status"`
	Message string              `json:"message,omitempty"`
	File    *profile.ResumeFile `json:"file,omitempty"`
}

// ResumeStep is the step view of the resume upload. Uploads are serialized: selecting
// a file while another upload is pending is refused with UploadBusy.
type ResumeStep struct {
	storage  ResumeStorage
	onUpdate func(profile.Patch) error

	mu      sync.Mutex
	pending bool
	state   UploadState
}

// NewResumeStep wires the upload storage and the record write path.
func NewResumeStep(storage ResumeStorage, onUpdate func(profile.Patch) error) *ResumeStep {
	return &ResumeStep{storage: storage, onUpdate: onUpdate, state: UploadState{Status: UploadIdle}}
}

// State returns the last upload state.
func (r *ResumeStep) State() UploadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending reports whether an upload is in flight.
func (r *ResumeStep) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Select handles a chosen file: guard, upload, then record the artifact. Failures are
// reported in the returned state and never change the wizard. Rejected and busy
// selections leave the step state as it was.
func (r *ResumeStep) Select(ctx context.Context, f File) UploadState {
	if err := CheckResumeFile(f); err != nil {
		return UploadState{Status: UploadRejected, Message: err.Error()}
	}

	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return UploadState{Status: UploadBusy, Message: "an upload is already in progress"}
	}
	r.pending = true
	r.state = UploadState{Status: UploadUploading}
	r.mu.Unlock()

	res, err := r.storage.Upload(ctx, f)
	if err != nil {
		return r.finish(UploadState{Status: UploadError, Message: fmt.Sprintf("upload failed: %v", err)})
	}
	if err := r.onUpdate(profile.ArtifactsPatch{Resume: &res}); err != nil {
		// the file is stored but not referenced by the record; drop it
		_ = r.storage.Remove(ctx, res)
		return r.finish(UploadState{Status: UploadError, Message: fmt.Sprintf("upload failed: %v", err)})
	}
	return r.finish(UploadState{Status: UploadSuccess, File: &res})
}

func (r *ResumeStep) finish(s UploadState) UploadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = false
	r.state = s
	return s
}

// Remove clears the resume from the record, then deletes the stored file. A file left
// behind by a failed delete is no longer referenced by the record.
func (r *ResumeStep) Remove(ctx context.Context, current *profile.ResumeFile) error {
	if current == nil {
		return nil
	}
	if err := r.onUpdate(profile.ArtifactsPatch{ClearResume: true}); err != nil {
		return err
	}
	r.mu.Lock()
	if !r.pending {
		r.state = UploadState{Status: UploadIdle}
	}
	r.mu.Unlock()
	if err := r.storage.Remove(ctx, *current); err != nil {
		return fmt.Errorf("%w: %v", ErrResumeNotDeleted, err)
	}
	return nil
}
