package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/profile"
)

var ErrNotFound = errors.New("resume not found")

// Resume хранит метаданные загруженного файла.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	StorageURI string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Parsed хранит извлечённый из резюме текст.
type Parsed struct {
	ResumeID uuid.UUID
	Text     string
}

// Repository: порт доступа к резюме.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	SaveParsed(ctx context.Context, p Parsed) error
	GetParsed(ctx context.Context, resumeID uuid.UUID) (Parsed, error)
	GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	// DeleteForOwner returns the deleted meta for file cleanup.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
}

// DownloadURL is the path the profile record links to.
func DownloadURL(id uuid.UUID) string {
	return "/api/v1/resumes/" + id.String() + "/file"
}

// Artifact converts stored metadata into the record's resume reference.
func (r Resume) Artifact() profile.ResumeFile {
	return profile.ResumeFile{
		ID:   r.ID.String(),
		Name: r.Filename,
		URL:  DownloadURL(r.ID),
		Size: r.Size,
		Type: r.MimeType,
	}
}
