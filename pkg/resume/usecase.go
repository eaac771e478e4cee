package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/nlp"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// UseCase stores resume files on disk with their metadata and extracted text.
type UseCase interface {
	// Storage binds the upload port of the wizard resume step to one owner.
	Storage(ownerID uuid.UUID) wizard.ResumeStorage
	Upload(ctx context.Context, ownerID uuid.UUID, f wizard.File) (profile.ResumeFile, error)
	Remove(ctx context.Context, ownerID uuid.UUID, ref profile.ResumeFile) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	// Skills lists the known skills mentioned in the resume text, for the skills step
	// to offer. A resume whose text could not be extracted yields none.
	Skills(ctx context.Context, ownerID, id uuid.UUID) ([]string, error)
}

type service struct {
	repo    Repository
	baseDir string
	log     *zap.Logger
}

func NewService(repo Repository, baseDir string, log *zap.Logger) UseCase {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &service{repo: repo, baseDir: baseDir, log: log}
}

func (s *service) Storage(ownerID uuid.UUID) wizard.ResumeStorage {
	return ownerStorage{svc: s, owner: ownerID}
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, f wizard.File) (profile.ResumeFile, error) {
	if err := wizard.CheckResumeFile(f); err != nil {
		return profile.ResumeFile{}, err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return profile.ResumeFile{}, fmt.Errorf("prepare storage: %w", err)
	}
	meta := Resume{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Filename:  filepath.Base(f.Name),
		MimeType:  f.Type,
		Size:      int64(len(f.Data)),
		CreatedAt: time.Now().UTC(),
	}
	meta.StorageURI = filepath.Join(s.baseDir, meta.ID.String()+extension(f.Type))
	if err := os.WriteFile(meta.StorageURI, f.Data, 0o644); err != nil {
		return profile.ResumeFile{}, fmt.Errorf("store file: %w", err)
	}
	if err := s.repo.Create(ctx, meta); err != nil {
		_ = os.Remove(meta.StorageURI)
		return profile.ResumeFile{}, fmt.Errorf("save metadata: %w", err)
	}

	// text extraction is best effort; the upload itself already succeeded
	txt, err := ExtractText(f.Type, f.Name, f.Data)
	if err != nil {
		s.log.Warn("resume text extraction failed", zap.String("resume_id", meta.ID.String()), zap.Error(err))
	} else if err := s.repo.SaveParsed(ctx, Parsed{ResumeID: meta.ID, Text: txt}); err != nil {
		s.log.Warn("save parsed resume failed", zap.String("resume_id", meta.ID.String()), zap.Error(err))
	}

	s.log.Info("resume stored",
		zap.String("owner_id", ownerID.String()),
		zap.String("resume_id", meta.ID.String()),
		zap.Int64("size", meta.Size))
	return meta.Artifact(), nil
}

// Remove deletes the stored file and its metadata. A reference to a resume that is
// already gone counts as removed.
func (s *service) Remove(ctx context.Context, ownerID uuid.UUID, ref profile.ResumeFile) error {
	id, err := uuid.Parse(ref.ID)
	if err != nil {
		return nil
	}
	meta, err := s.repo.DeleteForOwner(ctx, ownerID, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if err := os.Remove(meta.StorageURI); err != nil && !os.IsNotExist(err) {
		s.log.Warn("remove resume file", zap.String("path", meta.StorageURI), zap.Error(err))
	}
	return nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Resume, error) {
	return s.repo.GetMetaForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Skills(ctx context.Context, ownerID, id uuid.UUID) ([]string, error) {
	if _, err := s.repo.GetMetaForOwner(ctx, ownerID, id); err != nil {
		return nil, err
	}
	parsed, err := s.repo.GetParsed(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return nlp.Detect(parsed.Text, nil), nil
}

type ownerStorage struct {
	svc   *service
	owner uuid.UUID
}

func (o ownerStorage) Upload(ctx context.Context, f wizard.File) (profile.ResumeFile, error) {
	return o.svc.Upload(ctx, o.owner, f)
}

func (o ownerStorage) Remove(ctx context.Context, ref profile.ResumeFile) error {
	return o.svc.Remove(ctx, o.owner, ref)
}
