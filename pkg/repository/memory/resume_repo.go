package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/resume"
)

type ResumeRepository struct {
	mu     sync.RWMutex
	metas  map[uuid.UUID]resume.Resume
	parsed map[uuid.UUID]string
}

func NewResumeRepository() *ResumeRepository {
	return &ResumeRepository{metas: make(map[uuid.UUID]resume.Resume), parsed: make(map[uuid.UUID]string)}
}

func (r *ResumeRepository) Create(_ context.Context, rs resume.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metas[rs.ID] = rs
	return nil
}

func (r *ResumeRepository) SaveParsed(_ context.Context, p resume.Parsed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsed[p.ResumeID] = p.Text
	return nil
}

func (r *ResumeRepository) GetParsed(_ context.Context, id uuid.UUID) (resume.Parsed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.parsed[id]
	if !ok {
		return resume.Parsed{}, resume.ErrNotFound
	}
	return resume.Parsed{ResumeID: id, Text: t}, nil
}

func (r *ResumeRepository) GetMetaForOwner(_ context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.metas[id]
	if !ok || m.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	return m, nil
}

func (r *ResumeRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.RLock()
	var res []resume.Resume
	for _, m := range r.metas {
		if m.OwnerID == ownerID {
			res = append(res, m)
		}
	}
	r.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if offset >= len(res) {
		return []resume.Resume{}, nil
	}
	res = res[offset:]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *ResumeRepository) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[id]
	if !ok || m.OwnerID != ownerID {
		return resume.Resume{}, resume.ErrNotFound
	}
	delete(r.metas, id)
	delete(r.parsed, id)
	return m, nil
}
