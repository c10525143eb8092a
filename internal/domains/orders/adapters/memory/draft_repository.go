package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/fieldops/salesorder-api/internal/domains/orders/domain"
	"github.com/fieldops/salesorder-api/internal/domains/orders/ports"
)

var _ ports.DraftRepository = (*DraftRepository)(nil)

// DraftRepository is an in-memory draft persistence adapter. The mutex makes
// Replace atomic per process, mirroring the transactional replace of the
// Postgres adapter.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]*domain.Draft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: map[string]*domain.Draft{}}
}

func (r *DraftRepository) Get(_ context.Context, userID string) (*domain.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[userID]
	if !ok {
		return nil, ports.ErrDraftNotFound
	}
	return cloneDraft(draft), nil
}

func (r *DraftRepository) Replace(_ context.Context, draft *domain.Draft) (*domain.Draft, error) {
	if draft == nil {
		return nil, errors.New("draft is nil")
	}
	clone := cloneDraft(draft)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[clone.UserID] = clone
	return cloneDraft(clone), nil
}

func (r *DraftRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[userID]; !ok {
		return ports.ErrDraftNotFound
	}
	delete(r.drafts, userID)
	return nil
}

func cloneDraft(draft *domain.Draft) *domain.Draft {
	clone := *draft
	clone.Items = append([]domain.DraftItem(nil), draft.Items...)
	return &clone
}
