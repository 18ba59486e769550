// Package memory holds process-local stand-ins for the Redis repositories,
// used when REDIS_URL is not configured.
package memory

import (
	"context"
	"sync"
	"time"

	"interview-prep-backend/internal/domain"
)

type draftEntry struct {
	draft     domain.OnboardingDraft
	expiresAt time.Time
}

type draftRepo struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]draftEntry
}

func NewDraftRepository(ttl time.Duration) domain.OnboardingDraftRepository {
	return &draftRepo{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]draftEntry),
	}
}

func (r *draftRepo) Get(_ context.Context, userID string) (*domain.OnboardingDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[userID]
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && r.now().After(entry.expiresAt) {
		delete(r.entries, userID)
		return nil, nil
	}
	draft := entry.draft
	draft.Form.Focus = append([]string(nil), entry.draft.Form.Focus...)
	return &draft, nil
}

func (r *draftRepo) Save(_ context.Context, userID string, draft *domain.OnboardingDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *draft
	stored.Form.Focus = append([]string(nil), draft.Form.Focus...)
	r.entries[userID] = draftEntry{draft: stored, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *draftRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, userID)
	return nil
}
