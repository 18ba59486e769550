package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"interview-prep-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "onboarding:draft:"

// DefaultDraftTTL keeps an abandoned wizard around for 30 days.
const DefaultDraftTTL = 30 * 24 * time.Hour

type draftRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewDraftRepository stores onboarding drafts as JSON strings that expire after ttl.
func NewDraftRepository(client *goredis.Client, ttl time.Duration) domain.OnboardingDraftRepository {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &draftRepo{client: client, ttl: ttl}
}

func draftKey(userID string) string {
	return draftKeyPrefix + userID
}

func (r *draftRepo) Get(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	data, err := r.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onboarding draft: %w", err)
	}

	var draft domain.OnboardingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		// A draft we cannot read is as good as none.
		_ = r.client.Del(ctx, draftKey(userID)).Err()
		return nil, nil
	}
	return &draft, nil
}

func (r *draftRepo) Save(ctx context.Context, userID string, draft *domain.OnboardingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode onboarding draft: %w", err)
	}
	if err := r.client.Set(ctx, draftKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save onboarding draft: %w", err)
	}
	return nil
}

func (r *draftRepo) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete onboarding draft: %w", err)
	}
	return nil
}
