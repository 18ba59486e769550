package domain

import (
	"context"
	"time"
)

// Profile is the interview-prep record keyed by the identity service's user id.
type Profile struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email"`
	FullName        *string   `json:"full_name"`
	TargetRole      *string   `json:"target_role"`
	ExperienceLevel *string   `json:"experience_level"`
	FocusTopics     []string  `json:"focus_topics"`
	Strengths       *string   `json:"strengths"`
	Challenges      *string   `json:"challenges"`
	Onboarded       bool      `json:"onboarded"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfileRepository is the single-table profile store.
type ProfileRepository interface {
	// GetByID returns ErrProfileNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*Profile, error)
	// FindByID returns (nil, nil) when no row exists.
	FindByID(ctx context.Context, id string) (*Profile, error)
	CreateIfMissing(ctx context.Context, id, email string) error
	UpdateOnboarding(ctx context.Context, id string, form *OnboardingForm) error
	Update(ctx context.Context, id string, form *OnboardingForm) error
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, form *OnboardingForm) (*Profile, error)
}

// StringValue dereferences an optional column.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
