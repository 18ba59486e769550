package postgres

import (
	"context"
	"errors"
	"fmt"

	"interview-prep-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, email, full_name, target_role, experience_level, focus_topics,
	strengths, challenges, onboarded, created_at, updated_at`

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *profileRepo) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var p domain.Profile
	var topics []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.TargetRole, &p.ExperienceLevel, pq.Array(&topics),
		&p.Strengths, &p.Challenges, &p.Onboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if topics == nil {
		topics = []string{}
	}
	p.FocusTopics = topics
	return &p, nil
}

func (r *profileRepo) CreateIfMissing(ctx context.Context, id, email string) error {
	query := `
		INSERT INTO profiles (id, email, onboarded)
		VALUES ($1, NULLIF($2, ''), false)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, id, email); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// UpdateOnboarding stores the completed wizard and marks the profile onboarded.
func (r *profileRepo) UpdateOnboarding(ctx context.Context, id string, form *domain.OnboardingForm) error {
	return r.update(ctx, id, form, true)
}

// Update edits the profile fields without touching the onboarded flag.
func (r *profileRepo) Update(ctx context.Context, id string, form *domain.OnboardingForm) error {
	return r.update(ctx, id, form, false)
}

func (r *profileRepo) update(ctx context.Context, id string, form *domain.OnboardingForm, markOnboarded bool) error {
	query := `
		UPDATE profiles SET
			full_name = $2,
			target_role = $3,
			experience_level = $4,
			focus_topics = $5,
			strengths = $6,
			challenges = $7,
			onboarded = onboarded OR $8,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		id, form.FullName, form.Role, form.Experience, pq.Array(form.Focus),
		form.Strengths, form.Challenges, markOnboarded,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
