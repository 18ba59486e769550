package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const msgProfileNotFound = "Profile not found"

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{repo: repo, validate: validate}
}

// GetProfile fails closed: a repository error is reported as a missing profile.
func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return loadProfile(ctx, u.repo, userID)
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, form *domain.OnboardingForm) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	cleanForm(form)
	if err := u.validate.Struct(form); err != nil {
		return nil, validationError(err)
	}

	if err := u.repo.Update(ctx, userID, form); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, apperror.NotFound(msgProfileNotFound)
		}
		return nil, apperror.Internal(err)
	}
	return loadProfile(ctx, u.repo, userID)
}

func loadProfile(ctx context.Context, repo domain.ProfileRepository, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	profile, err := repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			logger.Log.Error("Profile lookup failed", "user_id", userID, "error", err)
		}
		return nil, apperror.New(http.StatusNotFound, msgProfileNotFound, domain.ErrProfileNotFound)
	}
	return profile, nil
}

// cleanForm trims free text and drops blank or repeated focus topics.
func cleanForm(form *domain.OnboardingForm) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Role = strings.TrimSpace(form.Role)
	form.Experience = strings.TrimSpace(form.Experience)
	form.Strengths = strings.TrimSpace(form.Strengths)
	form.Challenges = strings.TrimSpace(form.Challenges)

	seen := make(map[string]struct{}, len(form.Focus))
	focus := make([]string, 0, len(form.Focus))
	for _, topic := range form.Focus {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		focus = append(focus, topic)
	}
	form.Focus = focus
}
