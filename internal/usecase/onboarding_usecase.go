package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/logger"
	"interview-prep-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	MsgStepBasics     = "Fill name, role, and experience."
	MsgStepFocus      = "Pick at least one focus area."
	MsgStepStrengths  = "Add 2–3 sentences about your strengths (≥ ~40 chars)."
	MsgStepChallenges = "Add 2–3 sentences about your challenges (≥ ~40 chars)."
)

type onboardingUsecase struct {
	profiles domain.ProfileRepository
	drafts   domain.OnboardingDraftRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewOnboardingUsecase(profiles domain.ProfileRepository, drafts domain.OnboardingDraftRepository, validate *validator.Validate) domain.OnboardingUsecase {
	return &onboardingUsecase{
		profiles: profiles,
		drafts:   drafts,
		validate: validate,
		now:      time.Now,
	}
}

// ValidateOnboardingStep returns the problems that keep the wizard from leaving step.
func ValidateOnboardingStep(form domain.OnboardingForm, step domain.OnboardingStep) []string {
	var errs []string
	switch step {
	case domain.StepBasics:
		if strings.TrimSpace(form.FullName) == "" || form.Role == "" || form.Experience == "" {
			errs = append(errs, MsgStepBasics)
		}
	case domain.StepFocus:
		if len(form.Focus) == 0 {
			errs = append(errs, MsgStepFocus)
		}
	case domain.StepNarrative:
		if !validation.IsProse(form.Strengths) {
			errs = append(errs, MsgStepStrengths)
		}
		if !validation.IsProse(form.Challenges) {
			errs = append(errs, MsgStepChallenges)
		}
	}
	return errs
}

func clampStep(step domain.OnboardingStep) domain.OnboardingStep {
	if step < domain.StepBasics {
		return domain.StepBasics
	}
	if step > domain.StepReview {
		return domain.StepReview
	}
	return step
}

// ============================================================================
// Catalog & Status
// ============================================================================

func (u *onboardingUsecase) Options() domain.OnboardingOptions {
	return domain.OnboardingOptions{
		Roles:            domain.Roles,
		ExperienceLevels: domain.ExperienceLevels,
		FocusGroups:      domain.FocusGroups,
	}
}

func (u *onboardingUsecase) GetStatus(ctx context.Context, userID string) (*domain.OnboardingStatus, error) {
	profile, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.OnboardingStatus{Onboarded: profile != nil && profile.Onboarded}, nil
}

// ============================================================================
// Draft
// ============================================================================

func (u *onboardingUsecase) GetDraft(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	draft, err := u.drafts.Get(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if draft == nil {
		draft = &domain.OnboardingDraft{Step: domain.StepBasics}
	}
	if draft.Form.Focus == nil {
		draft.Form.Focus = []string{}
	}
	return draft, nil
}

func (u *onboardingUsecase) SaveDraft(ctx context.Context, userID string, draft *domain.OnboardingDraft) (*domain.OnboardingDraft, error) {
	draft.Step = clampStep(draft.Step)
	if draft.Form.Focus == nil {
		draft.Form.Focus = []string{}
	}
	draft.UpdatedAt = u.now().UTC()
	if err := u.drafts.Save(ctx, userID, draft); err != nil {
		return nil, apperror.Internal(err)
	}
	return draft, nil
}

func (u *onboardingUsecase) DiscardDraft(ctx context.Context, userID string) error {
	if err := u.drafts.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Next validates the current step and, if it passes, advances and saves.
func (u *onboardingUsecase) Next(ctx context.Context, userID string, draft *domain.OnboardingDraft) (*domain.OnboardingDraft, error) {
	draft.Step = clampStep(draft.Step)
	if errs := ValidateOnboardingStep(draft.Form, draft.Step); len(errs) > 0 {
		return nil, apperror.BadRequest(strings.Join(errs, " "))
	}
	draft.Step = clampStep(draft.Step + 1)
	return u.SaveDraft(ctx, userID, draft)
}

func (u *onboardingUsecase) Back(ctx context.Context, userID string, draft *domain.OnboardingDraft) (*domain.OnboardingDraft, error) {
	draft.Step = clampStep(draft.Step - 1)
	return u.SaveDraft(ctx, userID, draft)
}

// ============================================================================
// Complete Onboarding
// ============================================================================

func (u *onboardingUsecase) Complete(ctx context.Context, userID string, form *domain.OnboardingForm) error {
	if userID == "" {
		return apperror.Unauthorized("Not authenticated")
	}

	profile, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if profile != nil && profile.Onboarded {
		return apperror.New(http.StatusConflict, "Onboarding already completed", domain.ErrAlreadyOnboarded)
	}

	cleanForm(form)
	var errs []string
	for step := domain.StepBasics; step < domain.StepReview; step++ {
		errs = append(errs, ValidateOnboardingStep(*form, step)...)
	}
	if len(errs) > 0 {
		return apperror.BadRequest(strings.Join(errs, " "))
	}
	if err := u.validate.Struct(form); err != nil {
		return validationError(err)
	}

	if profile == nil {
		if err := u.profiles.CreateIfMissing(ctx, userID, ""); err != nil {
			return apperror.Internal(err)
		}
	}
	if err := u.profiles.UpdateOnboarding(ctx, userID, form); err != nil {
		return apperror.Internal(err)
	}

	if err := u.drafts.Delete(ctx, userID); err != nil {
		logger.Log.Warn("Failed to clear onboarding draft", "user_id", userID, "error", err)
	}
	logger.Log.Info("Onboarding completed", "user_id", userID, "focus_count", len(form.Focus))
	return nil
}
