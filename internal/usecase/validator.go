package usecase

import (
	"net/http"
	"strings"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the generic custom tags plus the
// onboarding catalog tags known_role, known_experience and known_topic.
func NewValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	validation.RegisterOneOf(v, "known_role", domain.Roles)
	validation.RegisterOneOf(v, "known_experience", domain.ExperienceLevels)
	validation.RegisterOneOf(v, "known_topic", domain.FocusTopics())
	return v
}

func validationError(err error) *apperror.AppError {
	return apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err)
}
