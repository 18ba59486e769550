package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/leetcode"
)

type questionUsecase struct {
	catalog domain.QuestionCatalog
}

func NewQuestionUsecase(catalog domain.QuestionCatalog) domain.QuestionUsecase {
	return &questionUsecase{catalog: catalog}
}

// GetQuestion proxies one catalog lookup. An empty slug means two-sum.
func (u *questionUsecase) GetQuestion(ctx context.Context, slug string) (*domain.Question, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = domain.DefaultQuestionSlug
	}

	q, err := u.catalog.Question(ctx, slug)
	if err == nil {
		return q, nil
	}

	var statusErr *leetcode.StatusError
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound):
		return nil, apperror.NotFound("Question not found")
	case errors.As(err, &statusErr):
		return nil, apperror.New(http.StatusInternalServerError, statusErr.Error(), err)
	default:
		return nil, apperror.New(http.StatusInternalServerError, "LeetCode request failed", err)
	}
}
