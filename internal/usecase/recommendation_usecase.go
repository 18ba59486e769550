package usecase

import (
	"context"
	"fmt"
	"net/http"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/recommend"
	"interview-prep-backend/pkg/apperror"
	"interview-prep-backend/pkg/llm"
	"interview-prep-backend/pkg/logger"
)

const (
	msgGenerationFailed = "Failed to generate recommendations"
	msgInvalidLLMJSON   = "LLM returned invalid JSON"
)

type recommendationUsecase struct {
	profiles  domain.ProfileRepository
	completer llm.Completer
	guidance  domain.Guidance
}

func NewRecommendationUsecase(profiles domain.ProfileRepository, completer llm.Completer) domain.RecommendationUsecase {
	return &recommendationUsecase{
		profiles:  profiles,
		completer: completer,
		guidance:  domain.DefaultGuidance(),
	}
}

// Generate runs one pass of the pipeline: profile read, prompt, a single
// completion call, JSON recovery and normalization. Nothing is retried.
func (u *recommendationUsecase) Generate(ctx context.Context, userID string, mode domain.RecommendationMode) (*domain.RecommendationResult, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	mode, ok := domain.ParseRecommendationMode(string(mode))
	if !ok {
		return nil, apperror.BadRequest("Unknown recommendation mode")
	}

	profile, err := loadProfile(ctx, u.profiles, userID)
	if err != nil {
		return nil, err
	}

	prompt, err := recommend.BuildPrompt(domain.RecommendationRequest{
		Profile:  profile,
		Guidance: u.guidance,
		Mode:     mode,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	raw, err := u.completer.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		logger.Log.Error("Completion call failed", "user_id", userID, "model", u.completer.Model(), "error", err)
		return nil, apperror.New(http.StatusInternalServerError, msgGenerationFailed,
			fmt.Errorf("%w: %v", domain.ErrUpstreamTransport, err))
	}

	parsed, err := recommend.RecoverJSON(raw)
	if err != nil {
		logger.Log.Warn("Completion was not a JSON object", "user_id", userID, "raw_len", len(raw))
		return nil, apperror.BadGateway(msgInvalidLLMJSON, err)
	}

	result, stats := recommend.Normalize(parsed, mode)
	logger.Log.Info("Recommendations generated",
		"user_id", userID,
		"mode", mode,
		"model", u.completer.Model(),
		"raw_len", len(raw),
		"received", stats.Received,
		"kept", stats.Kept,
		"dropped", stats.Dropped,
	)
	return &result, nil
}
