package usecase

import (
	"context"
	"errors"
	"fmt"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type gateUsecase struct {
	identity domain.IdentityService
	profiles domain.ProfileRepository
}

// NewGateUsecase resolves where an authenticated caller stands between login and the dashboard.
func NewGateUsecase(identity domain.IdentityService, profiles domain.ProfileRepository) domain.GateUsecase {
	return &gateUsecase{identity: identity, profiles: profiles}
}

func (u *gateUsecase) Resolve(ctx context.Context, identity *domain.Identity) (domain.GateState, error) {
	if identity == nil || identity.UserID == "" || identity.AccessToken == "" {
		return domain.GateUnauthenticated, nil
	}

	var (
		user       *domain.AuthUser
		profile    *domain.Profile
		profileErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = u.identity.GetUser(gctx, identity.AccessToken)
		return err
	})
	g.Go(func() error {
		// A failed lookup only downgrades the state, so it must not cancel GetUser.
		profile, profileErr = u.profiles.FindByID(gctx, identity.UserID)
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.GateUnauthenticated, nil
		}
		return "", fmt.Errorf("failed to load identity: %w", err)
	}
	if user == nil {
		return domain.GateUnauthenticated, nil
	}
	if !user.EmailConfirmed() {
		return domain.GateUnverified, nil
	}

	if profileErr != nil {
		logger.Log.Warn("Profile lookup failed during gate resolution", "user_id", identity.UserID, "error", profileErr)
		return domain.GateNeedsOnboarding, nil
	}
	if profile == nil {
		email := user.Email
		if email == "" {
			email = identity.Email
		}
		if err := u.profiles.CreateIfMissing(ctx, identity.UserID, email); err != nil {
			logger.Log.Error("Failed to create profile", "user_id", identity.UserID, "error", err)
		}
		return domain.GateNeedsOnboarding, nil
	}
	if !profile.Onboarded {
		return domain.GateNeedsOnboarding, nil
	}
	return domain.GateReady, nil
}
