package usecase

import (
	"context"

	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/apperror"
)

type dashboardUsecase struct {
	profiles domain.ProfileRepository
}

func NewDashboardUsecase(profiles domain.ProfileRepository) domain.DashboardUsecase {
	return &dashboardUsecase{profiles: profiles}
}

func (u *dashboardUsecase) Get(ctx context.Context, identity *domain.Identity) (*domain.Dashboard, error) {
	if identity == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	profile, err := loadProfile(ctx, u.profiles, identity.UserID)
	if err != nil {
		return nil, err
	}

	email := identity.Email
	if email == "" {
		email = domain.StringValue(profile.Email)
	}
	return &domain.Dashboard{
		User:    domain.DashboardUser{ID: identity.UserID, Email: email},
		Profile: profile,
	}, nil
}
