package domain

import "context"

type DashboardUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Dashboard struct {
	User    DashboardUser `json:"user"`
	Profile *Profile      `json:"profile"`
}

type DashboardUsecase interface {
	Get(ctx context.Context, identity *Identity) (*Dashboard, error)
}
