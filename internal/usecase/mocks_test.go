package usecase_test

import (
	"context"

	"interview-prep-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) CreateIfMissing(ctx context.Context, id, email string) error {
	return m.Called(ctx, id, email).Error(0)
}

func (m *MockProfileRepo) UpdateOnboarding(ctx context.Context, id string, form *domain.OnboardingForm) error {
	return m.Called(ctx, id, form).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, id string, form *domain.OnboardingForm) error {
	return m.Called(ctx, id, form).Error(0)
}

type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) Get(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingDraft), args.Error(1)
}

func (m *MockDraftRepo) Save(ctx context.Context, userID string, draft *domain.OnboardingDraft) error {
	return m.Called(ctx, userID, draft).Error(0)
}

func (m *MockDraftRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) SignUp(ctx context.Context, email, password, redirectTo string) (*domain.AuthUser, error) {
	args := m.Called(ctx, email, password, redirectTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

func (m *MockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockIdentity) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockIdentity) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockIdentity) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

func (m *MockIdentity) ResendSignup(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) Model() string { return "mock-model" }

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Question(ctx context.Context, slug string) (*domain.Question, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	args := m.Called(ctx, email, ip, userAgent, requestID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockGuard) ClearAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Resolve(ctx context.Context, identity *domain.Identity) (domain.GateState, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(domain.GateState), args.Error(1)
}

func strPtr(s string) *string { return &s }
