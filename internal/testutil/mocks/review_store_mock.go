package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anshulm/prepdeck/internal/models"
)

// ReviewStoreMock is a testify mock for repository.ReviewStore.
type ReviewStoreMock struct {
	mock.Mock
}

func (m *ReviewStoreMock) GetState(ctx context.Context, cardID string) (*models.ReviewState, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewState), args.Error(1)
}

func (m *ReviewStoreMock) PutState(ctx context.Context, state models.ReviewState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *ReviewStoreMock) ListStates(ctx context.Context) (map[string]models.ReviewState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.ReviewState), args.Error(1)
}

func (m *ReviewStoreMock) GetStats(ctx context.Context) (models.ReviewStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ReviewStats), args.Error(1)
}

func (m *ReviewStoreMock) PutStats(ctx context.Context, stats models.ReviewStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}
