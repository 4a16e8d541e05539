package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anshulm/prepdeck/internal/models"
)

// HistoryStoreMock is a testify mock for repository.HistoryStore.
type HistoryStoreMock struct {
	mock.Mock
}

func (m *HistoryStoreMock) Insert(ctx context.Context, entry models.ReviewLog) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *HistoryStoreMock) List(ctx context.Context, filter models.ReviewLogFilter) ([]models.ReviewLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewLog), args.Error(1)
}
