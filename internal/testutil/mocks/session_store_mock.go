package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anshulm/prepdeck/internal/models"
)

// SessionStoreMock is a testify mock for repository.SessionStore.
type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Get(ctx context.Context) (*models.SessionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionRecord), args.Error(1)
}

func (m *SessionStoreMock) Put(ctx context.Context, record models.SessionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *SessionStoreMock) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ProgressStoreMock is a testify mock for repository.ProgressStore.
type ProgressStoreMock struct {
	mock.Mock
}

func (m *ProgressStoreMock) Get(ctx context.Context, problemID string) (*models.ProblemProgress, error) {
	args := m.Called(ctx, problemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProblemProgress), args.Error(1)
}

func (m *ProgressStoreMock) Upsert(ctx context.Context, progress models.ProblemProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *ProgressStoreMock) List(ctx context.Context) ([]models.ProblemProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProblemProgress), args.Error(1)
}
