package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hancock/internal/model"
)

type MockCallbackService struct {
	mock.Mock
}

func (m *MockCallbackService) All(ctx context.Context) ([]model.Callback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Callback), args.Error(1)
}

func (m *MockCallbackService) FindByName(ctx context.Context, name string) (*model.Callback, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Callback), args.Error(1)
}

func (m *MockCallbackService) Save(ctx context.Context, cb *model.Callback) error {
	args := m.Called(ctx, cb)
	return args.Error(0)
}
