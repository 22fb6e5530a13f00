package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hancock/internal/model"
)

type MockEnvelopeService struct {
	mock.Mock
}

func (m *MockEnvelopeService) Save(ctx context.Context, env *model.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

func (m *MockEnvelopeService) Send(ctx context.Context, env *model.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

func (m *MockEnvelopeService) Reload(ctx context.Context, env *model.Envelope) error {
	args := m.Called(ctx, env)
	return args.Error(0)
}

func (m *MockEnvelopeService) Find(ctx context.Context, id string) (*model.Envelope, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Envelope), args.Error(1)
}
