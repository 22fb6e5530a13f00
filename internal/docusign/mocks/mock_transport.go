package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"hancock/internal/docusign"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) PostJSON(ctx context.Context, path string, body []byte, headers http.Header) (*docusign.Response, error) {
	args := m.Called(ctx, path, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docusign.Response), args.Error(1)
}

func (m *MockTransport) PostMultipart(ctx context.Context, path string, body []byte, headers http.Header) (*docusign.Response, error) {
	args := m.Called(ctx, path, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docusign.Response), args.Error(1)
}

func (m *MockTransport) Get(ctx context.Context, path string) (*docusign.Response, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docusign.Response), args.Error(1)
}

func (m *MockTransport) Put(ctx context.Context, path string, body []byte, headers http.Header) (*docusign.Response, error) {
	args := m.Called(ctx, path, body, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docusign.Response), args.Error(1)
}
