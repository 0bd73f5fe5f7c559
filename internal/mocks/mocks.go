// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"gifcrop/internal/types"
	"gifcrop/pkg/renderer"

	"github.com/stretchr/testify/mock"
)

// MockSubmitter is a mock implementation of renderer.Submitter
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, endpoint string, req renderer.Request) (*renderer.Result, error) {
	args := m.Called(ctx, endpoint, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*renderer.Result), args.Error(1)
}

// MockDispatcher is a mock implementation of service.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(payload types.RenderPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}
