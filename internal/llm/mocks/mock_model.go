package mocks

import (
	"context"

	"studybuddy/internal/llm"

	"github.com/stretchr/testify/mock"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	if f, ok := args.Get(0).(func(context.Context, llm.Request) string); ok {
		return f(ctx, req), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
