package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/token-scout/internal/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Token(ctx context.Context, id string) (model.TokenDescriptor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TokenDescriptor), args.Error(1)
}

func (m *mockService) Risk(ctx context.Context, id string) (model.RiskAssessment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.RiskAssessment), args.Error(1)
}

func (m *mockService) ScoreRaw(ctx context.Context, body []byte) model.ScoreResult {
	args := m.Called(ctx, body)
	return args.Get(0).(model.ScoreResult)
}

func (m *mockService) Analyze(ctx context.Context, id string) (model.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Report), args.Error(1)
}
