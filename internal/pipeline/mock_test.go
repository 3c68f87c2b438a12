package pipeline

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/token-scout/internal/fetcher"
	"github.com/sells-group/token-scout/internal/model"
)

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, mint string) fetcher.Aggregate {
	args := m.Called(ctx, mint)
	return args.Get(0).(fetcher.Aggregate)
}

// --- RugCheck Mock ---

type mockRugCheck struct {
	mock.Mock
}

func (m *mockRugCheck) Scan(ctx context.Context, mint string) (json.RawMessage, error) {
	args := m.Called(ctx, mint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// --- Delegate Mock ---

type mockDelegate struct {
	mock.Mock
}

func (m *mockDelegate) Score(ctx context.Context, req model.ScoreRequest) (model.ScoreResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.ScoreResult), args.Error(1)
}

// --- Scorer Stub ---

type panicScorer struct{}

func (panicScorer) Score(model.ScoreRequest) model.ScoreResult {
	panic("scorer exploded")
}
