package fetcher

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type mockHelius struct {
	mock.Mock
}

func (m *mockHelius) GetAsset(ctx context.Context, mint string) (json.RawMessage, error) {
	args := m.Called(ctx, mint)
	if v := args.Get(0); v != nil {
		return v.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBirdeye struct {
	mock.Mock
}

func (m *mockBirdeye) TokenOverview(ctx context.Context, mint string) (json.RawMessage, error) {
	args := m.Called(ctx, mint)
	if v := args.Get(0); v != nil {
		return v.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}
