package testutil

import (
	"context"

	"github.com/playden-lab/backend/internal/domain/search"
)

type MockSearcher struct {
	IndexCommunityFunc  func(ctx context.Context, id int64, data search.CommunityData) error
	DeleteCommunityFunc func(ctx context.Context, id int64) error
	SearchCommunityFunc func(ctx context.Context, query string, offset, limit int) ([]int64, error)
	IndexGameFunc       func(ctx context.Context, id int64, data search.GameData) error
	SearchGameFunc      func(ctx context.Context, query string, offset, limit int) ([]int64, error)
}

func (c *MockSearcher) IndexCommunity(ctx context.Context, id int64, data search.CommunityData) error {
	if c.IndexCommunityFunc != nil {
		return c.IndexCommunityFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearcher) DeleteCommunity(ctx context.Context, id int64) error {
	if c.DeleteCommunityFunc != nil {
		return c.DeleteCommunityFunc(ctx, id)
	}

	return nil
}

func (c *MockSearcher) SearchCommunity(ctx context.Context, query string, offset, limit int) ([]int64, error) {
	if c.SearchCommunityFunc != nil {
		return c.SearchCommunityFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (c *MockSearcher) IndexGame(ctx context.Context, id int64, data search.GameData) error {
	if c.IndexGameFunc != nil {
		return c.IndexGameFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearcher) SearchGame(ctx context.Context, query string, offset, limit int) ([]int64, error) {
	if c.SearchGameFunc != nil {
		return c.SearchGameFunc(ctx, query, offset, limit)
	}

	return nil, nil
}

func (c *MockSearcher) Close() {}
