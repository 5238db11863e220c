package testutil

import (
	"context"

	"github.com/playden-lab/backend/pkg/api/catalog"
)

type MockCatalogEndpoint struct {
	SearchGamesFunc func(ctx context.Context, query string, limit int) ([]catalog.Game, error)
	GetGameFunc     func(ctx context.Context, id int64) (catalog.Game, error)
}

func (e *MockCatalogEndpoint) SearchGames(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	if e.SearchGamesFunc != nil {
		return e.SearchGamesFunc(ctx, query, limit)
	}

	return nil, nil
}

func (e *MockCatalogEndpoint) GetGame(ctx context.Context, id int64) (catalog.Game, error) {
	if e.GetGameFunc != nil {
		return e.GetGameFunc(ctx, id)
	}

	return catalog.Game{}, catalog.ErrNotFound
}
