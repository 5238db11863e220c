package catalog

import "context"

type IEndpoint interface {
	SearchGames(ctx context.Context, query string, limit int) ([]Game, error)
	GetGame(ctx context.Context, id int64) (Game, error)
}

// TokenProvider returns a valid app access token of the catalog.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenIssuer requests a brand new app access token.
type TokenIssuer interface {
	IssueToken(ctx context.Context) (Token, error)
}
