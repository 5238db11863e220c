package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/playden-lab/backend/config"
	"github.com/playden-lab/backend/pkg/api"
	"github.com/playden-lab/backend/pkg/xcontext"
	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("game not found")

const gameFields = "id,name,slug,summary,cover.url,first_release_date,genres.name,total_rating"

type Endpoint struct {
	apiGenerator api.Generator
	clientID     string
	tokens       TokenProvider
	limiter      *rate.Limiter
}

func New(cfg config.CatalogConfigs, tokens TokenProvider) *Endpoint {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	return &Endpoint{
		apiGenerator: api.NewGenerator(cfg.APIEndpoints...),
		clientID:     cfg.ClientID,
		tokens:       tokens,
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (e *Endpoint) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	body := fmt.Sprintf(`search "%s"; fields %s; limit %d;`, escape(query), gameFields, limit)
	return e.queryGames(ctx, body)
}

func (e *Endpoint) GetGame(ctx context.Context, id int64) (Game, error) {
	games, err := e.queryGames(ctx, fmt.Sprintf("fields %s; where id = %d;", gameFields, id))
	if err != nil {
		return Game{}, err
	}

	if len(games) == 0 {
		return Game{}, ErrNotFound
	}

	return games[0], nil
}

func (e *Endpoint) queryGames(ctx context.Context, query string) ([]Game, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := e.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := e.apiGenerator.New("/games").
		Header("Client-ID", e.clientID).
		Body(api.Text(query)).
		POST(ctx, api.OAuth2("Bearer", token))
	if err != nil {
		return nil, err
	}

	if resp.Code != http.StatusOK {
		xcontext.Logger(ctx).Errorf("Invalid status code of catalog: %d %s", resp.Code, resp.RawBody)
		return nil, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.Array)
	if !ok {
		return nil, errors.New("invalid body format")
	}

	games := make([]Game, 0, len(body))
	for _, item := range body {
		raw := rawGame{}
		if err := mapstructure.Decode(item, &raw); err != nil {
			return nil, err
		}

		if raw.ID == 0 || raw.Name == "" {
			continue
		}

		games = append(games, raw.toGame())
	}

	return games, nil
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}
