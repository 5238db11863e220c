package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/playden-lab/backend/config"
	"github.com/playden-lab/backend/pkg/api"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type tokenIssuer struct {
	apiGenerator api.Generator
	clientID     string
	clientSecret string
}

// NewTokenIssuer requests client credentials tokens from the oauth2 server of
// the catalog.
func NewTokenIssuer(cfg config.CatalogConfigs) *tokenIssuer {
	return &tokenIssuer{
		apiGenerator: api.NewGenerator(cfg.TokenEndpoints...),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

func (i *tokenIssuer) IssueToken(ctx context.Context) (Token, error) {
	resp, err := i.apiGenerator.New("/oauth2/token").
		Query(api.Parameter{
			"client_id":     i.clientID,
			"client_secret": i.clientSecret,
			"grant_type":    "client_credentials",
		}).
		POST(ctx)
	if err != nil {
		return Token{}, err
	}

	if resp.Code != http.StatusOK {
		xcontext.Logger(ctx).Errorf("Invalid status code of token server: %d %s", resp.Code, resp.RawBody)
		return Token{}, fmt.Errorf("invalid status code %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Token{}, errors.New("invalid body format")
	}

	raw := rawToken{}
	if err := mapstructure.Decode(map[string]any(body), &raw); err != nil {
		return Token{}, err
	}

	if raw.AccessToken == "" {
		return Token{}, errors.New("empty access token")
	}

	return Token{
		AccessToken: raw.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(raw.ExpiresIn) * time.Second),
	}, nil
}
