package domain

import (
	"context"
	"sync"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/api/catalog"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/playden-lab/backend/pkg/xredis"
)

const (
	catalogTokenKey = "catalog:access_token"

	// A token is renewed when it expires within this margin.
	catalogTokenMargin = 60 * time.Second
)

// CatalogTokenProvider keeps the app access token of the catalog. The latest
// token is stored in the database and cached in redis until it nearly
// expires.
type CatalogTokenProvider struct {
	tokenRepo   repository.CatalogTokenRepository
	issuer      catalog.TokenIssuer
	redisClient xredis.Client

	mutex sync.Mutex
	now   func() time.Time
}

func NewCatalogTokenProvider(
	tokenRepo repository.CatalogTokenRepository,
	issuer catalog.TokenIssuer,
	redisClient xredis.Client,
) *CatalogTokenProvider {
	return &CatalogTokenProvider{
		tokenRepo:   tokenRepo,
		issuer:      issuer,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (p *CatalogTokenProvider) AccessToken(ctx context.Context) (string, error) {
	token, err := p.redisClient.Get(ctx, catalogTokenKey)
	if err == nil && token != "" {
		return token, nil
	}

	if err != nil && !xredis.IsNil(err) {
		xcontext.Logger(ctx).Warnf("Cannot get catalog token from cache: %v", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	latest, err := p.tokenRepo.GetLatest(ctx)
	if err != nil && !repository.IsNotFound(err) {
		return "", err
	}

	if latest == nil || !latest.ExpiresAt.After(p.now().Add(catalogTokenMargin)) {
		issued, err := p.issuer.IssueToken(ctx)
		if err != nil {
			return "", err
		}

		latest = &entity.CatalogToken{AccessToken: issued.AccessToken, ExpiresAt: issued.ExpiresAt}
		if err := p.tokenRepo.Create(ctx, latest); err != nil {
			return "", err
		}
	}

	ttl := latest.ExpiresAt.Sub(p.now()) - catalogTokenMargin
	if ttl > 0 {
		if err := p.redisClient.Set(ctx, catalogTokenKey, latest.AccessToken, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache catalog token: %v", err)
		}
	}

	return latest.AccessToken, nil
}
