package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playden-lab/backend/internal/common"
	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/api/catalog"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/playden-lab/backend/pkg/xredis"
)

const defaultSearchGameLimit = 10

type GameDomain interface {
	SearchGames(context.Context, *model.SearchGamesRequest) (*model.SearchGamesResponse, error)
	GetGame(context.Context, *model.GetGameRequest) (*model.GetGameResponse, error)
	GetGames(context.Context, *model.GetGamesRequest) (*model.GetGamesResponse, error)
}

type gameDomain struct {
	gameRepo repository.GameRepository
	searcher search.Searcher
	fetcher  *gameFetcher
}

func NewGameDomain(
	gameRepo repository.GameRepository,
	searcher search.Searcher,
	fetcher *gameFetcher,
) *gameDomain {
	return &gameDomain{
		gameRepo: gameRepo,
		searcher: searcher,
		fetcher:  fetcher,
	}
}

// SearchGames asks the catalog and keeps a local copy of every result.
func (d *gameDomain) SearchGames(
	ctx context.Context, req *model.SearchGamesRequest,
) (*model.SearchGamesResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchGameLimit
	}

	if maxLimit := xcontext.Configs(ctx).ApiServer.MaxLimit; limit > maxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", maxLimit)
	}

	catalogGames, err := d.fetcher.catalog.SearchGames(ctx, req.Q, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search games in catalog: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Game catalog is unavailable")
	}
	common.PromCounters[common.CatalogRequestTotal].WithLabelValues("catalog").Inc()

	games := make([]entity.Game, 0, len(catalogGames))
	for _, g := range catalogGames {
		games = append(games, toEntityGame(g))
	}

	if err := d.fetcher.persist(ctx, games...); err != nil {
		return nil, err
	}

	return &model.SearchGamesResponse{Games: model.ConvertGames(games)}, nil
}

func (d *gameDomain) GetGame(ctx context.Context, req *model.GetGameRequest) (*model.GetGameResponse, error) {
	game, err := d.fetcher.get(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	return &model.GetGameResponse{Game: model.ConvertGame(game)}, nil
}

// GetGames lists the local games, the best rated first. A query searches them
// by name, summary and genres.
func (d *gameDomain) GetGames(ctx context.Context, req *model.GetGamesRequest) (*model.GetGamesResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	if req.Q == "" {
		games, err := d.gameRepo.GetList(ctx, req.Offset, req.Limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get game list: %v", err)
			return nil, errorx.Unknown
		}

		return &model.GetGamesResponse{Games: model.ConvertGames(games)}, nil
	}

	ids, err := d.searcher.SearchGame(ctx, req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search games: %v", err)
		return nil, errorx.Unknown
	}

	games, err := d.gameRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get games: %v", err)
		return nil, errorx.Unknown
	}

	gameSet := make(map[int64]entity.Game, len(games))
	for _, g := range games {
		gameSet[g.ID] = g
	}

	ordered := []entity.Game{}
	for _, id := range ids {
		if g, ok := gameSet[id]; ok {
			ordered = append(ordered, g)
		}
	}

	return &model.GetGamesResponse{Games: model.ConvertGames(ordered)}, nil
}

// gameFetcher finds a game locally, then in the redis cache, then in the
// catalog.
type gameFetcher struct {
	gameRepo    repository.GameRepository
	catalog     catalog.IEndpoint
	redisClient xredis.Client
	searcher    search.Searcher
}

func NewGameFetcher(
	gameRepo repository.GameRepository,
	catalogEndpoint catalog.IEndpoint,
	redisClient xredis.Client,
	searcher search.Searcher,
) *gameFetcher {
	return &gameFetcher{
		gameRepo:    gameRepo,
		catalog:     catalogEndpoint,
		redisClient: redisClient,
		searcher:    searcher,
	}
}

func (f *gameFetcher) cacheKey(id int64) string {
	return fmt.Sprintf("cache:game:%d", id)
}

func (f *gameFetcher) get(ctx context.Context, id int64) (*entity.Game, error) {
	game, err := f.gameRepo.GetByID(ctx, id)
	if err == nil {
		common.PromCounters[common.CatalogRequestTotal].WithLabelValues("db").Inc()
		return game, nil
	}

	if !repository.IsNotFound(err) {
		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return nil, errorx.Unknown
	}

	var cached entity.Game
	err = f.redisClient.GetObj(ctx, f.cacheKey(id), &cached)
	if err == nil {
		common.PromCounters[common.CatalogRequestTotal].WithLabelValues("cache").Inc()
		return &cached, nil
	}

	if !xredis.IsNil(err) {
		xcontext.Logger(ctx).Warnf("Cannot get game from cache: %v", err)
	}

	catalogGame, err := f.catalog.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game from catalog: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Game catalog is unavailable")
	}
	common.PromCounters[common.CatalogRequestTotal].WithLabelValues("catalog").Inc()

	fetched := toEntityGame(catalogGame)
	ttl := xcontext.Configs(ctx).Catalog.CacheTTL.Duration
	if err := f.redisClient.SetObj(ctx, f.cacheKey(id), fetched, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache game: %v", err)
	}

	return &fetched, nil
}

// getLocal returns the local row of the game, it is copied from the cache or
// the catalog if needed.
func (f *gameFetcher) getLocal(ctx context.Context, id int64) (*entity.Game, error) {
	game, err := f.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.CreatedAt.IsZero() {
		if err := f.persist(ctx, *game); err != nil {
			return nil, err
		}
	}

	return game, nil
}

func (f *gameFetcher) persist(ctx context.Context, games ...entity.Game) error {
	if err := f.gameRepo.Upsert(ctx, games...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert games: %v", err)
		return errorx.Unknown
	}

	for _, g := range games {
		err := f.searcher.IndexGame(ctx, g.ID, search.GameData{
			Name:    g.Name,
			Summary: g.Summary,
			Genres:  g.Genres,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index game %d: %v", g.ID, err)
		}
	}

	return nil
}

func toEntityGame(g catalog.Game) entity.Game {
	game := entity.Game{
		ID:       g.ID,
		Name:     g.Name,
		Slug:     g.Slug,
		Summary:  g.Summary,
		CoverURL: g.CoverURL,
		Genres:   entity.Array[string](g.Genres),
		Rating:   g.Rating,
	}

	if !g.ReleasedAt.IsZero() {
		game.ReleasedAt = sql.NullTime{Time: g.ReleasedAt, Valid: true}
	}

	return game
}
