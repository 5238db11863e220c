package domain

import (
	"context"
	"database/sql"

	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/enum"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type LibraryDomain interface {
	Add(context.Context, *model.AddToLibraryRequest) (*model.AddToLibraryResponse, error)
	Remove(context.Context, *model.RemoveFromLibraryRequest) (*model.RemoveFromLibraryResponse, error)
	UpdateItem(context.Context, *model.UpdateLibraryItemRequest) (*model.UpdateLibraryItemResponse, error)
	GetLibrary(context.Context, *model.GetLibraryRequest) (*model.GetLibraryResponse, error)
	GetGameStats(context.Context, *model.GetGameStatsRequest) (*model.GetGameStatsResponse, error)
}

type libraryDomain struct {
	libraryItemRepo repository.LibraryItemRepository
	libraryMachine  relation.Machine
	fetcher         *gameFetcher
	trigger         achievement.Trigger
}

func NewLibraryDomain(
	libraryItemRepo repository.LibraryItemRepository,
	libraryMachine relation.Machine,
	fetcher *gameFetcher,
	trigger achievement.Trigger,
) *libraryDomain {
	return &libraryDomain{
		libraryItemRepo: libraryItemRepo,
		libraryMachine:  libraryMachine,
		fetcher:         fetcher,
		trigger:         trigger,
	}
}

// Add puts the game in the library of the user with the given status, the
// game is copied from the catalog if it is not known yet.
func (d *libraryDomain) Add(ctx context.Context, req *model.AddToLibraryRequest) (*model.AddToLibraryResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	status := entity.LibraryWantToPlay
	if req.Status != "" {
		status, err = enum.ToEnum[entity.LibraryStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	if _, err := d.fetcher.getLocal(ctx, req.GameID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	count, err := d.libraryMachine.Establish(ctx, userID, req.GameID)
	if err != nil {
		return nil, err
	}

	if err := d.libraryItemRepo.Update(ctx, userID, req.GameID, status, sql.NullInt32{}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set status of library item: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit library item: %v", err)
		return nil, errorx.Unknown
	}

	achievement.Notify(ctx, d.trigger, userID, d.libraryMachine.Kind().Name, count)

	item, err := d.getItem(ctx, userID, req.GameID)
	if err != nil {
		return nil, err
	}

	return &model.AddToLibraryResponse{Item: model.ConvertLibraryItem(item), Games: count}, nil
}

func (d *libraryDomain) Remove(
	ctx context.Context, req *model.RemoveFromLibraryRequest,
) (*model.RemoveFromLibraryResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.libraryMachine.Withdraw(ctx, userID, req.GameID); err != nil {
		return nil, err
	}

	return &model.RemoveFromLibraryResponse{}, nil
}

func (d *libraryDomain) UpdateItem(
	ctx context.Context, req *model.UpdateLibraryItemRequest,
) (*model.UpdateLibraryItemResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	status, err := enum.ToEnum[entity.LibraryStatus](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	rating := sql.NullInt32{}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 10 {
			return nil, errorx.New(errorx.BadRequest, "Rating must be between 1 and 10")
		}

		rating = sql.NullInt32{Int32: *req.Rating, Valid: true}
	}

	if err := d.libraryItemRepo.Update(ctx, userID, req.GameID, status, rating); err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotActive, "The game is not in your library")
		}

		xcontext.Logger(ctx).Errorf("Cannot update library item: %v", err)
		return nil, errorx.Unknown
	}

	item, err := d.getItem(ctx, userID, req.GameID)
	if err != nil {
		return nil, err
	}

	return &model.UpdateLibraryItemResponse{Item: model.ConvertLibraryItem(item)}, nil
}

func (d *libraryDomain) GetLibrary(
	ctx context.Context, req *model.GetLibraryRequest,
) (*model.GetLibraryResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	filter := repository.GetListLibraryItemFilter{
		UserID: req.UserID,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.LibraryStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	items, err := d.libraryItemRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get library: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.LibraryItem{}
	for i := range items {
		result = append(result, model.ConvertLibraryItem(&items[i]))
	}

	return &model.GetLibraryResponse{Items: result}, nil
}

func (d *libraryDomain) GetGameStats(
	ctx context.Context, req *model.GetGameStatsRequest,
) (*model.GetGameStatsResponse, error) {
	stats, err := d.libraryItemRepo.Stats(ctx, req.GameID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get game stats: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetGameStatsResponse{
		InLibrary: stats.InLibrary,
		ByStatus:  map[string]int64{},
	}

	for _, status := range enum.Values[entity.LibraryStatus]() {
		resp.ByStatus[string(status)] = stats.ByStatus[status]
	}

	if stats.AverageRating.Valid {
		resp.AverageRating = &stats.AverageRating.Float64
	}

	return resp, nil
}

func (d *libraryDomain) getItem(ctx context.Context, userID, gameID int64) (*entity.LibraryItem, error) {
	item, err := d.libraryItemRepo.Get(ctx, userID, gameID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotActive, "The game is not in your library")
		}

		xcontext.Logger(ctx).Errorf("Cannot get library item: %v", err)
		return nil, errorx.Unknown
	}

	return item, nil
}
