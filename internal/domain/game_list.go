package domain

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type GameListDomain interface {
	Create(context.Context, *model.CreateGameListRequest) (*model.CreateGameListResponse, error)
	GetLists(context.Context, *model.GetGameListsRequest) (*model.GetGameListsResponse, error)
	Get(context.Context, *model.GetGameListRequest) (*model.GetGameListResponse, error)
	Update(context.Context, *model.UpdateGameListRequest) (*model.UpdateGameListResponse, error)
	Delete(context.Context, *model.DeleteGameListRequest) (*model.DeleteGameListResponse, error)
	AddGame(context.Context, *model.AddGameToListRequest) (*model.AddGameToListResponse, error)
	RemoveGame(context.Context, *model.RemoveGameFromListRequest) (*model.RemoveGameFromListResponse, error)
}

type gameListDomain struct {
	gameListRepo repository.GameListRepository
	fetcher      *gameFetcher
}

func NewGameListDomain(gameListRepo repository.GameListRepository, fetcher *gameFetcher) *gameListDomain {
	return &gameListDomain{gameListRepo: gameListRepo, fetcher: fetcher}
}

func (d *gameListDomain) Create(
	ctx context.Context, req *model.CreateGameListRequest,
) (*model.CreateGameListResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	list := &entity.GameList{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := d.gameListRepo.Create(ctx, list); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create game list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGameListResponse{List: model.ConvertGameList(list, 0)}, nil
}

func (d *gameListDomain) GetLists(
	ctx context.Context, req *model.GetGameListsRequest,
) (*model.GetGameListsResponse, error) {
	lists, err := d.gameListRepo.GetListByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get game lists: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]int64, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}

	counts, err := d.gameListRepo.CountItems(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count games of lists: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.GameList{}
	for i := range lists {
		result = append(result, model.ConvertGameList(&lists[i], counts[lists[i].ID]))
	}

	return &model.GetGameListsResponse{Lists: result}, nil
}

func (d *gameListDomain) Get(ctx context.Context, req *model.GetGameListRequest) (*model.GetGameListResponse, error) {
	list, err := d.getList(ctx, req.ListID)
	if err != nil {
		return nil, err
	}

	items, err := d.gameListRepo.GetItems(ctx, list.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get games of list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.GameListItem{}
	for i := range items {
		result = append(result, model.GameListItem{
			Game:     model.ConvertGame(&items[i].Game),
			Position: items[i].Position,
		})
	}

	return &model.GetGameListResponse{
		List:  model.ConvertGameList(list, int64(len(items))),
		Items: result,
	}, nil
}

func (d *gameListDomain) Update(
	ctx context.Context, req *model.UpdateGameListRequest,
) (*model.UpdateGameListResponse, error) {
	list, err := d.getOwnedList(ctx, req.ListID)
	if err != nil {
		return nil, err
	}

	update := entity.GameList{Name: req.Name, Description: req.Description}
	if err := d.gameListRepo.UpdateByID(ctx, list.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update game list: %v", err)
		return nil, errorx.Unknown
	}

	list.Name = req.Name
	list.Description = req.Description

	counts, err := d.gameListRepo.CountItems(ctx, []int64{list.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count games of list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateGameListResponse{List: model.ConvertGameList(list, counts[list.ID])}, nil
}

func (d *gameListDomain) Delete(
	ctx context.Context, req *model.DeleteGameListRequest,
) (*model.DeleteGameListResponse, error) {
	list, err := d.getOwnedList(ctx, req.ListID)
	if err != nil {
		return nil, err
	}

	if err := d.gameListRepo.DeleteByID(ctx, list.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete game list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteGameListResponse{}, nil
}

func (d *gameListDomain) AddGame(
	ctx context.Context, req *model.AddGameToListRequest,
) (*model.AddGameToListResponse, error) {
	list, err := d.getOwnedList(ctx, req.ListID)
	if err != nil {
		return nil, err
	}

	game, err := d.fetcher.getLocal(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	item := &entity.GameListItem{ListID: list.ID, GameID: game.ID}
	if err := d.gameListRepo.AddItem(ctx, item); err != nil {
		if repository.IsDuplicated(err) {
			return nil, errorx.New(errorx.AlreadyExists, "The game is already in the list")
		}

		xcontext.Logger(ctx).Errorf("Cannot add game to list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddGameToListResponse{
		Item: model.GameListItem{Game: model.ConvertGame(game), Position: item.Position},
	}, nil
}

func (d *gameListDomain) RemoveGame(
	ctx context.Context, req *model.RemoveGameFromListRequest,
) (*model.RemoveGameFromListResponse, error) {
	list, err := d.getOwnedList(ctx, req.ListID)
	if err != nil {
		return nil, err
	}

	if err := d.gameListRepo.RemoveItem(ctx, list.ID, req.GameID); err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "The game is not in the list")
		}

		xcontext.Logger(ctx).Errorf("Cannot remove game from list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveGameFromListResponse{}, nil
}

func (d *gameListDomain) getList(ctx context.Context, listID int64) (*entity.GameList, error) {
	list, err := d.gameListRepo.GetByID(ctx, listID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found game list")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game list: %v", err)
		return nil, errorx.Unknown
	}

	return list, nil
}

func (d *gameListDomain) getOwnedList(ctx context.Context, listID int64) (*entity.GameList, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	list, err := d.getList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if list.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can change the list")
	}

	return list, nil
}
