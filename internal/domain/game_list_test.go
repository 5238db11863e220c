package domain

import (
	"testing"

	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_gameListDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	gameRepo := repository.NewGameRepository()
	gameListDomain := NewGameListDomain(
		repository.NewGameListRepository(),
		NewGameFetcher(gameRepo, newTestCatalog(), &testutil.MockRedisClient{}, search.NewBleveIndex(ctx)),
	)
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	created, err := gameListDomain.Create(ctxUser1, &model.CreateGameListRequest{Name: "Open worlds"})
	require.NoError(t, err)
	listID := created.List.ID

	first, err := gameListDomain.AddGame(ctxUser1, &model.AddGameToListRequest{ListID: listID, GameID: testutil.Game2.ID})
	require.NoError(t, err)
	require.Equal(t, 1, first.Item.Position)

	second, err := gameListDomain.AddGame(ctxUser1, &model.AddGameToListRequest{ListID: listID, GameID: 30001})
	require.NoError(t, err)
	require.Equal(t, 2, second.Item.Position)

	_, err = gameListDomain.AddGame(ctxUser1, &model.AddGameToListRequest{ListID: listID, GameID: testutil.Game2.ID})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	_, err = gameListDomain.AddGame(ctxUser2, &model.AddGameToListRequest{ListID: listID, GameID: testutil.Game1.ID})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	got, err := gameListDomain.Get(ctx, &model.GetGameListRequest{ListID: listID})
	require.NoError(t, err)
	require.Equal(t, int64(2), got.List.Games)
	require.Equal(t, testutil.Game2.ID, got.Items[0].Game.ID)
	require.Equal(t, int64(30001), got.Items[1].Game.ID)

	updated, err := gameListDomain.Update(ctxUser1, &model.UpdateGameListRequest{
		ListID: listID,
		Name:   "Best open worlds",
	})
	require.NoError(t, err)
	require.Equal(t, "Best open worlds", updated.List.Name)
	require.Equal(t, int64(2), updated.List.Games)

	_, err = gameListDomain.RemoveGame(ctxUser1, &model.RemoveGameFromListRequest{ListID: listID, GameID: testutil.Game2.ID})
	require.NoError(t, err)

	_, err = gameListDomain.RemoveGame(ctxUser1, &model.RemoveGameFromListRequest{ListID: listID, GameID: testutil.Game2.ID})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	// A removed game can be added again at the end of the list.
	again, err := gameListDomain.AddGame(ctxUser1, &model.AddGameToListRequest{ListID: listID, GameID: testutil.Game2.ID})
	require.NoError(t, err)
	require.Equal(t, 3, again.Item.Position)

	lists, err := gameListDomain.GetLists(ctx, &model.GetGameListsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, lists.Lists, 1)
	require.Equal(t, int64(2), lists.Lists[0].Games)

	_, err = gameListDomain.Delete(ctxUser2, &model.DeleteGameListRequest{ListID: listID})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	_, err = gameListDomain.Delete(ctxUser1, &model.DeleteGameListRequest{ListID: listID})
	require.NoError(t, err)

	_, err = gameListDomain.Get(ctx, &model.GetGameListRequest{ListID: listID})
	require.True(t, errorx.IsCode(err, errorx.NotFound))
}
