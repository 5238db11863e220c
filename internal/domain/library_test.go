package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/api/catalog"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// newTestCatalog knows every game whose id is at least 10000.
func newTestCatalog() *testutil.MockCatalogEndpoint {
	return &testutil.MockCatalogEndpoint{
		GetGameFunc: func(_ context.Context, id int64) (catalog.Game, error) {
			if id < 10000 {
				return catalog.Game{}, catalog.ErrNotFound
			}

			return catalog.Game{ID: id, Name: fmt.Sprintf("Game %d", id), Rating: 50}, nil
		},
	}
}

func newTestLibraryDomain(ctx context.Context, trigger achievement.Trigger) *libraryDomain {
	gameRepo := repository.NewGameRepository()
	return NewLibraryDomain(
		repository.NewLibraryItemRepository(),
		relation.NewMachine(relation.LibraryKind),
		NewGameFetcher(gameRepo, newTestCatalog(), &testutil.MockRedisClient{}, search.NewBleveIndex(ctx)),
		trigger,
	)
}

func Test_libraryDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	trigger := &testutil.MockTrigger{}
	libraryDomain := newTestLibraryDomain(ctx, trigger)
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	added, err := libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), added.Games)
	require.Equal(t, "WANT_TO_PLAY", added.Item.Status)
	require.Nil(t, added.Item.Rating)

	// The game is copied from the catalog.
	added, err = libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: 10001, Status: "PLAYING"})
	require.NoError(t, err)
	require.Equal(t, int64(2), added.Games)
	require.Equal(t, "Game 10001", added.Item.Game.Name)

	require.Equal(t, []testutil.TriggerCall{
		{SubjectID: testutil.User1.ID, Kind: entity.LibraryKindName, Count: 1},
		{SubjectID: testutil.User1.ID, Kind: entity.LibraryKindName, Count: 2},
	}, trigger.Calls)

	_, err = libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: testutil.Game1.ID})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	_, err = libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: 42})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	rating := int32(9)
	updated, err := libraryDomain.UpdateItem(ctxUser1, &model.UpdateLibraryItemRequest{
		GameID: testutil.Game1.ID,
		Status: "COMPLETED",
		Rating: &rating,
	})
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", updated.Item.Status)
	require.Equal(t, int32(9), *updated.Item.Rating)

	_, err = libraryDomain.UpdateItem(ctxUser2, &model.UpdateLibraryItemRequest{
		GameID: testutil.Game1.ID,
		Status: "PLAYING",
	})
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	_, err = libraryDomain.Add(ctxUser2, &model.AddToLibraryRequest{GameID: testutil.Game1.ID, Status: "DROPPED"})
	require.NoError(t, err)

	stats, err := libraryDomain.GetGameStats(ctx, &model.GetGameStatsRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.InLibrary)
	require.Equal(t, 9.0, *stats.AverageRating)
	require.Equal(t, int64(1), stats.ByStatus["COMPLETED"])
	require.Equal(t, int64(1), stats.ByStatus["DROPPED"])
	require.Equal(t, int64(0), stats.ByStatus["PLAYING"])

	completed, err := libraryDomain.GetLibrary(ctx, &model.GetLibraryRequest{
		UserID:     testutil.User1.ID,
		Status:     "COMPLETED",
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, completed.Items, 1)
	require.Equal(t, testutil.Game1.ID, completed.Items[0].Game.ID)

	_, err = libraryDomain.Remove(ctxUser1, &model.RemoveFromLibraryRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)

	_, err = libraryDomain.Remove(ctxUser1, &model.RemoveFromLibraryRequest{GameID: testutil.Game1.ID})
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	_, err = libraryDomain.UpdateItem(ctxUser1, &model.UpdateLibraryItemRequest{
		GameID: testutil.Game1.ID,
		Status: "PLAYING",
	})
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	all, err := libraryDomain.GetLibrary(ctx, &model.GetLibraryRequest{
		UserID:     testutil.User1.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, all.Items, 1)

	// Adding the game again starts a fresh entry.
	added, err = libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: testutil.Game1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), added.Games)
	require.Equal(t, "WANT_TO_PLAY", added.Item.Status)
	require.Nil(t, added.Item.Rating)
}

func Test_libraryDomain_UnlockCollector(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	manager := achievement.NewManager(
		repository.NewAchievementRepository(), repository.NewUserAchievementRepository())
	libraryDomain := newTestLibraryDomain(ctx, manager)
	achievementDomain := NewAchievementDomain(manager, repository.NewUserAchievementRepository())
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	for i := int64(0); i < 4; i++ {
		_, err := libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: 20000 + i})
		require.NoError(t, err)
	}

	mine, err := achievementDomain.GetMyAchievements(ctxUser1, &model.GetMyAchievementsRequest{})
	require.NoError(t, err)
	require.Empty(t, mine.Achievements)

	_, err = libraryDomain.Add(ctxUser1, &model.AddToLibraryRequest{GameID: 20004})
	require.NoError(t, err)

	mine, err = achievementDomain.GetMyAchievements(ctxUser1, &model.GetMyAchievementsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Achievements, 1)
	require.Equal(t, "COLLECTOR", mine.Achievements[0].Name)
	require.NotEmpty(t, mine.Achievements[0].UnlockedAt)
}
