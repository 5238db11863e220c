package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userRepository_cache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	cached := map[string]bool{}
	deleted := []string{}
	redisClient := &testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			cached[key] = true
			return nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	userRepo := NewUserRepository(redisClient)
	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Username, user.Username)
	require.True(t, cached["cache:user:1001"])

	require.NoError(t, userRepo.UpdateByID(ctx, testutil.User1.ID, &entity.User{Bio: "speedrunner"}))
	require.Equal(t, []string{"cache:user:1001"}, deleted)

	_, err = userRepo.GetByID(ctx, testutil.DeactivatedUser.ID)
	require.True(t, IsNotFound(err))
}

func Test_userRepository_Reactivate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userRepo := NewUserRepository(&testutil.MockRedisClient{})

	_, err := userRepo.GetByIdentifier(ctx, testutil.DeactivatedUser.Email)
	require.True(t, IsNotFound(err))

	user, err := userRepo.GetDeactivatedByIdentifier(ctx, testutil.DeactivatedUser.Username)
	require.NoError(t, err)

	ok, err := userRepo.Reactivate(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = userRepo.Reactivate(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, ok)

	user, err = userRepo.GetByIdentifier(ctx, testutil.DeactivatedUser.Email)
	require.NoError(t, err)
	require.Equal(t, testutil.DeactivatedUser.ID, user.ID)

	err = userRepo.Create(ctx, &entity.User{Username: testutil.User1.Username, Email: "other@playden.test"})
	require.True(t, IsDuplicated(err))
}

func Test_commentRepository_GetList_MostLiked(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentRepo := NewCommentRepository()
	second := &entity.Comment{PostID: testutil.Post1.ID, AuthorID: testutil.User3.ID, Content: "second"}
	require.NoError(t, commentRepo.Create(ctx, second))

	reply := &entity.Comment{
		PostID:   testutil.Post1.ID,
		AuthorID: testutil.User1.ID,
		ParentID: sql.NullInt64{Int64: testutil.Comment1.ID, Valid: true},
		Content:  "thanks",
	}
	require.NoError(t, commentRepo.Create(ctx, reply))

	for _, userID := range []int64{testutil.User1.ID, testutil.User2.ID} {
		require.NoError(t, xcontext.DB(ctx).Create(&entity.Reaction{
			UserID:     userID,
			EntityID:   testutil.Comment1.ID,
			EntityType: entity.ReactionComment,
			IsLike:     true,
		}).Error)
	}

	comments, err := commentRepo.GetList(ctx, GetListCommentFilter{
		PostID:  testutil.Post1.ID,
		OrderBy: CommentMostLiked,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, testutil.Comment1.ID, comments[0].ID)
	require.Equal(t, testutil.User2.Username, comments[0].Author.Username)
	require.Equal(t, second.ID, comments[1].ID)

	comments, err = commentRepo.GetList(ctx, GetListCommentFilter{
		PostID:  testutil.Post1.ID,
		OrderBy: CommentNewest,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Equal(t, second.ID, comments[0].ID)

	replies, err := commentRepo.CountReplies(ctx, []int64{testutil.Comment1.ID, second.ID})
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{testutil.Comment1.ID: 1}, replies)

	live, err := commentRepo.IsLive(ctx, testutil.Comment1.ID)
	require.NoError(t, err)
	require.True(t, live)

	require.NoError(t, NewPostRepository().DeleteByID(ctx, testutil.Post1.ID))
	live, err = commentRepo.IsLive(ctx, testutil.Comment1.ID)
	require.NoError(t, err)
	require.False(t, live)
}

func Test_libraryItemRepository_Stats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	items := []entity.LibraryItem{
		{UserID: testutil.User1.ID, Status: entity.LibraryPlaying, Rating: sql.NullInt32{Int32: 8, Valid: true}},
		{UserID: testutil.User2.ID, Status: entity.LibraryPlaying, Rating: sql.NullInt32{Int32: 10, Valid: true}},
		{UserID: testutil.User3.ID, Status: entity.LibraryWantToPlay},
	}
	for _, item := range items {
		item := item
		item.GameID = testutil.Game1.ID
		require.NoError(t, xcontext.DB(ctx).Create(&item).Error)
	}

	libraryRepo := NewLibraryItemRepository()
	stats, err := libraryRepo.Stats(ctx, testutil.Game1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.InLibrary)
	require.Equal(t, int64(2), stats.ByStatus[entity.LibraryPlaying])
	require.True(t, stats.AverageRating.Valid)
	require.Equal(t, 9.0, stats.AverageRating.Float64)

	err = libraryRepo.Update(ctx, testutil.User1.ID, testutil.Game2.ID, entity.LibraryCompleted, sql.NullInt32{})
	require.True(t, IsNotFound(err))

	list, err := libraryRepo.GetList(ctx, GetListLibraryItemFilter{
		UserID: testutil.User3.ID,
		Status: entity.LibraryWantToPlay,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, testutil.Game1.Name, list[0].Game.Name)
}

func Test_gameListRepository_Items(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	listRepo := NewGameListRepository()
	list := &entity.GameList{UserID: testutil.User1.ID, Name: "Backlog"}
	require.NoError(t, listRepo.Create(ctx, list))

	require.NoError(t, listRepo.AddItem(ctx, &entity.GameListItem{ListID: list.ID, GameID: testutil.Game1.ID}))
	require.NoError(t, listRepo.AddItem(ctx, &entity.GameListItem{ListID: list.ID, GameID: testutil.Game2.ID}))

	err := listRepo.AddItem(ctx, &entity.GameListItem{ListID: list.ID, GameID: testutil.Game1.ID})
	require.True(t, IsDuplicated(err))

	items, err := listRepo.GetItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Position)
	require.Equal(t, testutil.Game2.ID, items[1].GameID)
	require.Equal(t, 2, items[1].Position)

	require.NoError(t, listRepo.RemoveItem(ctx, list.ID, testutil.Game1.ID))
	require.True(t, IsNotFound(listRepo.RemoveItem(ctx, list.ID, testutil.Game1.ID)))

	counts, err := listRepo.CountItems(ctx, []int64{list.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), counts[list.ID])
}
