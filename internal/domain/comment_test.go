package domain

import (
	"testing"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestCommentDomain() *commentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(),
		newTestReactionMachine(),
	)
}

func Test_commentDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := newTestCommentDomain()
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	ctxUser3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	second, err := commentDomain.Create(ctxUser3, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: "Which version?",
	})
	require.NoError(t, err)

	reply, err := commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		PostID:   testutil.Post1.ID,
		ParentID: testutil.Comment1.ID,
		Content:  "Thanks",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Comment1.ID, reply.Comment.ParentID)

	_, err = newTestReactionMachine().ApplyLike(ctx, testutil.User1.ID, second.Comment.ID, entity.ReactionComment)
	require.NoError(t, err)

	comments, err := commentDomain.GetComments(ctxUser1, &model.GetCommentsRequest{
		PostID:     testutil.Post1.ID,
		OrderBy:    "OLDEST",
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, comments.Comments, 2)
	require.Equal(t, testutil.Comment1.ID, comments.Comments[0].ID)
	require.Equal(t, int64(1), comments.Comments[0].Replies)
	require.Equal(t, "NONE", comments.Comments[0].MyReaction)

	mostLiked, err := commentDomain.GetComments(ctxUser1, &model.GetCommentsRequest{
		PostID:     testutil.Post1.ID,
		OrderBy:    "MOST_LIKED",
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Equal(t, second.Comment.ID, mostLiked.Comments[0].ID)
	require.Equal(t, int64(1), mostLiked.Comments[0].Likes)
	require.Equal(t, "LIKED", mostLiked.Comments[0].MyReaction)

	replies, err := commentDomain.GetReplies(ctx, &model.GetRepliesRequest{
		CommentID:  testutil.Comment1.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, replies.Comments, 1)
	require.Equal(t, reply.Comment.ID, replies.Comments[0].ID)

	_, err = commentDomain.Update(ctxUser3, &model.UpdateCommentRequest{
		CommentID: reply.Comment.ID,
		Content:   "Hijacked",
	})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	updated, err := commentDomain.Update(ctxUser1, &model.UpdateCommentRequest{
		CommentID: reply.Comment.ID,
		Content:   "Thanks a lot",
	})
	require.NoError(t, err)
	require.Equal(t, "Thanks a lot", updated.Comment.Content)

	_, err = commentDomain.Delete(ctxUser1, &model.DeleteCommentRequest{CommentID: reply.Comment.ID})
	require.NoError(t, err)

	replies, err = commentDomain.GetReplies(ctx, &model.GetRepliesRequest{
		CommentID:  testutil.Comment1.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Empty(t, replies.Comments)
}

func Test_commentDomain_Create_InvalidParent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := newTestCommentDomain()
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	otherPost := entity.Post{
		CommunityID: testutil.Community1.ID,
		AuthorID:    testutil.User1.ID,
		Title:       "Other",
	}
	require.NoError(t, xcontext.DB(ctx).Create(&otherPost).Error)

	_, err := commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		PostID:   otherPost.ID,
		ParentID: testutil.Comment1.ID,
		Content:  "Wrong thread",
	})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))

	_, err = commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		PostID:   testutil.Post1.ID,
		ParentID: 987654,
		Content:  "Ghost parent",
	})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	require.NoError(t, xcontext.DB(ctx).Delete(&entity.Comment{}, testutil.Comment1.ID).Error)
	_, err = commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		PostID:   testutil.Post1.ID,
		ParentID: testutil.Comment1.ID,
		Content:  "Deleted parent",
	})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		PostID:  424242,
		Content: "No post",
	})
	require.True(t, errorx.IsCode(err, errorx.NotFound))
}
