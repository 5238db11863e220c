package domain

import (
	"context"
	"database/sql"

	"github.com/playden-lab/backend/internal/domain/reaction"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/enum"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	GetReplies(context.Context, *model.GetRepliesRequest) (*model.GetRepliesResponse, error)
	Update(context.Context, *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo     repository.CommentRepository
	postRepo        repository.PostRepository
	reactionMachine reaction.Machine
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	reactionMachine reaction.Machine,
) *commentDomain {
	return &commentDomain{
		commentRepo:     commentRepo,
		postRepo:        postRepo,
		reactionMachine: reactionMachine,
	}
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.checkLivePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:   req.PostID,
		AuthorID: userID,
		Content:  req.Content,
	}

	if req.ParentID != 0 {
		parent, err := d.getLiveComment(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}

		if parent.PostID != req.PostID {
			return nil, errorx.New(errorx.BadRequest, "The parent comment belongs to another post")
		}

		comment.ParentID = sql.NullInt64{Int64: parent.ID, Valid: true}
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	comment, err = d.getLiveComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return &model.CreateCommentResponse{
		Comment: model.ConvertComment(comment, 0, 0, 0, string(reaction.None)),
	}, nil
}

func (d *commentDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	if err := d.checkLivePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comments, err := d.list(ctx, req.PostID, sql.NullInt64{}, req.OrderBy, req.Pagination)
	if err != nil {
		return nil, err
	}

	return &model.GetCommentsResponse{Comments: comments}, nil
}

func (d *commentDomain) GetReplies(
	ctx context.Context, req *model.GetRepliesRequest,
) (*model.GetRepliesResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	parent, err := d.getLiveComment(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	comments, err := d.list(ctx, parent.PostID, sql.NullInt64{Int64: parent.ID, Valid: true}, req.OrderBy, req.Pagination)
	if err != nil {
		return nil, err
	}

	return &model.GetRepliesResponse{Comments: comments}, nil
}

func (d *commentDomain) Update(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	comment, err := d.getAuthoredComment(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.UpdateByID(ctx, comment.ID, req.Content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Unknown
	}

	comment.Content = req.Content
	comments, err := d.convertComments(ctx, []entity.Comment{*comment})
	if err != nil {
		return nil, err
	}

	return &model.UpdateCommentResponse{Comment: comments[0]}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.getAuthoredComment(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.DeleteByID(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}

func (d *commentDomain) list(
	ctx context.Context,
	postID int64,
	parentID sql.NullInt64,
	orderBy string,
	pagination model.Pagination,
) ([]model.Comment, error) {
	order := repository.CommentNewest
	if orderBy != "" {
		var err error
		order, err = enum.ToEnum[repository.CommentOrder](orderBy)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid order %s", orderBy)
		}
	}

	comments, err := d.commentRepo.GetList(ctx, repository.GetListCommentFilter{
		PostID:   postID,
		ParentID: parentID,
		OrderBy:  order,
		Offset:   pagination.Offset,
		Limit:    pagination.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment list: %v", err)
		return nil, errorx.Unknown
	}

	return d.convertComments(ctx, comments)
}

func (d *commentDomain) convertComments(ctx context.Context, comments []entity.Comment) ([]model.Comment, error) {
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	replies, err := d.commentRepo.CountReplies(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count replies: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.reactionMachine.Counts(ctx, ids, entity.ReactionComment)
	if err != nil {
		return nil, err
	}

	states, err := d.reactionMachine.States(ctx, xcontext.RequestUserID(ctx), ids, entity.ReactionComment)
	if err != nil {
		return nil, err
	}

	result := []model.Comment{}
	for i := range comments {
		id := comments[i].ID
		result = append(result, model.ConvertComment(
			&comments[i], replies[id], counts[id].Likes, counts[id].Dislikes, string(states[id])))
	}

	return result, nil
}

func (d *commentDomain) checkLivePost(ctx context.Context, postID int64) error {
	live, err := d.postRepo.IsLive(ctx, postID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check post: %v", err)
		return errorx.Unknown
	}

	if !live {
		return errorx.New(errorx.NotFound, "Not found post")
	}

	return nil
}

func (d *commentDomain) getLiveComment(ctx context.Context, commentID int64) (*entity.Comment, error) {
	live, err := d.commentRepo.IsLive(ctx, commentID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check comment: %v", err)
		return nil, errorx.Unknown
	}

	if !live {
		return nil, errorx.New(errorx.NotFound, "Not found comment")
	}

	comment, err := d.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	return comment, nil
}

func (d *commentDomain) getAuthoredComment(ctx context.Context, commentID int64) (*entity.Comment, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := d.getLiveComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can change the comment")
	}

	return comment, nil
}
