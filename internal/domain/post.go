package domain

import (
	"context"

	"github.com/playden-lab/backend/internal/domain/reaction"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	GetList(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo        repository.PostRepository
	communityRepo   repository.CommunityRepository
	memberMachine   relation.Machine
	reactionMachine reaction.Machine
}

func NewPostDomain(
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	memberMachine relation.Machine,
	reactionMachine reaction.Machine,
) *postDomain {
	return &postDomain{
		postRepo:        postRepo,
		communityRepo:   communityRepo,
		memberMachine:   memberMachine,
		reactionMachine: reactionMachine,
	}
}

// Create requires the author to be an active member of the community.
func (d *postDomain) Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	state, err := d.memberMachine.State(ctx, userID, community.ID)
	if err != nil {
		return nil, err
	}

	if state != relation.Active {
		return nil, errorx.New(errorx.PermissionDenied, "Only members can post in the community")
	}

	post := &entity.Post{
		CommunityID: community.ID,
		AuthorID:    userID,
		Title:       req.Title,
		Content:     req.Content,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	post, err = d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{
		Post: model.ConvertPost(post, 0, 0, string(reaction.None)),
	}, nil
}

func (d *postDomain) Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.getLivePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	posts, err := d.convertPosts(ctx, []entity.Post{*post})
	if err != nil {
		return nil, err
	}

	return &model.GetPostResponse{Post: posts[0]}, nil
}

func (d *postDomain) GetList(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	community, err := d.communityRepo.GetByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetListByCommunityID(ctx, community.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPostsResponse{Posts: result}, nil
}

func (d *postDomain) Update(ctx context.Context, req *model.UpdatePostRequest) (*model.UpdatePostResponse, error) {
	post, err := d.getAuthoredPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	err = d.postRepo.UpdateByID(ctx, post.ID, entity.Post{Title: req.Title, Content: req.Content})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	post, err = d.getLivePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	posts, err := d.convertPosts(ctx, []entity.Post{*post})
	if err != nil {
		return nil, err
	}

	return &model.UpdatePostResponse{Post: posts[0]}, nil
}

// Delete is allowed to the author and the creator of the community.
func (d *postDomain) Delete(ctx context.Context, req *model.DeletePostRequest) (*model.DeletePostResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	post, err := d.getLivePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		community, err := d.communityRepo.GetByID(ctx, post.CommunityID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
			return nil, errorx.Unknown
		}

		if community.CreatedBy != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the post")
		}
	}

	if err := d.postRepo.DeleteByID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	counts, err := d.reactionMachine.Counts(ctx, ids, entity.ReactionCommunityPost)
	if err != nil {
		return nil, err
	}

	states, err := d.reactionMachine.States(ctx, xcontext.RequestUserID(ctx), ids, entity.ReactionCommunityPost)
	if err != nil {
		return nil, err
	}

	result := []model.Post{}
	for i := range posts {
		c := counts[posts[i].ID]
		result = append(result, model.ConvertPost(&posts[i], c.Likes, c.Dislikes, string(states[posts[i].ID])))
	}

	return result, nil
}

func (d *postDomain) getLivePost(ctx context.Context, postID int64) (*entity.Post, error) {
	live, err := d.postRepo.IsLive(ctx, postID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check post: %v", err)
		return nil, errorx.Unknown
	}

	if !live {
		return nil, errorx.New(errorx.NotFound, "Not found post")
	}

	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

func (d *postDomain) getAuthoredPost(ctx context.Context, postID int64) (*entity.Post, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	post, err := d.getLivePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can change the post")
	}

	return post, nil
}
