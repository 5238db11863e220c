package domain

import (
	"context"

	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	IsFollowing(context.Context, *model.IsFollowingRequest) (*model.IsFollowingResponse, error)
	CountFollow(context.Context, *model.CountFollowRequest) (*model.CountFollowResponse, error)
}

type followDomain struct {
	userRepo      repository.UserRepository
	followerRepo  repository.FollowerRepository
	followMachine relation.Machine
	trigger       achievement.Trigger
}

func NewFollowDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	followMachine relation.Machine,
	trigger achievement.Trigger,
) *followDomain {
	return &followDomain{
		userRepo:      userRepo,
		followerRepo:  followerRepo,
		followMachine: followMachine,
		trigger:       trigger,
	}
}

func (d *followDomain) Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	if userID == req.UserID {
		return nil, errorx.New(errorx.SelfReference, "Cannot follow yourself")
	}

	if err := d.checkActiveUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	count, err := d.followMachine.Establish(ctx, userID, req.UserID)
	if err != nil {
		return nil, err
	}

	achievement.Notify(ctx, d.trigger, userID, d.followMachine.Kind().Name, count)
	return &model.FollowResponse{Following: count}, nil
}

func (d *followDomain) Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	if userID == req.UserID {
		return nil, errorx.New(errorx.SelfReference, "Cannot unfollow yourself")
	}

	if err := d.followMachine.Withdraw(ctx, userID, req.UserID); err != nil {
		return nil, err
	}

	return &model.UnfollowResponse{}, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	users, err := d.followerRepo.GetFollowers(ctx, req.UserID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowersResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	users, err := d.followerRepo.GetFollowing(ctx, req.UserID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowingResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *followDomain) IsFollowing(
	ctx context.Context, req *model.IsFollowingRequest,
) (*model.IsFollowingResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	state, err := d.followMachine.State(ctx, userID, req.UserID)
	if err != nil {
		return nil, err
	}

	return &model.IsFollowingResponse{IsFollowing: state == relation.Active}, nil
}

func (d *followDomain) CountFollow(
	ctx context.Context, req *model.CountFollowRequest,
) (*model.CountFollowResponse, error) {
	followers, err := d.followMachine.CountByObject(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	following, err := d.followMachine.CountBySubject(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &model.CountFollowResponse{Followers: followers, Following: following}, nil
}

func (d *followDomain) checkActiveUser(ctx context.Context, userID int64) error {
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	return nil
}
