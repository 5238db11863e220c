package domain

import (
	"context"
	"database/sql"

	"github.com/playden-lab/backend/internal/common"
	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/storage"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type CommunityDomain interface {
	Create(context.Context, *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	Get(context.Context, *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	GetList(context.Context, *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Update(context.Context, *model.UpdateCommunityRequest) (*model.UpdateCommunityResponse, error)
	Delete(context.Context, *model.DeleteCommunityRequest) (*model.DeleteCommunityResponse, error)
	GetInactive(context.Context, *model.GetInactiveCommunitiesRequest) (*model.GetInactiveCommunitiesResponse, error)
	Reactivate(context.Context, *model.ReactivateCommunityRequest) (*model.ReactivateCommunityResponse, error)
	Join(context.Context, *model.JoinCommunityRequest) (*model.JoinCommunityResponse, error)
	Leave(context.Context, *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	GetMembers(context.Context, *model.GetMembersRequest) (*model.GetMembersResponse, error)
	GetMyCommunities(context.Context, *model.GetMyCommunitiesRequest) (*model.GetMyCommunitiesResponse, error)
	GetUserCommunities(context.Context, *model.GetUserCommunitiesRequest) (*model.GetUserCommunitiesResponse, error)
	UploadLogo(context.Context, *model.UploadCommunityLogoRequest) (*model.UploadCommunityLogoResponse, error)
}

type communityDomain struct {
	communityRepo       repository.CommunityRepository
	communityMemberRepo repository.CommunityMemberRepository
	gameRepo            repository.GameRepository
	memberMachine       relation.Machine
	trigger             achievement.Trigger
	storage             storage.Storage
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	communityMemberRepo repository.CommunityMemberRepository,
	gameRepo repository.GameRepository,
	memberMachine relation.Machine,
	trigger achievement.Trigger,
	storage storage.Storage,
) *communityDomain {
	return &communityDomain{
		communityRepo:       communityRepo,
		communityMemberRepo: communityMemberRepo,
		gameRepo:            gameRepo,
		memberMachine:       memberMachine,
		trigger:             trigger,
		storage:             storage,
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkCommunityHandle(req.Handle); err != nil {
		return nil, err
	}

	community := &entity.Community{
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
		Description: req.Description,
		CreatedBy:   userID,
	}

	if req.GameID != 0 {
		if err := d.checkGame(ctx, req.GameID); err != nil {
			return nil, err
		}

		community.GameID = sql.NullInt64{Int64: req.GameID, Valid: true}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.Create(ctx, community); err != nil {
		if repository.IsDuplicated(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Handle %s is already taken", req.Handle)
		}

		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.memberMachine.Establish(ctx, userID, community.ID)
	if err != nil {
		return nil, err
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit community: %v", err)
		return nil, errorx.Unknown
	}

	achievement.Notify(ctx, d.trigger, userID, d.memberMachine.Kind().Name, count)

	return &model.CreateCommunityResponse{Community: model.ConvertCommunity(community, 1)}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.getByHandle(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	members, err := d.memberMachine.CountByObject(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	isMember := false
	if userID := xcontext.RequestUserID(ctx); userID != 0 {
		state, err := d.memberMachine.State(ctx, userID, community.ID)
		if err != nil {
			return nil, err
		}

		isMember = state == relation.Active
	}

	return &model.GetCommunityResponse{
		Community: model.ConvertCommunity(community, members),
		IsMember:  isMember,
	}, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertCommunities(ctx, communities)
	if err != nil {
		return nil, err
	}

	return &model.GetCommunitiesResponse{Communities: result}, nil
}

func (d *communityDomain) Update(
	ctx context.Context, req *model.UpdateCommunityRequest,
) (*model.UpdateCommunityResponse, error) {
	community, err := d.getOwnedCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	update := entity.Community{
		DisplayName: req.DisplayName,
		Description: req.Description,
	}

	if req.GameID != 0 {
		if err := d.checkGame(ctx, req.GameID); err != nil {
			return nil, err
		}

		update.GameID = sql.NullInt64{Int64: req.GameID, Valid: true}
	}

	if err := d.communityRepo.UpdateByID(ctx, community.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update community: %v", err)
		return nil, errorx.Unknown
	}

	community, err = d.getByHandle(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	members, err := d.memberMachine.CountByObject(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	return &model.UpdateCommunityResponse{Community: model.ConvertCommunity(community, members)}, nil
}

// Delete soft deletes the community, its posts and comments are hidden until
// the creator reactivates it.
func (d *communityDomain) Delete(
	ctx context.Context, req *model.DeleteCommunityRequest,
) (*model.DeleteCommunityResponse, error) {
	community, err := d.getOwnedCommunity(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	if err := d.communityRepo.DeleteByID(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete community: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommunityResponse{}, nil
}

func (d *communityDomain) GetInactive(
	ctx context.Context, req *model.GetInactiveCommunitiesRequest,
) (*model.GetInactiveCommunitiesResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetDeletedByCreator(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get inactive communities: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Community{}
	for i := range communities {
		result = append(result, model.ConvertCommunity(&communities[i], 0))
	}

	return &model.GetInactiveCommunitiesResponse{Communities: result}, nil
}

func (d *communityDomain) Reactivate(
	ctx context.Context, req *model.ReactivateCommunityRequest,
) (*model.ReactivateCommunityResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	community, err := d.communityRepo.GetDeletedByHandle(ctx, req.CommunityHandle)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found inactive community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get inactive community: %v", err)
		return nil, errorx.Unknown
	}

	if community.CreatedBy != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can reactivate the community")
	}

	if err := d.communityRepo.ReactivateByID(ctx, community.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reactivate community: %v", err)
		return nil, errorx.Unknown
	}

	community.DeletedAt.Valid = false
	members, err := d.memberMachine.CountByObject(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	return &model.ReactivateCommunityResponse{Community: model.ConvertCommunity(community, members)}, nil
}

func (d *communityDomain) Join(
	ctx context.Context, req *model.JoinCommunityRequest,
) (*model.JoinCommunityResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	community, err := d.getByHandle(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	count, err := d.memberMachine.Establish(ctx, userID, community.ID)
	if err != nil {
		return nil, err
	}

	achievement.Notify(ctx, d.trigger, userID, d.memberMachine.Kind().Name, count)
	return &model.JoinCommunityResponse{Communities: count}, nil
}

func (d *communityDomain) Leave(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	community, err := d.getByHandle(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	if err := d.memberMachine.Withdraw(ctx, userID, community.ID); err != nil {
		return nil, err
	}

	return &model.LeaveCommunityResponse{}, nil
}

func (d *communityDomain) GetMembers(
	ctx context.Context, req *model.GetMembersRequest,
) (*model.GetMembersResponse, error) {
	if err := checkPagination(ctx, &req.Pagination); err != nil {
		return nil, err
	}

	community, err := d.getByHandle(ctx, req.CommunityHandle)
	if err != nil {
		return nil, err
	}

	users, err := d.communityMemberRepo.GetMembers(ctx, community.ID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMembersResponse{Users: model.ConvertUsers(users)}, nil
}

func (d *communityDomain) GetMyCommunities(
	ctx context.Context, req *model.GetMyCommunitiesRequest,
) (*model.GetMyCommunitiesResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := d.userCommunities(ctx, userID, &req.Pagination)
	if err != nil {
		return nil, err
	}

	return &model.GetMyCommunitiesResponse{Communities: result}, nil
}

func (d *communityDomain) GetUserCommunities(
	ctx context.Context, req *model.GetUserCommunitiesRequest,
) (*model.GetUserCommunitiesResponse, error) {
	result, err := d.userCommunities(ctx, req.UserID, &req.Pagination)
	if err != nil {
		return nil, err
	}

	return &model.GetUserCommunitiesResponse{Communities: result}, nil
}

func (d *communityDomain) UploadLogo(
	ctx context.Context, req *model.UploadCommunityLogoRequest,
) (*model.UploadCommunityLogoResponse, error) {
	httpReq := xcontext.HTTPRequest(ctx)
	if httpReq == nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	community, err := d.getOwnedCommunity(ctx, httpReq.FormValue("community_handle"))
	if err != nil {
		return nil, err
	}

	images, err := common.ProcessImage(ctx, d.storage, "image", "communities", common.LogoSizes)
	if err != nil {
		return nil, err
	}

	err = d.communityRepo.UpdateByID(ctx, community.ID, entity.Community{LogoURL: images[0].Url})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update community logo: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadCommunityLogoResponse{LogoURL: images[0].Url}, nil
}

func (d *communityDomain) userCommunities(
	ctx context.Context, userID int64, pagination *model.Pagination,
) ([]model.Community, error) {
	if err := checkPagination(ctx, pagination); err != nil {
		return nil, err
	}

	communities, err := d.communityMemberRepo.GetCommunities(ctx, userID, pagination.Offset, pagination.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities of user: %v", err)
		return nil, errorx.Unknown
	}

	return d.convertCommunities(ctx, communities)
}

func (d *communityDomain) convertCommunities(
	ctx context.Context, communities []entity.Community,
) ([]model.Community, error) {
	result := []model.Community{}
	for i := range communities {
		members, err := d.memberMachine.CountByObject(ctx, communities[i].ID)
		if err != nil {
			return nil, err
		}

		result = append(result, model.ConvertCommunity(&communities[i], members))
	}

	return result, nil
}

func (d *communityDomain) getByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	community, err := d.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	return community, nil
}

func (d *communityDomain) getOwnedCommunity(ctx context.Context, handle string) (*entity.Community, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	community, err := d.getByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if community.CreatedBy != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can manage the community")
	}

	return community, nil
}

func (d *communityDomain) checkGame(ctx context.Context, gameID int64) error {
	if _, err := d.gameRepo.GetByID(ctx, gameID); err != nil {
		if repository.IsNotFound(err) {
			return errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return errorx.Unknown
	}

	return nil
}
