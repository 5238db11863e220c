package domain

import (
	"context"

	"github.com/playden-lab/backend/internal/common"
	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/storage"
	"github.com/playden-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateUser(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	ChangePassword(context.Context, *model.ChangePasswordRequest) (*model.ChangePasswordResponse, error)
	DeactivateMe(context.Context, *model.DeactivateMeRequest) (*model.DeactivateMeResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	followMachine relation.Machine
	storage       storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followMachine relation.Machine,
	storage storage.Storage,
) *userDomain {
	return &userDomain{
		userRepo:      userRepo,
		followMachine: followMachine,
		storage:       storage,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	var user *entity.User
	var err error
	switch {
	case req.UserID != 0:
		user, err = d.userRepo.GetByID(ctx, req.UserID)
	case req.Username != "":
		user, err = d.userRepo.GetByUsername(ctx, req.Username)
	default:
		return nil, errorx.New(errorx.BadRequest, "Require user_id or username")
	}

	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followers, err := d.followMachine.CountByObject(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	following, err := d.followMachine.CountBySubject(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetUserResponse{
		User:      model.ConvertUser(user, user.ID == xcontext.RequestUserID(ctx)),
		Followers: followers,
		Following: following,
	}, nil
}

func (d *userDomain) UpdateUser(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	err = d.userRepo.UpdateByID(ctx, userID, &entity.User{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	return &model.UpdateUserResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *userDomain) ChangePassword(
	ctx context.Context, req *model.ChangePasswordRequest,
) (*model.ChangePasswordResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Wrong password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ChangePasswordResponse{}, nil
}

// DeactivateMe soft deletes the account. Relationships and reactions of the
// user are kept, lists and counts skip them while the account is inactive.
func (d *userDomain) DeactivateMe(
	ctx context.Context, req *model.DeactivateMeRequest,
) (*model.DeactivateMeResponse, error) {
	user, err := d.requestUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Wrong password")
	}

	if err := d.userRepo.Deactivate(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeactivateMeResponse{}, nil
}

func (d *userDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	images, err := common.ProcessImage(ctx, d.storage, "image", "avatars", common.AvatarSizes)
	if err != nil {
		return nil, err
	}

	if err := d.userRepo.UpdateByID(ctx, userID, &entity.User{AvatarURL: images[0].Url}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update avatar: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{AvatarURL: images[0].Url}, nil
}

func (d *userDomain) requestUser(ctx context.Context) (*entity.User, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errorx.New(errorx.Unauthenticated, "Account is not active")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
