package domain

import (
	"context"
	"net"
	"strconv"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/authenticator"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/ratelimit"
	"github.com/playden-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Reactivate(context.Context, *model.ReactivateRequest) (*model.ReactivateResponse, error)
}

type authDomain struct {
	userRepo     repository.UserRepository
	loginLimiter *ratelimit.KeyedLimiter
}

func NewAuthDomain(ctx context.Context, userRepo repository.UserRepository) *authDomain {
	authCfg := xcontext.Configs(ctx).Auth
	return &authDomain{
		userRepo:     userRepo,
		loginLimiter: ratelimit.NewKeyed(authCfg.LoginRate, authCfg.LoginBurst),
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if err := checkUsername(req.Username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         entity.RoleUser,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicated(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Username or email is already taken")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if !d.loginLimiter.Allow(clientAddress(ctx)) {
		return nil, errorx.New(errorx.TooManyRequests, "Too many login attempts, try again later")
	}

	user, err := d.userRepo.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if !repository.IsNotFound(err) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		_, err := d.userRepo.GetDeactivatedByIdentifier(ctx, req.Identifier)
		if err == nil {
			return nil, errorx.New(errorx.PermissionDenied, "Account deactivated, reactivate first")
		}

		if !repository.IsNotFound(err) {
			xcontext.Logger(ctx).Errorf("Cannot get deactivated user: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{AccessToken: token, User: model.ConvertUser(user, true)}, nil
}

func (d *authDomain) Reactivate(
	ctx context.Context, req *model.ReactivateRequest,
) (*model.ReactivateResponse, error) {
	if !d.loginLimiter.Allow(clientAddress(ctx)) {
		return nil, errorx.New(errorx.TooManyRequests, "Too many login attempts, try again later")
	}

	user, err := d.userRepo.GetDeactivatedByIdentifier(ctx, req.Identifier)
	if err != nil {
		if !repository.IsNotFound(err) {
			xcontext.Logger(ctx).Errorf("Cannot get deactivated user: %v", err)
			return nil, errorx.Unknown
		}

		if _, err := d.userRepo.GetByIdentifier(ctx, req.Identifier); err == nil {
			return nil, errorx.New(errorx.BadRequest, "Account is already active")
		}

		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	reactivated, err := d.userRepo.Reactivate(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reactivate user: %v", err)
		return nil, errorx.Unknown
	}

	if !reactivated {
		return nil, errorx.New(errorx.BadRequest, "Account is already active")
	}

	user.DeletedAt.Valid = false
	token, err := generateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.ReactivateResponse{AccessToken: token, User: model.ConvertUser(user, true)}, nil
}

func generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(
		strconv.FormatInt(user.ID, 10),
		authenticator.AccessToken{ID: user.ID, Username: user.Username},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}

func clientAddress(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
