package domain

import (
	"context"
	"regexp"

	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
)

var (
	communityHandleRegex = regexp.MustCompile("^[a-z0-9_]*$")
	usernameRegex        = regexp.MustCompile("^[A-Za-z0-9_]*$")
)

func checkCommunityHandle(handle string) error {
	if len(handle) < 4 {
		return errorx.New(errorx.BadRequest, "Handle too short (at least 4 characters)")
	}

	if len(handle) > 32 {
		return errorx.New(errorx.BadRequest, "Handle too long (at most 32 characters)")
	}

	if !communityHandleRegex.MatchString(handle) {
		return errorx.New(errorx.BadRequest, "Handle contains invalid characters")
	}

	return nil
}

func checkUsername(username string) error {
	if len(username) < 4 {
		return errorx.New(errorx.BadRequest, "Username too short (at least 4 characters)")
	}

	if len(username) > 32 {
		return errorx.New(errorx.BadRequest, "Username too long (at most 32 characters)")
	}

	if !usernameRegex.MatchString(username) {
		return errorx.New(errorx.BadRequest, "Username contains invalid characters")
	}

	return nil
}

// checkPagination fills the default limit and rejects limits exceeding the
// configured maximum.
func checkPagination(ctx context.Context, p *model.Pagination) error {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if p.Limit == 0 {
		p.Limit = apiCfg.DefaultLimit
	}

	if p.Limit < 0 {
		return errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if p.Limit > apiCfg.MaxLimit {
		return errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	if p.Offset < 0 {
		return errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	return nil
}

func requireLogin(ctx context.Context) (int64, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == 0 {
		return 0, errorx.New(errorx.Unauthenticated, "You need to log in first")
	}

	return userID, nil
}
