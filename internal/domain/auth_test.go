package domain

import (
	"context"
	"net/http"
	"testing"

	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/ratelimit"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain(ctx context.Context) *authDomain {
	return NewAuthDomain(ctx, repository.NewUserRepository(&testutil.MockRedisClient{}))
}

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain := newTestAuthDomain(ctx)

	resp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Username: "new_player",
		Email:    "player@playden.test",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "new_player", resp.User.Username)
	require.Equal(t, "new_player", resp.User.DisplayName)
	require.Equal(t, "USER", resp.User.Role)

	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Username: testutil.User1.Username,
		Email:    "other@playden.test",
		Password: "password123",
	})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Username: "bad name",
		Email:    "bad@playden.test",
		Password: "password123",
	})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain := newTestAuthDomain(ctx)

	resp, err := authDomain.Login(ctx, &model.LoginRequest{
		Identifier: testutil.User1.Email,
		Password:   testutil.FixturePassword,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)

	token, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, token.ID)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Identifier: testutil.User1.Username,
		Password:   "wrong-password",
	})
	require.True(t, errorx.IsCode(err, errorx.Unauthenticated))

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Identifier: "nobody",
		Password:   testutil.FixturePassword,
	})
	require.True(t, errorx.IsCode(err, errorx.Unauthenticated))

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Identifier: testutil.DeactivatedUser.Username,
		Password:   testutil.FixturePassword,
	})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))
}

func Test_authDomain_Login_Throttled(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain := newTestAuthDomain(ctx)
	authDomain.loginLimiter = ratelimit.NewKeyed(0.001, 1)

	req, err := http.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, err)
	req.RemoteAddr = "10.0.0.1:5000"
	ctx = xcontext.WithHTTPRequest(ctx, req)

	loginReq := &model.LoginRequest{Identifier: "alice", Password: testutil.FixturePassword}
	_, err = authDomain.Login(ctx, loginReq)
	require.NoError(t, err)

	_, err = authDomain.Login(ctx, loginReq)
	require.True(t, errorx.IsCode(err, errorx.TooManyRequests))

	// Another address has its own bucket.
	other := req.Clone(ctx)
	other.RemoteAddr = "10.0.0.2:5000"
	_, err = authDomain.Login(xcontext.WithHTTPRequest(ctx, other), loginReq)
	require.NoError(t, err)
}

func Test_authDomain_Reactivate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain := newTestAuthDomain(ctx)

	_, err := authDomain.Reactivate(ctx, &model.ReactivateRequest{
		Identifier: testutil.User1.Username,
		Password:   testutil.FixturePassword,
	})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))

	_, err = authDomain.Reactivate(ctx, &model.ReactivateRequest{
		Identifier: testutil.DeactivatedUser.Username,
		Password:   "wrong-password",
	})
	require.True(t, errorx.IsCode(err, errorx.Unauthenticated))

	resp, err := authDomain.Reactivate(ctx, &model.ReactivateRequest{
		Identifier: testutil.DeactivatedUser.Username,
		Password:   testutil.FixturePassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Identifier: testutil.DeactivatedUser.Username,
		Password:   testutil.FixturePassword,
	})
	require.NoError(t, err)
}
