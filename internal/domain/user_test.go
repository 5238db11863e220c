package domain

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followMachine := relation.NewMachine(relation.FollowKind)
	userDomain := NewUserDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}), followMachine, &testutil.MockStorage{})

	_, err := followMachine.Establish(ctx, testutil.User2.ID, testutil.User1.ID)
	require.NoError(t, err)

	resp, err := userDomain.GetUser(ctx, &model.GetUserRequest{Username: testutil.User1.Username})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.Empty(t, resp.User.Email)
	require.Equal(t, int64(1), resp.Followers)
	require.Equal(t, int64(0), resp.Following)

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{UserID: testutil.DeactivatedUser.ID})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))
}

func Test_userDomain_UpdateAndPassword(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	userDomain := NewUserDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		relation.NewMachine(relation.FollowKind),
		&testutil.MockStorage{},
	)

	updated, err := userDomain.UpdateUser(ctx, &model.UpdateUserRequest{Bio: "Speedrunner"})
	require.NoError(t, err)
	require.Equal(t, "Speedrunner", updated.User.Bio)
	require.Equal(t, testutil.User1.DisplayName, updated.User.DisplayName)

	_, err = userDomain.ChangePassword(ctx, &model.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "new-password",
	})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	_, err = userDomain.ChangePassword(ctx, &model.ChangePasswordRequest{
		OldPassword: testutil.FixturePassword,
		NewPassword: "new-password",
	})
	require.NoError(t, err)

	_, err = userDomain.DeactivateMe(ctx, &model.DeactivateMeRequest{Password: testutil.FixturePassword})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	_, err = userDomain.DeactivateMe(ctx, &model.DeactivateMeRequest{Password: "new-password"})
	require.NoError(t, err)

	_, err = userDomain.GetMe(ctx, &model.GetMeRequest{})
	require.True(t, errorx.IsCode(err, errorx.Unauthenticated))
}

func Test_userDomain_UploadAvatar(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	fileStorage := &testutil.MockStorage{}
	userDomain := NewUserDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		relation.NewMachine(relation.FollowKind),
		fileStorage,
	)

	req := newImageRequest(t, "image", nil)
	resp, err := userDomain.UploadAvatar(xcontext.WithHTTPRequest(ctx, req), &model.UploadAvatarRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AvatarURL)
	require.Len(t, fileStorage.Uploaded, 3)

	me, err := userDomain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, resp.AvatarURL, me.AvatarURL)
}

// newImageRequest builds a multipart request with a small png in the field
// key and the given extra form values.
func newImageRequest(t *testing.T, key string, values map[string]string) *http.Request {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	imgBuf := new(bytes.Buffer)
	require.NoError(t, png.Encode(imgBuf, img))

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+key+`"; filename="image.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
