package domain

import (
	"context"
	"testing"

	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestCommunityDomain(
	ctx context.Context, trigger *testutil.MockTrigger, fileStorage *testutil.MockStorage,
) *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(search.NewBleveIndex(ctx)),
		repository.NewCommunityMemberRepository(),
		repository.NewGameRepository(),
		relation.NewMachine(relation.MemberKind),
		trigger,
		fileStorage,
	)
}

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	trigger := &testutil.MockTrigger{}
	communityDomain := newTestCommunityDomain(ctx, trigger, &testutil.MockStorage{})
	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	resp, err := communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		Handle:      "open_world",
		DisplayName: "Open World Fans",
		GameID:      testutil.Game2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Community.Members)
	require.Equal(t, testutil.Game2.ID, resp.Community.GameID)
	require.Equal(t, []testutil.TriggerCall{
		{SubjectID: testutil.User2.ID, Kind: entity.MemberKindName, Count: 1},
	}, trigger.Calls)

	got, err := communityDomain.Get(ctxUser2, &model.GetCommunityRequest{CommunityHandle: "open_world"})
	require.NoError(t, err)
	require.True(t, got.IsMember)
	require.Equal(t, testutil.User2.ID, got.Community.CreatedBy)

	_, err = communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		Handle:      testutil.Community1.Handle,
		DisplayName: "Copy",
	})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	_, err = communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		Handle:      "Bad Handle",
		DisplayName: "Bad",
	})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))

	_, err = communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		Handle:      "unknown_game",
		DisplayName: "Unknown",
		GameID:      424242,
	})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	list, err := communityDomain.GetList(ctx, &model.GetCommunitiesRequest{
		Q:          "open world",
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, list.Communities, 1)
	require.Equal(t, "open_world", list.Communities[0].Handle)
}

func Test_communityDomain_JoinLeave(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	trigger := &testutil.MockTrigger{}
	communityDomain := newTestCommunityDomain(ctx, trigger, &testutil.MockStorage{})
	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	joined, err := communityDomain.Join(ctxUser2, &model.JoinCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), joined.Communities)
	require.Len(t, trigger.Calls, 1)

	_, err = communityDomain.Join(ctxUser2, &model.JoinCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	members, err := communityDomain.GetMembers(ctx, &model.GetMembersRequest{
		CommunityHandle: testutil.Community1.Handle,
		Pagination:      model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, members.Users, 2)

	mine, err := communityDomain.GetMyCommunities(ctxUser2, &model.GetMyCommunitiesRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Communities, 1)
	require.Equal(t, int64(2), mine.Communities[0].Members)

	_, err = communityDomain.Leave(ctxUser2, &model.LeaveCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)

	_, err = communityDomain.Leave(ctxUser2, &model.LeaveCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	others, err := communityDomain.GetUserCommunities(ctx, &model.GetUserCommunitiesRequest{
		UserID:     testutil.User2.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Empty(t, others.Communities)

	_, err = communityDomain.Join(ctxUser2, &model.JoinCommunityRequest{CommunityHandle: "nowhere"})
	require.True(t, errorx.IsCode(err, errorx.NotFound))
}

func Test_communityDomain_DeleteReactivate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityDomain := newTestCommunityDomain(ctx, &testutil.MockTrigger{}, &testutil.MockStorage{})
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	_, err := communityDomain.Delete(ctxUser2, &model.DeleteCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	_, err = communityDomain.Update(ctxUser1, &model.UpdateCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
		Description:     "Glitched runs too",
	})
	require.NoError(t, err)

	_, err = communityDomain.Delete(ctxUser1, &model.DeleteCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)

	_, err = communityDomain.Get(ctx, &model.GetCommunityRequest{CommunityHandle: testutil.Community1.Handle})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	inactive, err := communityDomain.GetInactive(ctxUser1, &model.GetInactiveCommunitiesRequest{})
	require.NoError(t, err)
	require.Len(t, inactive.Communities, 1)
	require.NotEmpty(t, inactive.Communities[0].DeletedAt)

	_, err = communityDomain.Reactivate(ctxUser2, &model.ReactivateCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))

	reactivated, err := communityDomain.Reactivate(ctxUser1, &model.ReactivateCommunityRequest{
		CommunityHandle: testutil.Community1.Handle,
	})
	require.NoError(t, err)
	require.Equal(t, "Glitched runs too", reactivated.Community.Description)
	require.Empty(t, reactivated.Community.DeletedAt)
	require.Equal(t, int64(1), reactivated.Community.Members)
}

func Test_communityDomain_UploadLogo(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	fileStorage := &testutil.MockStorage{}
	communityDomain := newTestCommunityDomain(ctx, &testutil.MockTrigger{}, fileStorage)

	req := newImageRequest(t, "image", map[string]string{"community_handle": testutil.Community1.Handle})
	ctxUser1 := xcontext.WithHTTPRequest(xcontext.WithRequestUserID(ctx, testutil.User1.ID), req)

	resp, err := communityDomain.UploadLogo(ctxUser1, &model.UploadCommunityLogoRequest{})
	require.NoError(t, err)
	require.Len(t, fileStorage.Uploaded, 1)

	got, err := communityDomain.Get(ctx, &model.GetCommunityRequest{CommunityHandle: testutil.Community1.Handle})
	require.NoError(t, err)
	require.Equal(t, resp.LogoURL, got.Community.LogoURL)

	req = newImageRequest(t, "image", map[string]string{"community_handle": testutil.Community1.Handle})
	ctxUser2 := xcontext.WithHTTPRequest(xcontext.WithRequestUserID(ctx, testutil.User2.ID), req)
	_, err = communityDomain.UploadLogo(ctxUser2, &model.UploadCommunityLogoRequest{})
	require.True(t, errorx.IsCode(err, errorx.PermissionDenied))
}
