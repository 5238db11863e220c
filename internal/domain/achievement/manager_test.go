package achievement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/pubsub"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, repository.UserAchievementRepository) {
	userAchievementRepo := repository.NewUserAchievementRepository()
	return NewManager(repository.NewAchievementRepository(), userAchievementRepo), userAchievementRepo
}

func Test_Manager_NotifyCountReached(t *testing.T) {
	ctx := testutil.MockContext()
	manager, userAchievementRepo := newTestManager()

	require.NoError(t, manager.NotifyCountReached(ctx, 7, entity.FollowKindName, 4))
	unlocked, err := userAchievementRepo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, unlocked)

	require.NoError(t, manager.NotifyCountReached(ctx, 7, entity.FollowKindName, 5))
	require.NoError(t, manager.NotifyCountReached(ctx, 7, entity.FollowKindName, 6))

	unlocked, err = userAchievementRepo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	require.Equal(t, "SOCIAL_BUTTERFLY", unlocked[0].Achievement.Name)

	// Counts of another kind unlock only their own achievements.
	require.NoError(t, manager.NotifyCountReached(ctx, 7, entity.LibraryKindName, 5))
	unlocked, err = userAchievementRepo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, unlocked, 2)

	require.NoError(t, manager.NotifyCountReached(ctx, 7, "unknown", 100))
}

func Test_Manager_GetAll(t *testing.T) {
	ctx := testutil.MockContext()
	manager, _ := newTestManager()

	achievements, err := manager.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, achievements, 3)
}

func Test_Publisher_and_Subscribe(t *testing.T) {
	ctx := testutil.MockContext()
	manager, userAchievementRepo := newTestManager()

	var packs []*pubsub.Pack
	publisher := NewPublisher(&testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, "relation_count", topic)
			packs = append(packs, pack)
			return nil
		},
	}, "relation_count")

	require.NoError(t, publisher.NotifyCountReached(ctx, 9, entity.MemberKindName, 5))
	require.Len(t, packs, 1)
	require.Equal(t, []byte("9"), packs[0].Key)

	var event RelationCountEvent
	require.NoError(t, json.Unmarshal(packs[0].Msg, &event))
	require.Equal(t, RelationCountEvent{SubjectID: 9, Kind: entity.MemberKindName, Count: 5}, event)

	manager.Subscribe(ctx, "relation_count", packs[0], time.Now())
	unlocked, err := userAchievementRepo.GetByUserID(ctx, 9)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	require.Equal(t, "COMMUNITY_REGULAR", unlocked[0].Achievement.Name)

	// Broken messages are dropped.
	manager.Subscribe(ctx, "relation_count", &pubsub.Pack{Msg: []byte("{")}, time.Now())
}

func Test_Notify_swallows_errors(t *testing.T) {
	ctx := testutil.MockContext()
	trigger := &testutil.MockTrigger{
		NotifyCountReachedFunc: func(ctx context.Context, subjectID int64, kind string, count int64) error {
			return errors.New("broker is down")
		},
	}

	Notify(ctx, trigger, 1, entity.FollowKindName, 3)
	require.Equal(t, []testutil.TriggerCall{{SubjectID: 1, Kind: entity.FollowKindName, Count: 3}}, trigger.Calls)

	Notify(ctx, nil, 1, entity.FollowKindName, 3)
}
