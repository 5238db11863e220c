package relation

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_machine_Establish_reactivation_reuses_row(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	count, err := m.Establish(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	var first entity.Follower
	require.NoError(t, xcontext.DB(ctx).Take(&first, "follower_id = ? AND following_id = ?", 1, 2).Error)
	require.Nil(t, first.UpdatedAt)

	clock = clock.Add(time.Hour)
	require.NoError(t, m.Withdraw(ctx, 1, 2))

	state, err := m.State(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Removed, state)

	clock = clock.Add(time.Hour)
	count, err = m.Establish(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	var rows []entity.Follower
	require.NoError(t, xcontext.DB(ctx).Unscoped().
		Find(&rows, "follower_id = ? AND following_id = ?", 1, 2).Error)
	require.Len(t, rows, 1)
	require.False(t, rows[0].DeletedAt.Valid)
	require.True(t, first.CreatedAt.Equal(rows[0].CreatedAt))
	require.NotNil(t, rows[0].UpdatedAt)
	require.True(t, clock.Equal(*rows[0].UpdatedAt))
}

func Test_machine_Establish_twice(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(MemberKind)

	_, err := m.Establish(ctx, 1, 10)
	require.NoError(t, err)

	_, err = m.Establish(ctx, 1, 10)
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.CommunityMember{}).
		Where("user_id = ? AND community_id = ?", 1, 10).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func Test_machine_Withdraw_not_active(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(LibraryKind)

	// Absent.
	err := m.Withdraw(ctx, 1, 100)
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	_, err = m.Establish(ctx, 1, 100)
	require.NoError(t, err)
	require.NoError(t, m.Withdraw(ctx, 1, 100))

	var removed entity.LibraryItem
	require.NoError(t, xcontext.DB(ctx).Unscoped().Take(&removed, "user_id = ? AND game_id = ?", 1, 100).Error)

	// Already removed, the tombstone is untouched.
	err = m.Withdraw(ctx, 1, 100)
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	var after entity.LibraryItem
	require.NoError(t, xcontext.DB(ctx).Unscoped().Take(&after, "user_id = ? AND game_id = ?", 1, 100).Error)
	require.True(t, removed.DeletedAt.Time.Equal(after.DeletedAt.Time))
}

func Test_machine_count_monotonicity(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	const n = 7
	for i := int64(1); i <= n; i++ {
		count, err := m.Establish(ctx, 1, 100+i)
		require.NoError(t, err)
		require.Equal(t, i, count)
	}

	count, err := m.CountBySubject(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(n), count)

	// Withdrawn edges are not counted, other subjects are not counted.
	require.NoError(t, m.Withdraw(ctx, 1, 101))
	_, err = m.Establish(ctx, 2, 101)
	require.NoError(t, err)

	count, err = m.CountBySubject(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(n-1), count)

	count, err = m.CountByObject(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_machine_State(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	state, err := m.State(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Absent, state)

	_, err = m.Establish(ctx, 1, 2)
	require.NoError(t, err)

	state, err = m.State(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Active, state)

	// Direction matters.
	state, err = m.State(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, Absent, state)
}

func Test_machine_insert_existing_edge(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	_, err := m.Establish(ctx, 1, 2)
	require.NoError(t, err)

	// The edge was inserted by another request after our lookup.
	err = m.insert(ctx, 1, 2)
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))

	count, err := m.CountBySubject(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_machine_Establish_concurrently(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	const n = 8
	errs := make([]error, n)
	wg := sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Establish(ctx, 1, 2)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.True(t, errorx.IsCode(err, errorx.AlreadyExists))
		}
	}
	require.Equal(t, 1, successes)

	var rows []entity.Follower
	require.NoError(t, xcontext.DB(ctx).Unscoped().
		Find(&rows, "follower_id = ? AND following_id = ?", 1, 2).Error)
	require.Len(t, rows, 1)
}

func Test_machine_Establish_commit_failure(t *testing.T) {
	ctx := testutil.MockContext()
	m := NewMachine(FollowKind)

	// Abort the transaction right after the count, the commit is the first
	// statement to notice it.
	err := xcontext.DB(ctx).Callback().Query().After("gorm:query").Register("test:abort_tx",
		func(tx *gorm.DB) {
			if tx.Statement.Table != FollowKind.Table ||
				!strings.Contains(strings.ToLower(tx.Statement.SQL.String()), "count(") {
				return
			}

			if committer, ok := tx.Statement.ConnPool.(gorm.TxCommitter); ok {
				require.NoError(t, committer.Rollback())
			}
		})
	require.NoError(t, err)

	_, err = m.Establish(ctx, 1, 2)
	require.True(t, errorx.IsCode(err, errorx.Unknown.Code))

	require.NoError(t, xcontext.DB(ctx).Callback().Query().Remove("test:abort_tx"))

	state, err := m.State(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, Absent, state)
}
