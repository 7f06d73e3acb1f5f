package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/testutil"
)

func summaryIDs(users []model.UserSummary) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return ids
}

func TestFollow_SyncFanTable(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewRelationshipService(repository.NewFollowRepository(db), repository.NewFanRepository(db), nil)
	ctx := context.Background()
	a, b, c := fx.User("a"), fx.User("b"), fx.User("c")

	_, err := svc.Follow(ctx, a.UserID, a.UserID)
	assert.ErrorIs(t, err, ErrFollowSelf)

	f, err := svc.Follow(ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, b.UserID, f.Following)
	again, err := svc.Follow(ctx, a.UserID, b.UserID)
	require.NoError(t, err, "follow is idempotent")
	assert.Equal(t, f.ID, again.ID)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Follow(ctx, c.UserID, b.UserID)
	require.NoError(t, err)

	data, err := svc.FollowData(ctx, b.UserID, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{c.UserID, a.UserID}, summaryIDs(data.Followers))
	assert.Empty(t, data.Following)

	data, err = svc.FollowData(ctx, b.UserID, "asc")
	require.NoError(t, err)
	assert.Equal(t, []int64{a.UserID, c.UserID}, summaryIDs(data.Followers))

	data, err = svc.FollowData(ctx, a.UserID, "ASC")
	require.NoError(t, err)
	assert.Equal(t, []int64{b.UserID}, summaryIDs(data.Following))
	assert.Equal(t, "b", data.Following[0].Username)

	_, err = svc.FollowData(ctx, a.UserID, "up")
	assert.ErrorIs(t, err, ErrInvalidOrder)

	require.NoError(t, svc.Unfollow(ctx, a.UserID, b.UserID))
	assert.ErrorIs(t, svc.Unfollow(ctx, a.UserID, b.UserID), ErrFollowNotFound)
	data, err = svc.FollowData(ctx, b.UserID, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{c.UserID}, summaryIDs(data.Followers))
}

func TestFollow_AsyncReplicator(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	followRepo, fanRepo := repository.NewFollowRepository(db), repository.NewFanRepository(db)
	replicator := NewFanReplicator(followRepo, fanRepo, 2, 16)
	stop := replicator.Start()
	svc := NewRelationshipService(followRepo, fanRepo, replicator)
	ctx := context.Background()
	users := fx.Users(4)

	for _, u := range users[1:] {
		_, err := svc.Follow(ctx, u.UserID, users[0].UserID)
		require.NoError(t, err)
	}
	require.NoError(t, svc.Unfollow(ctx, users[3].UserID, users[0].UserID))

	require.Eventually(t, func() bool {
		fans, err := fanRepo.ListFans(ctx, users[0].UserID, true)
		return err == nil && len(fans) == 2
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, stop(stopCtx))
	assert.Zero(t, replicator.QueueLen())
}

func TestReplicator_StopDrainsQueue(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	followRepo, fanRepo := repository.NewFollowRepository(db), repository.NewFanRepository(db)
	a, b := fx.User("a"), fx.User("b")
	ctx := context.Background()
	_, err := followRepo.Create(ctx, b.UserID, a.UserID)
	require.NoError(t, err)
	_, err = followRepo.Create(ctx, a.UserID, b.UserID)
	require.NoError(t, err)

	replicator := NewFanReplicator(followRepo, fanRepo, 1, 8)
	replicator.EnqueueAdd(a.UserID, b.UserID)
	replicator.EnqueueAdd(b.UserID, a.UserID)
	stop := replicator.Start()
	require.NoError(t, stop(ctx))

	fans, err := fanRepo.ListFans(context.Background(), a.UserID, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.UserID}, summaryIDs(fans))
	fans, err = fanRepo.ListFans(context.Background(), b.UserID, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.UserID}, summaryIDs(fans))
}

func TestReplicator_DropsWhenQueueFull(t *testing.T) {
	db := testutil.NewDB(t)
	replicator := NewFanReplicator(repository.NewFollowRepository(db), repository.NewFanRepository(db), 1, 1)
	replicator.EnqueueAdd(1, 2)
	replicator.EnqueueAdd(1, 3)
	assert.Equal(t, 1, replicator.QueueLen())
}

func TestReplicator_FollowUnfollowKeepsPairOrder(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	followRepo, fanRepo := repository.NewFollowRepository(db), repository.NewFanRepository(db)
	replicator := NewFanReplicator(followRepo, fanRepo, 4, 256)
	svc := NewRelationshipService(followRepo, fanRepo, replicator)
	ctx := context.Background()
	users := fx.Users(9)
	target := users[0]

	// 先全部入队再启动，保证每对关系的 add 与 remove 同时在队列中
	for _, u := range users[1:] {
		_, err := svc.Follow(ctx, u.UserID, target.UserID)
		require.NoError(t, err)
		require.NoError(t, svc.Unfollow(ctx, u.UserID, target.UserID))
	}
	_, err := svc.Follow(ctx, users[1].UserID, target.UserID)
	require.NoError(t, err)

	stop := replicator.Start()
	require.NoError(t, stop(ctx))

	fans, err := fanRepo.ListFans(ctx, target.UserID, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{users[1].UserID}, summaryIDs(fans))
}

func TestReplicator_StaleJobFollowsSourceTable(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	followRepo, fanRepo := repository.NewFollowRepository(db), repository.NewFanRepository(db)
	ctx := context.Background()
	a, b, c := fx.User("a"), fx.User("b"), fx.User("c")
	require.NoError(t, fanRepo.Create(ctx, a.UserID, c.UserID))
	_, err := followRepo.Create(ctx, c.UserID, a.UserID)
	require.NoError(t, err)

	replicator := NewFanReplicator(followRepo, fanRepo, 2, 8)
	// b 从未关注 a：迟到的 add 不应写入；c 仍关注 a：迟到的 remove 不应删除
	replicator.EnqueueAdd(a.UserID, b.UserID)
	replicator.EnqueueRemove(a.UserID, c.UserID)
	stop := replicator.Start()
	require.NoError(t, stop(ctx))

	fans, err := fanRepo.ListFans(ctx, a.UserID, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.UserID}, summaryIDs(fans))
}
