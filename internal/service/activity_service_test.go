package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/testutil"
)

func newActivityService(t *testing.T) (ActivityService, *testutil.Fixture) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewActivityService(repository.NewActivityRepository(db)), testutil.NewFixture(t, db)
}

// eventKey 事件的唯一标识：类型 + 源表主键
func eventKey(e model.ActivityEvent) string {
	switch ev := e.(type) {
	case *model.PostEvent:
		return fmt.Sprintf("post:%d", ev.PostID)
	case *model.WatchedEvent:
		return fmt.Sprintf("watched:%d", ev.WatchedID)
	case *model.PostLikeEvent:
		return fmt.Sprintf("post_like:%d", ev.LikeID)
	case *model.CommentEvent:
		return fmt.Sprintf("comment:%d", ev.CommentID)
	case *model.RatingEvent:
		return fmt.Sprintf("rating:%d", ev.RatingID)
	}
	return "none"
}

func kindCounts(events []model.ActivityEvent) map[model.EventKind]int {
	counts := map[model.EventKind]int{}
	for _, e := range events {
		counts[e.Kind()]++
	}
	return counts
}

func assertNewestFirst(t *testing.T, events []model.ActivityEvent) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].OccurredAt().After(events[i-1].OccurredAt()),
			"event %d (%s) is newer than event %d (%s)", i, eventKey(events[i]), i-1, eventKey(events[i-1]))
	}
}

func TestOwnActivity_MergesAllSources(t *testing.T) {
	svc, fx := newActivityService(t)
	users := fx.Users(3)
	u3 := users[2]
	posts := []*model.Post{
		fx.Post(users[0], "tt1", testutil.At(0)),
		fx.Post(users[0], "tt2", testutil.At(1)),
		fx.Post(users[1], "tt3", testutil.At(2)),
		fx.Post(users[1], "tt4", testutil.At(3)),
	}

	want := map[string]bool{}
	add := func(key string) { want[key] = true }
	add(fmt.Sprintf("watched:%d", fx.Watched(u3, "tt1", testutil.At(14)).WatchedID))
	add(fmt.Sprintf("watched:%d", fx.Watched(u3, "tt2", testutil.At(5)).WatchedID))
	for i, p := range posts {
		add(fmt.Sprintf("post_like:%d", fx.Like(u3, p, testutil.At(10+i*3)).LikeID))
	}
	add(fmt.Sprintf("comment:%d", fx.Comment(u3, posts[0], testutil.At(12)).CommentID))
	add(fmt.Sprintf("rating:%d", fx.Rating(u3, "tt1", 2, testutil.At(8)).RatingID))
	add(fmt.Sprintf("rating:%d", fx.Rating(u3, "tt3", 7, testutil.At(30)).RatingID))

	// 其他用户的动态不应出现
	fx.Watched(users[0], "tt9", testutil.At(40))
	fx.Like(users[1], posts[0], testutil.At(41))

	events, err := svc.OwnActivity(context.Background(), u3.UserID)
	require.NoError(t, err)
	require.Len(t, events, 9)

	assert.Equal(t, map[model.EventKind]int{
		model.EventWatched:  2,
		model.EventPostLike: 4,
		model.EventComment:  1,
		model.EventRating:   2,
	}, kindCounts(events))
	assertNewestFirst(t, events)

	got := map[string]bool{}
	for _, e := range events {
		key := eventKey(e)
		assert.False(t, got[key], "duplicate event %s", key)
		got[key] = true
		assert.Equal(t, u3.UserID, e.ActorID())
	}
	assert.Equal(t, want, got)
}

func TestOwnActivity_IncludesAuthoredPostsAndJoinsMetadata(t *testing.T) {
	svc, fx := newActivityService(t)
	alice, bob := fx.User("alice"), fx.User("bob")
	bobsPost := fx.Post(bob, "tt42", testutil.At(0))
	own := fx.Post(alice, "tt43", testutil.At(1))
	fx.Like(alice, bobsPost, testutil.At(2))
	fx.Comment(alice, bobsPost, testutil.At(3))

	events, err := svc.OwnActivity(context.Background(), alice.UserID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	comment, ok := events[0].(*model.CommentEvent)
	require.True(t, ok)
	assert.Equal(t, model.EventComment, comment.Type)
	require.NotNil(t, comment.MovieID)
	assert.Equal(t, "tt42", *comment.MovieID)

	like, ok := events[1].(*model.PostLikeEvent)
	require.True(t, ok)
	require.NotNil(t, like.MovieTitle)
	assert.Equal(t, bobsPost.MovieTitle, *like.MovieTitle)
	require.NotNil(t, like.Author)
	assert.Equal(t, "bob", *like.Author)

	post, ok := events[2].(*model.PostEvent)
	require.True(t, ok)
	assert.Equal(t, own.PostID, post.PostID)
	assert.Equal(t, model.EventPost, post.Type)
}

func TestOwnActivity_EqualTimestampsKeepSourceOrder(t *testing.T) {
	svc, fx := newActivityService(t)
	u := fx.User("alice")
	at := testutil.At(5)
	p := fx.Post(u, "tt1", at)
	fx.Rating(u, "tt1", 5, at)
	fx.Comment(u, p, at)
	fx.Watched(u, "tt1", at)
	fx.Like(u, p, at)

	events, err := svc.OwnActivity(context.Background(), u.UserID)
	require.NoError(t, err)
	kinds := make([]model.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	assert.Equal(t, []model.EventKind{
		model.EventPost, model.EventWatched, model.EventPostLike, model.EventComment, model.EventRating,
	}, kinds)
}

func TestOwnActivity_NoActivityPlaceholder(t *testing.T) {
	svc, fx := newActivityService(t)
	u := fx.User("lonely")

	events, err := svc.OwnActivity(context.Background(), u.UserID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	placeholder, ok := events[0].(*model.NoActivity)
	require.True(t, ok)
	assert.Equal(t, "No activity yet!", placeholder.Msg)

	events, err = svc.FollowerActivity(context.Background(), u.UserID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.IsType(t, &model.NoActivity{}, events[0])
}

func TestFollowerActivity_OnlyFolloweesAndNoPosts(t *testing.T) {
	svc, fx := newActivityService(t)
	users := fx.Users(6)
	u1, u5, u6 := users[0], users[4], users[5]
	fx.Follow(u6, u1, testutil.At(0))
	fx.Follow(u6, u5, testutil.At(0))
	// u2 关注 u6，反向关系不影响 u6 的关注动态
	fx.Follow(users[1], u6, testutil.At(0))

	var posts []*model.Post
	for i, u := range users {
		posts = append(posts, fx.Post(u, fmt.Sprintf("tt%d", i), testutil.At(i)))
	}
	for i, u := range users {
		fx.Watched(u, "tt100", testutil.At(10+i))
		fx.Rating(u, "tt100", i+1, testutil.At(20+i))
		fx.Like(u, posts[(i+1)%len(posts)], testutil.At(30+i))
		fx.Comment(u, posts[(i+2)%len(posts)], testutil.At(40+i))
	}

	events, err := svc.FollowerActivity(context.Background(), u6.UserID)
	require.NoError(t, err)
	require.Len(t, events, 8)
	assertNewestFirst(t, events)

	allowed := map[int64]bool{u1.UserID: true, u5.UserID: true}
	for _, e := range events {
		assert.True(t, allowed[e.ActorID()], "event %s by user %d", eventKey(e), e.ActorID())
		assert.NotEqual(t, model.EventPost, e.Kind())
	}
	assert.Equal(t, map[model.EventKind]int{
		model.EventWatched:  2,
		model.EventPostLike: 2,
		model.EventComment:  2,
		model.EventRating:   2,
	}, kindCounts(events))
}

// failingActivityRepo 点赞源出错，其余源正常
type failingActivityRepo struct {
	repository.ActivityRepository
	err error
}

func (r failingActivityRepo) PostLikes(ctx context.Context, scope repository.ActivityScope) ([]model.PostLikeActivity, error) {
	return nil, r.err
}

func TestActivity_FailsFastOnSourceError(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	u := fx.User("alice")
	fx.Watched(u, "tt1", testutil.At(0))

	boom := errors.New("store unavailable")
	svc := NewActivityService(failingActivityRepo{ActivityRepository: repository.NewActivityRepository(db), err: boom})

	events, err := svc.OwnActivity(context.Background(), u.UserID)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, events)

	_, err = svc.FollowerActivity(context.Background(), u.UserID)
	assert.ErrorIs(t, err, boom)
}

func TestActivity_CanceledContext(t *testing.T) {
	svc, fx := newActivityService(t)
	u := fx.User("alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.OwnActivity(ctx, u.UserID)
	assert.Error(t, err)
}
