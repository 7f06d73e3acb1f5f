package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/cinesocial/internal/testutil"
)

func TestListViews_Scopes(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	viewer, friend, stranger := fx.User("viewer"), fx.User("friend"), fx.User("stranger")
	fx.Follow(viewer, friend, testutil.At(0))
	own := fx.Post(viewer, "tt1", testutil.At(1))
	fp := fx.Post(friend, "tt2", testutil.At(2))
	sp := fx.Post(stranger, "tt1", testutil.At(3))
	fx.Tag(fp, "18")

	ids := func(q FeedQuery) []int64 {
		views, err := repo.ListViews(ctx, q)
		require.NoError(t, err)
		out := make([]int64, 0, len(views))
		for _, v := range views {
			out = append(out, v.PostID)
		}
		return out
	}

	assert.Equal(t, []int64{sp.PostID, fp.PostID, own.PostID}, ids(FeedQuery{}))
	assert.Equal(t, []int64{fp.PostID, own.PostID}, ids(FeedQuery{ViewerID: &viewer.UserID, FollowScope: true}))
	assert.Equal(t, []int64{fp.PostID}, ids(FeedQuery{GenreID: "18"}))
	assert.Equal(t, []int64{sp.PostID, own.PostID}, ids(FeedQuery{MovieID: "tt1"}))
	assert.Equal(t, []int64{own.PostID}, ids(FeedQuery{AuthorID: &viewer.UserID}))
	assert.Equal(t, []int64{fp.PostID}, ids(FeedQuery{Limit: 1, Offset: 1}))
}

func TestAddGenre_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()
	p := fx.Post(fx.User("alice"), "tt1", testutil.At(0))

	first, err := repo.AddGenre(ctx, p.PostID, "35")
	require.NoError(t, err)
	second, err := repo.AddGenre(ctx, p.PostID, "35")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	genres, err := repo.ListGenres(ctx, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, []string{"35"}, genres)

	_, err = repo.RemoveGenre(ctx, p.PostID, "35")
	require.NoError(t, err)
	_, err = repo.RemoveGenre(ctx, p.PostID, "35")
	assert.True(t, IsNotFound(err))
}

func TestFollowAndFanTables(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	follows, fans := NewFollowRepository(db), NewFanRepository(db)
	ctx := context.Background()
	a, b := fx.User("a"), fx.User("b")

	f1, err := follows.Create(ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	f2, err := follows.Create(ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	assert.Equal(t, f1.ID, f2.ID)
	require.NoError(t, fans.Create(ctx, b.UserID, a.UserID))
	require.NoError(t, fans.Create(ctx, b.UserID, a.UserID))

	following, err := follows.ListFollowing(ctx, a.UserID, true)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "b", following[0].Username)

	list, err := fans.ListFans(ctx, b.UserID, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Username)

	removed, err := follows.Delete(ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = follows.Delete(ctx, a.UserID, b.UserID)
	require.NoError(t, err)
	assert.False(t, removed)
}
