package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/testutil"
)

func TestUserService(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := &userService{userRepo: repository.NewUserRepository(db), cost: bcrypt.MinCost}
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "neo", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)

	user, err := svc.Register(ctx, RegisterInput{Username: "neo", Name: "Thomas", Email: "neo@example.com", Password: "redpill"})
	require.NoError(t, err)
	assert.NotZero(t, user.UserID)
	assert.NotEqual(t, "redpill", user.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte("redpill")))

	_, err = svc.Register(ctx, RegisterInput{Username: "neo", Name: "Other", Email: "o@example.com", Password: "p"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	free, err := svc.UsernameFree(ctx, "neo")
	require.NoError(t, err)
	assert.False(t, free)
	free, err = svc.UsernameFree(ctx, "trinity")
	require.NoError(t, err)
	assert.True(t, free)

	other := fx.User("morpheus")
	fx.Follow(other, user, testutil.At(0))
	fx.Follow(user, other, testutil.At(1))
	fx.Follow(fx.User("tank"), user, testutil.At(2))

	profile, err := svc.Get(ctx, user.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.Following)
	assert.EqualValues(t, 2, profile.Followers)

	_, err = svc.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)

	name := "Mr. Anderson"
	updated, err := svc.Update(ctx, user.UserID, UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mr. Anderson", updated.Name)
	assert.Equal(t, "neo", updated.Username)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	deleted, err := svc.Delete(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, deleted.UserID)
	_, err = svc.Delete(ctx, user.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Update(ctx, user.UserID, UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLibraryService(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewLibraryService(repository.NewUserRepository(db), repository.NewFavouriteRepository(db), repository.NewWatchedRepository(db))
	ctx := context.Background()
	u := fx.User("alice")
	older := fx.Favourite(u, "tt1", testutil.At(0))
	newer := fx.Favourite(u, "tt2", testutil.At(1))

	favs, err := svc.Favourites(ctx, u.UserID, "")
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, newer.FavouriteID, favs[0].FavouriteID)

	favs, err = svc.Favourites(ctx, u.UserID, "ASC")
	require.NoError(t, err)
	assert.Equal(t, older.FavouriteID, favs[0].FavouriteID)

	_, err = svc.Favourites(ctx, u.UserID, "newest")
	assert.ErrorIs(t, err, ErrInvalidOrder)
	_, err = svc.Favourites(ctx, 999, "")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.AddFavourite(ctx, u.UserID, BookmarkInput{MovieID: "tt3"})
	assert.ErrorIs(t, err, ErrMissingFields)
	added, err := svc.AddFavourite(ctx, u.UserID, BookmarkInput{MovieID: "tt3", MovieTitle: "Up"})
	require.NoError(t, err)
	assert.Equal(t, u.UserID, added.UserID)

	removed, err := svc.RemoveFavourite(ctx, u.UserID, "tt3")
	require.NoError(t, err)
	assert.Equal(t, added.FavouriteID, removed.FavouriteID)
	_, err = svc.RemoveFavourite(ctx, u.UserID, "tt3")
	assert.ErrorIs(t, err, ErrFavouriteNotFound)

	w, err := svc.AddWatched(ctx, u.UserID, BookmarkInput{MovieID: "tt4", MovieTitle: "Big"})
	require.NoError(t, err)
	watched, err := svc.Watched(ctx, u.UserID, "desc")
	require.NoError(t, err)
	require.Len(t, watched, 1)
	assert.Equal(t, w.WatchedID, watched[0].WatchedID)
	_, err = svc.RemoveWatched(ctx, u.UserID, "tt4")
	require.NoError(t, err)
	_, err = svc.RemoveWatched(ctx, u.UserID, "tt4")
	assert.ErrorIs(t, err, ErrWatchedNotFound)
}

func TestEngagementService(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewEngagementService(repository.NewPostRepository(db), repository.NewPostLikeRepository(db), repository.NewCommentRepository(db))
	ctx := context.Background()
	alice, bob := fx.User("alice"), fx.User("bob")
	post := fx.Post(alice, "tt1", testutil.At(0))

	_, err := svc.Like(ctx, bob.UserID, 777)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.Like(ctx, 0, post.PostID)
	assert.ErrorIs(t, err, ErrMissingFields)

	like, err := svc.Like(ctx, bob.UserID, post.PostID)
	require.NoError(t, err)
	again, err := svc.Like(ctx, bob.UserID, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, like.LikeID, again.LikeID, "one like per user and post")

	likers, err := svc.Likers(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.UserID}, summaryIDs(likers))

	liked, err := svc.LikedPosts(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, []int64{post.PostID}, liked)

	_, err = svc.Unlike(ctx, bob.UserID, post.PostID)
	require.NoError(t, err)
	_, err = svc.Unlike(ctx, bob.UserID, post.PostID)
	assert.ErrorIs(t, err, ErrLikeNotFound)

	_, err = svc.AddComment(ctx, post.PostID, CreateCommentInput{UserID: bob.UserID})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.AddComment(ctx, 777, CreateCommentInput{UserID: bob.UserID, Author: "bob", Body: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	c, err := svc.AddComment(ctx, post.PostID, CreateCommentInput{UserID: bob.UserID, Author: "bob", Body: "hi"})
	require.NoError(t, err)
	comments, err := svc.Comments(ctx, post.PostID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hi", comments[0].Body)

	edited, err := svc.EditComment(ctx, c.CommentID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", edited.Body)

	_, err = svc.DeleteComment(ctx, c.CommentID)
	require.NoError(t, err)
	_, err = svc.DeleteComment(ctx, c.CommentID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	_, err = svc.EditComment(ctx, c.CommentID, "again")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
