package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/cinesocial/internal/cache"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/testutil"
)

func TestAverage_SingleRating(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewRatingService(repository.NewRatingRepository(db), nil)
	fx.Rating(fx.User("u1"), "tt0001", 2, testutil.At(0))

	avg, err := svc.Average(context.Background(), "tt0001")
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 2.0, *avg)
}

func TestAverage_RoundsToOneDecimal(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewRatingService(repository.NewRatingRepository(db), nil)
	users := fx.Users(3)
	fx.Rating(users[0], "tt0002", 2, testutil.At(0))
	fx.Rating(users[1], "tt0002", 3, testutil.At(1))
	fx.Rating(users[2], "tt0002", 3, testutil.At(2))
	fx.Rating(users[0], "tt0003", 9, testutil.At(3))

	avg, err := svc.Average(context.Background(), "tt0002")
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 2.7, *avg)
}

func TestAverage_NoRatingsIsNil(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRatingService(repository.NewRatingRepository(db), nil)

	avg, err := svc.Average(context.Background(), "tt-none")
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestAverage_CachedAndInvalidatedByWrites(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewRatingService(repository.NewRatingRepository(db), cache.NewRatingCache(client, time.Minute))
	ctx := context.Background()
	u1, u2 := fx.User("u1"), fx.User("u2")

	avg, err := svc.Average(ctx, "tt0004")
	require.NoError(t, err)
	assert.Nil(t, avg)
	assert.True(t, mr.Exists("rating:avg:tt0004"), "empty average is cached too")

	_, err = svc.Rate(ctx, u1.UserID, "tt0004", RateInput{Rating: 4, MovieTitle: "Alien"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("rating:avg:tt0004"))

	avg, err = svc.Average(ctx, "tt0004")
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)

	// 绕过服务直接写库，缓存命中时仍返回旧值
	fx.Rating(u2, "tt0004", 8, testutil.At(1))
	avg, err = svc.Average(ctx, "tt0004")
	require.NoError(t, err)
	assert.Equal(t, 4.0, *avg)

	_, err = svc.Update(ctx, u1.UserID, "tt0004", 6)
	require.NoError(t, err)
	avg, err = svc.Average(ctx, "tt0004")
	require.NoError(t, err)
	assert.Equal(t, 7.0, *avg)

	_, err = svc.Delete(ctx, u2.UserID, "tt0004")
	require.NoError(t, err)
	avg, err = svc.Average(ctx, "tt0004")
	require.NoError(t, err)
	assert.Equal(t, 6.0, *avg)
}

func TestAverage_CacheDownFallsBackToStore(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewRatingService(repository.NewRatingRepository(db), cache.NewRatingCache(client, time.Minute))
	fx.Rating(fx.User("u1"), "tt0005", 5, testutil.At(0))
	mr.Close()

	avg, err := svc.Average(context.Background(), "tt0005")
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 5.0, *avg)
}

func TestRatingWrites(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	svc := NewRatingService(repository.NewRatingRepository(db), nil)
	ctx := context.Background()
	u := fx.User("u1")

	_, err := svc.Rate(ctx, u.UserID, "tt0006", RateInput{Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Update(ctx, u.UserID, "tt0006", 11)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Update(ctx, u.UserID, "tt0006", 5)
	assert.ErrorIs(t, err, ErrRatingNotFound)
	_, err = svc.Delete(ctx, u.UserID, "tt0006")
	assert.ErrorIs(t, err, ErrRatingNotFound)

	created, err := svc.Rate(ctx, u.UserID, "tt0006", RateInput{Rating: 3, MovieTitle: "Jaws"})
	require.NoError(t, err)
	fx.Rating(u, "tt0007", 9, testutil.At(60*24*365*50))

	all, err := svc.ListByUser(ctx, u.UserID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tt0007", all[0].MovieID)

	one, err := svc.ListByUser(ctx, u.UserID, "tt0006")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, created.RatingID, one[0].RatingID)
}
