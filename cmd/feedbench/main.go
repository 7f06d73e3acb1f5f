package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/d60-Lab/cinesocial/config"
	"github.com/d60-Lab/cinesocial/internal/cache"
	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/database"
	"github.com/d60-Lab/cinesocial/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// measure 以 conc 并发执行 n 次 fn，返回每次耗时
func measure(ctx context.Context, n, conc int, fn func(ctx context.Context, i int) error) []time.Duration {
	var mu sync.Mutex
	out := make([]time.Duration, 0, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conc)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			st := time.Now()
			if err := fn(ctx, i); err != nil {
				return err
			}
			d := time.Since(st)
			mu.Lock()
			out = append(out, d)
			mu.Unlock()
			return nil
		})
	}
	mustDo(g.Wait())
	return out
}

func report(name string, ds []time.Duration) {
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	if len(ds) == 0 {
		fmt.Printf("%-22s samples=0\n", name)
		return
	}
	fmt.Printf("%-22s samples=%d avg=%v p95=%v p99=%v\n", name, len(ds), sum/time.Duration(len(ds)), pct(ds, 0.95), pct(ds, 0.99))
}

func reset(db *gorm.DB) {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []any{
		&model.PostGenre{}, &model.PostLike{}, &model.Comment{}, &model.Rating{}, &model.Watched{},
		&model.Favourite{}, &model.Fan{}, &model.Follow{}, &model.Post{}, &model.User{},
	} {
		mustDo(all.Delete(m).Error)
	}
}

func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.Log))
	db := must(database.InitDB(cfg))
	mustDo(database.AutoMigrate(db))
	ctx := context.Background()

	// params
	USERS := envInt("USERS", 2000)
	FOLLOWS := envInt("FOLLOWS", 50) // 每个用户关注的人数
	POSTS := envInt("POSTS", 5000)
	MOVIES := envInt("MOVIES", 200)
	READS := envInt("READS", 500)
	CONC := envInt("CONC", 8)
	rng := rand.New(rand.NewSource(1))

	// clean tables for a reproducible run (ok for local bench)
	reset(db)

	postRepo := repository.NewPostRepository(db)
	fanRepo := repository.NewFanRepository(db)
	followRepo := repository.NewFollowRepository(db)
	replicator := service.NewFanReplicator(followRepo, fanRepo, cfg.Relation.ReplicatorWorkers, USERS*FOLLOWS)
	stopReplicator := replicator.Start()
	relSvc := service.NewRelationshipService(followRepo, fanRepo, replicator)
	postSvc := service.NewPostService(postRepo)
	activitySvc := service.NewActivityService(repository.NewActivityRepository(db))
	engagementSvc := service.NewEngagementService(postRepo, repository.NewPostLikeRepository(db), repository.NewCommentRepository(db))
	libSvc := service.NewLibraryService(repository.NewUserRepository(db), repository.NewFavouriteRepository(db), repository.NewWatchedRepository(db))
	ratingRepo := repository.NewRatingRepository(db)
	ratingSvc := service.NewRatingService(ratingRepo, nil)

	fmt.Println("Setting up test data...")
	hash := must(bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost))
	users := make([]model.User, USERS)
	for i := range users {
		id := uuid.NewString()
		users[i] = model.User{Username: "u" + id[:8], Name: fmt.Sprintf("user %d", i), Email: id[:8] + "@example.com", Hash: string(hash)}
	}
	mustDo(db.CreateInBatches(&users, 500).Error)

	st := time.Now()
	for i := range users {
		for _, j := range rng.Perm(USERS)[:min(FOLLOWS+1, USERS)] {
			if j == i {
				continue
			}
			_ = must(relSvc.Follow(ctx, users[i].UserID, users[j].UserID))
		}
	}
	followTook := time.Since(st)
	drainCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	mustDo(stopReplicator(drainCtx))
	cancel()
	fmt.Printf("USERS=%d FOLLOWS=%d follow writes=%v fan replication drained=%v\n", USERS, FOLLOWS, followTook, time.Since(st))

	movieID := func() string { return fmt.Sprintf("tt%07d", rng.Intn(MOVIES)) }
	genres := model.Genres()
	postIDs := make([]int64, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		u := users[rng.Intn(USERS)]
		p := must(postSvc.Create(ctx, service.CreatePostInput{
			Author: u.Username, UserID: u.UserID, MovieTitle: "movie", MovieID: movieID(), Body: fmt.Sprintf("post %d", i),
		}))
		_ = must(postSvc.AddGenre(ctx, p.PostID, genres[rng.Intn(len(genres))].ID))
		postIDs = append(postIDs, p.PostID)
	}
	for i := 0; i < POSTS*2; i++ {
		u := users[rng.Intn(USERS)]
		postID := postIDs[rng.Intn(len(postIDs))]
		_ = must(engagementSvc.Like(ctx, u.UserID, postID))
		_ = must(engagementSvc.AddComment(ctx, postID, service.CreateCommentInput{UserID: u.UserID, Author: u.Username, Body: "nice"}))
		m := movieID()
		_ = must(libSvc.AddWatched(ctx, u.UserID, service.BookmarkInput{MovieID: m, MovieTitle: "movie"}))
		_ = must(ratingSvc.Rate(ctx, u.UserID, m, service.RateInput{Rating: 1 + rng.Intn(10)}))
	}
	fmt.Printf("POSTS=%d MOVIES=%d seeded in %v\n", POSTS, MOVIES, time.Since(st))

	viewer := func(i int) int64 { return users[i%USERS].UserID }

	report("feed global", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := postSvc.ComposeFeed(ctx, nil, service.FeedParams{Page: strconv.Itoa(1 + i%5)})
		return err
	}))
	report("feed follow scope", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		id := viewer(i)
		_, err := postSvc.ComposeFeed(ctx, &id, service.FeedParams{})
		return err
	}))
	report("feed by genre", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := postSvc.ComposeFeed(ctx, nil, service.FeedParams{Genre: genres[i%len(genres)].Name})
		return err
	}))
	report("own activity", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := activitySvc.OwnActivity(ctx, viewer(i))
		return err
	}))
	report("follower activity", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := activitySvc.FollowerActivity(ctx, viewer(i))
		return err
	}))
	report("rating avg (db)", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := ratingSvc.Average(ctx, fmt.Sprintf("tt%07d", i%MOVIES))
		return err
	}))

	rdb, err := database.InitRedis(ctx, cfg.Redis)
	if err != nil || rdb == nil {
		fmt.Println("redis disabled, skip cached rating reads")
		return
	}
	defer rdb.Close()
	cached := service.NewRatingService(ratingRepo, cache.NewRatingCache(rdb, cfg.Redis.RatingTTL))
	report("rating avg (cache)", measure(ctx, READS, CONC, func(ctx context.Context, i int) error {
		_, err := cached.Average(ctx, fmt.Sprintf("tt%07d", i%MOVIES))
		return err
	}))
}
