package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// ActivityService 动态流：并发拉取各事件源，合并后按时间倒序
type ActivityService interface {
	// OwnActivity 用户本人的动态，含发帖
	OwnActivity(ctx context.Context, userID int64) ([]model.ActivityEvent, error)
	// FollowerActivity 用户关注的人的动态，不含发帖
	FollowerActivity(ctx context.Context, userID int64) ([]model.ActivityEvent, error)
}

// activitySource 单一事件源，返回已打好类型标签的事件
type activitySource struct {
	kind model.EventKind
	load func(ctx context.Context, scope repository.ActivityScope) ([]model.ActivityEvent, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) OwnActivity(ctx context.Context, userID int64) ([]model.ActivityEvent, error) {
	return s.merge(ctx, repository.ActivityScope{UserID: userID}, s.sources(true))
}

func (s *activityService) FollowerActivity(ctx context.Context, userID int64) ([]model.ActivityEvent, error) {
	return s.merge(ctx, repository.ActivityScope{UserID: userID, Followees: true}, s.sources(false))
}

// sources 固定的事件源顺序；同一时间戳的事件按此顺序排列
func (s *activityService) sources(withPosts bool) []activitySource {
	var out []activitySource
	if withPosts {
		out = append(out, activitySource{model.EventPost, func(ctx context.Context, sc repository.ActivityScope) ([]model.ActivityEvent, error) {
			rows, err := s.repo.Posts(ctx, sc)
			return tagAll(rows, err, model.NewPostEvent)
		}})
	}
	return append(out,
		activitySource{model.EventWatched, func(ctx context.Context, sc repository.ActivityScope) ([]model.ActivityEvent, error) {
			rows, err := s.repo.Watched(ctx, sc)
			return tagAll(rows, err, model.NewWatchedEvent)
		}},
		activitySource{model.EventPostLike, func(ctx context.Context, sc repository.ActivityScope) ([]model.ActivityEvent, error) {
			rows, err := s.repo.PostLikes(ctx, sc)
			return tagAll(rows, err, model.NewPostLikeEvent)
		}},
		activitySource{model.EventComment, func(ctx context.Context, sc repository.ActivityScope) ([]model.ActivityEvent, error) {
			rows, err := s.repo.Comments(ctx, sc)
			return tagAll(rows, err, model.NewCommentEvent)
		}},
		activitySource{model.EventRating, func(ctx context.Context, sc repository.ActivityScope) ([]model.ActivityEvent, error) {
			rows, err := s.repo.Ratings(ctx, sc)
			return tagAll(rows, err, model.NewRatingEvent)
		}},
	)
}

// tagAll 把某张表的行包装成对应类型的事件
func tagAll[T any, E model.ActivityEvent](rows []T, err error, wrap func(T) E) ([]model.ActivityEvent, error) {
	if err != nil {
		return nil, err
	}
	events := make([]model.ActivityEvent, len(rows))
	for i, row := range rows {
		events[i] = wrap(row)
	}
	return events, nil
}

// merge 扇出到各事件源，任一失败即取消其余查询并整体失败；
// 各源结果按源顺序拼接后稳定排序，保证相同时间戳时顺序确定
func (s *activityService) merge(ctx context.Context, scope repository.ActivityScope, sources []activitySource) ([]model.ActivityEvent, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([][]model.ActivityEvent, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			events, err := src.load(gctx, scope)
			if err != nil {
				return fmt.Errorf("load %s activity of user %d: %w", src.kind, scope.UserID, err)
			}
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	if total == 0 {
		return []model.ActivityEvent{model.NewNoActivity()}, nil
	}

	merged := make([]model.ActivityEvent, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OccurredAt().After(merged[j].OccurredAt())
	})
	return merged, nil
}
