package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/cinesocial/internal/model"
)

// ActivityScope 动态的归属范围：用户本人，或其关注的人
type ActivityScope struct {
	UserID    int64
	Followees bool
}

func (s ActivityScope) on(column string) Scope {
	if s.Followees {
		return OwnedByFollowees(column, s.UserID)
	}
	return OwnedBy(column, s.UserID)
}

// ActivityRepository 各类动态的单源查询，每个方法对应一张事件表
type ActivityRepository interface {
	Posts(ctx context.Context, scope ActivityScope) ([]model.PostView, error)
	Watched(ctx context.Context, scope ActivityScope) ([]model.Watched, error)
	PostLikes(ctx context.Context, scope ActivityScope) ([]model.PostLikeActivity, error)
	Comments(ctx context.Context, scope ActivityScope) ([]model.CommentActivity, error)
	Ratings(ctx context.Context, scope ActivityScope) ([]model.Rating, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepository{db: db} }

func (r *activityRepository) Posts(ctx context.Context, scope ActivityScope) ([]model.PostView, error) {
	viewer := scope.UserID
	rows := make([]model.PostView, 0)
	err := postViews(ctx, r.db, &viewer).
		Scopes(scope.on("p.user_id"), newestFirst).
		Scan(&rows).Error
	return rows, err
}

func (r *activityRepository) Watched(ctx context.Context, scope ActivityScope) ([]model.Watched, error) {
	rows := make([]model.Watched, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.on("user_id"), ByCreatedAt("", true)).
		Find(&rows).Error
	return rows, err
}

func (r *activityRepository) PostLikes(ctx context.Context, scope ActivityScope) ([]model.PostLikeActivity, error) {
	rows := make([]model.PostLikeActivity, 0)
	err := r.db.WithContext(ctx).
		Table("post_likes AS pl").
		Select("pl.like_id, pl.user_id, pl.post_id, pl.created_at, p.author, p.movie_id, p.movie_title, p.movie_poster, p.body").
		Joins("LEFT JOIN posts AS p ON p.post_id = pl.post_id").
		Scopes(scope.on("pl.user_id"), ByCreatedAt("pl", true)).
		Scan(&rows).Error
	return rows, err
}

func (r *activityRepository) Comments(ctx context.Context, scope ActivityScope) ([]model.CommentActivity, error) {
	rows := make([]model.CommentActivity, 0)
	err := r.db.WithContext(ctx).
		Table("comments AS c").
		Select("c.comment_id, c.user_id, c.post_id, c.author, c.body, c.created_at, p.movie_id, p.movie_title, p.movie_poster").
		Joins("LEFT JOIN posts AS p ON p.post_id = c.post_id").
		Scopes(scope.on("c.user_id"), ByCreatedAt("c", true)).
		Scan(&rows).Error
	return rows, err
}

func (r *activityRepository) Ratings(ctx context.Context, scope ActivityScope) ([]model.Rating, error) {
	rows := make([]model.Rating, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope.on("user_id"), ByCreatedAt("", true)).
		Find(&rows).Error
	return rows, err
}
