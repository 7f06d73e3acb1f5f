package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/cinesocial/internal/model"
)

// BookmarkRepository 收藏与看过两类结构相同的电影书签
type BookmarkRepository[T model.Favourite | model.Watched] interface {
	Create(ctx context.Context, row *T) error
	ListByUser(ctx context.Context, userID int64, desc bool) ([]*T, error)
	Delete(ctx context.Context, userID int64, movieID string) (*T, error)
}

type bookmarkRepository[T model.Favourite | model.Watched] struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) BookmarkRepository[model.Favourite] {
	return &bookmarkRepository[model.Favourite]{db: db}
}

func NewWatchedRepository(db *gorm.DB) BookmarkRepository[model.Watched] {
	return &bookmarkRepository[model.Watched]{db: db}
}

func (r *bookmarkRepository[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *bookmarkRepository[T]) ListByUser(ctx context.Context, userID int64, desc bool) ([]*T, error) {
	res := make([]*T, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(ByCreatedAt("", desc)).
		Find(&res).Error
	return res, err
}

func (r *bookmarkRepository[T]) Delete(ctx context.Context, userID int64, movieID string) (*T, error) {
	row := new(T)
	if err := deleteReturning(ctx, r.db, row, "user_id = ? AND movie_id = ?", userID, movieID); err != nil {
		return nil, err
	}
	return row, nil
}
