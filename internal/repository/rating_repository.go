package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/d60-Lab/cinesocial/internal/model"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	Update(ctx context.Context, userID int64, movieID string, value int) (*model.Rating, error)
	Delete(ctx context.Context, userID int64, movieID string) (*model.Rating, error)
	ListByUser(ctx context.Context, userID int64, movieID string) ([]*model.Rating, error)
	// Average 电影全部评分的算术平均；没有评分时返回 nil
	Average(ctx context.Context, movieID string) (*float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository { return &ratingRepository{db: db} }

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) Update(ctx context.Context, userID int64, movieID string, value int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Rating{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			Update("rating", value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID int64, movieID string) (*model.Rating, error) {
	var rating model.Rating
	if err := deleteReturning(ctx, r.db, &rating, "user_id = ? AND movie_id = ?", userID, movieID); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID int64, movieID string) ([]*model.Rating, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if movieID != "" {
		q = q.Where("movie_id = ?", movieID)
	}
	res := make([]*model.Rating, 0)
	err := q.Scopes(ByCreatedAt("", true)).Find(&res).Error
	return res, err
}

func (r *ratingRepository) Average(ctx context.Context, movieID string) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("AVG(rating)").
		Where("movie_id = ?", movieID).
		Row().Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
