package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/d60-Lab/cinesocial/internal/cache"
	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/pkg/logger"
)

// RateInput 评分参数
type RateInput struct {
	Rating      int    `json:"rating" validate:"gte=1,lte=10"`
	MovieTitle  string `json:"movie_title"`
	MoviePoster string `json:"movie_poster"`
}

// RatingService 评分维护与电影平均分
type RatingService interface {
	// Average 保留一位小数的平均分；没有任何评分时返回 nil
	Average(ctx context.Context, movieID string) (*float64, error)
	Rate(ctx context.Context, userID int64, movieID string, in RateInput) (*model.Rating, error)
	Update(ctx context.Context, userID int64, movieID string, value int) (*model.Rating, error)
	Delete(ctx context.Context, userID int64, movieID string) (*model.Rating, error)
	ListByUser(ctx context.Context, userID int64, movieID string) ([]*model.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	cache      cache.RatingCache
}

// NewRatingService cache 可为 nil，此时每次都查库
func NewRatingService(ratingRepo repository.RatingRepository, c cache.RatingCache) RatingService {
	return &ratingService{ratingRepo: ratingRepo, cache: c}
}

func (s *ratingService) Average(ctx context.Context, movieID string) (*float64, error) {
	if s.cache != nil {
		avg, hit, err := s.cache.Get(ctx, movieID)
		if err != nil {
			logger.Warn("rating cache get failed", zap.String("movie_id", movieID), zap.Error(err))
		} else if hit {
			return avg, nil
		}
	}

	avg, err := s.ratingRepo.Average(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("average rating of %s: %w", movieID, err)
	}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		avg = &rounded
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, movieID, avg); err != nil {
			logger.Warn("rating cache set failed", zap.String("movie_id", movieID), zap.Error(err))
		}
	}
	return avg, nil
}

func (s *ratingService) Rate(ctx context.Context, userID int64, movieID string, in RateInput) (*model.Rating, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrInvalidRating
	}
	rating := &model.Rating{
		UserID:      userID,
		MovieID:     movieID,
		Rating:      in.Rating,
		MovieTitle:  in.MovieTitle,
		MoviePoster: in.MoviePoster,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("rate %s: %w", movieID, err)
	}
	s.invalidate(ctx, movieID)
	return rating, nil
}

func (s *ratingService) Update(ctx context.Context, userID int64, movieID string, value int) (*model.Rating, error) {
	if err := validate.Var(value, "gte=1,lte=10"); err != nil {
		return nil, ErrInvalidRating
	}
	rating, err := s.ratingRepo.Update(ctx, userID, movieID, value)
	if repository.IsNotFound(err) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update rating of %s: %w", movieID, err)
	}
	s.invalidate(ctx, movieID)
	return rating, nil
}

func (s *ratingService) Delete(ctx context.Context, userID int64, movieID string) (*model.Rating, error) {
	rating, err := s.ratingRepo.Delete(ctx, userID, movieID)
	if repository.IsNotFound(err) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete rating of %s: %w", movieID, err)
	}
	s.invalidate(ctx, movieID)
	return rating, nil
}

func (s *ratingService) ListByUser(ctx context.Context, userID int64, movieID string) ([]*model.Rating, error) {
	ratings, err := s.ratingRepo.ListByUser(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("ratings of user %d: %w", userID, err)
	}
	return ratings, nil
}

func (s *ratingService) invalidate(ctx context.Context, movieID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, movieID); err != nil {
		logger.Warn("rating cache invalidate failed", zap.String("movie_id", movieID), zap.Error(err))
	}
}
