package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// BookmarkInput 收藏/看过参数
type BookmarkInput struct {
	MovieID     string `json:"movie_id" validate:"required"`
	MovieTitle  string `json:"movie_title" validate:"required"`
	MoviePoster string `json:"movie_poster"`
}

// LibraryService 用户的电影书签：收藏与看过
type LibraryService interface {
	Favourites(ctx context.Context, userID int64, order string) ([]*model.Favourite, error)
	AddFavourite(ctx context.Context, userID int64, in BookmarkInput) (*model.Favourite, error)
	RemoveFavourite(ctx context.Context, userID int64, movieID string) (*model.Favourite, error)

	Watched(ctx context.Context, userID int64, order string) ([]*model.Watched, error)
	AddWatched(ctx context.Context, userID int64, in BookmarkInput) (*model.Watched, error)
	RemoveWatched(ctx context.Context, userID int64, movieID string) (*model.Watched, error)
}

type libraryService struct {
	userRepo      repository.UserRepository
	favouriteRepo repository.BookmarkRepository[model.Favourite]
	watchedRepo   repository.BookmarkRepository[model.Watched]
}

func NewLibraryService(
	userRepo repository.UserRepository,
	favouriteRepo repository.BookmarkRepository[model.Favourite],
	watchedRepo repository.BookmarkRepository[model.Watched],
) LibraryService {
	return &libraryService{userRepo: userRepo, favouriteRepo: favouriteRepo, watchedRepo: watchedRepo}
}

func (s *libraryService) Favourites(ctx context.Context, userID int64, order string) ([]*model.Favourite, error) {
	return listBookmarks(ctx, s, s.favouriteRepo, userID, order)
}

func (s *libraryService) AddFavourite(ctx context.Context, userID int64, in BookmarkInput) (*model.Favourite, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	row := &model.Favourite{UserID: userID, MovieID: in.MovieID, MovieTitle: in.MovieTitle, MoviePoster: in.MoviePoster}
	if err := s.favouriteRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("add favourite: %w", err)
	}
	return row, nil
}

func (s *libraryService) RemoveFavourite(ctx context.Context, userID int64, movieID string) (*model.Favourite, error) {
	row, err := s.favouriteRepo.Delete(ctx, userID, movieID)
	if repository.IsNotFound(err) {
		return nil, ErrFavouriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("remove favourite: %w", err)
	}
	return row, nil
}

func (s *libraryService) Watched(ctx context.Context, userID int64, order string) ([]*model.Watched, error) {
	return listBookmarks(ctx, s, s.watchedRepo, userID, order)
}

func (s *libraryService) AddWatched(ctx context.Context, userID int64, in BookmarkInput) (*model.Watched, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	row := &model.Watched{UserID: userID, MovieID: in.MovieID, MovieTitle: in.MovieTitle, MoviePoster: in.MoviePoster}
	if err := s.watchedRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("add watched: %w", err)
	}
	return row, nil
}

func (s *libraryService) RemoveWatched(ctx context.Context, userID int64, movieID string) (*model.Watched, error) {
	row, err := s.watchedRepo.Delete(ctx, userID, movieID)
	if repository.IsNotFound(err) {
		return nil, ErrWatchedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("remove watched: %w", err)
	}
	return row, nil
}

// listBookmarks 校验 order 与用户存在后列出书签
func listBookmarks[T model.Favourite | model.Watched](
	ctx context.Context, s *libraryService, repo repository.BookmarkRepository[T], userID int64, order string,
) ([]*T, error) {
	desc, err := ResolveOrder(order)
	if err != nil {
		return nil, err
	}
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	rows, err := repo.ListByUser(ctx, userID, desc)
	if err != nil {
		return nil, fmt.Errorf("bookmarks of user %d: %w", userID, err)
	}
	return rows, nil
}
