package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// CreatePostInput 发帖参数
type CreatePostInput struct {
	Author      string `json:"author" validate:"required"`
	UserID      int64  `json:"user_id" validate:"required"`
	MovieTitle  string `json:"movie_title" validate:"required"`
	MovieID     string `json:"movie_id" validate:"required"`
	Released    string `json:"released"`
	MoviePoster string `json:"movie_poster"`
	Body        string `json:"body" validate:"required"`
	MediaType   string `json:"media_type"`
}

// PostService 帖子流组装与帖子维护
type PostService interface {
	// ComposeFeed 帖子流；viewerID 非空时只看本人及其关注的人，并附上本人评分
	ComposeFeed(ctx context.Context, viewerID *int64, params FeedParams) ([]model.PostView, error)
	GetPost(ctx context.Context, postID int64) (*model.PostDetail, error)
	PostsByMovie(ctx context.Context, movieID string, params FeedParams) ([]model.PostView, error)
	PostsByUser(ctx context.Context, userID int64) ([]model.PostView, error)
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	UpdateBody(ctx context.Context, postID int64, body string) (*model.Post, error)
	Delete(ctx context.Context, postID int64) (*model.Post, error)
	ListGenres(ctx context.Context, postID int64) ([]string, error)
	AddGenre(ctx context.Context, postID int64, genre string) (*model.PostGenre, error)
	RemoveGenre(ctx context.Context, postID int64, genre string) (*model.PostGenre, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) ComposeFeed(ctx context.Context, viewerID *int64, params FeedParams) ([]model.PostView, error) {
	f, err := ResolveFeedFilter(params)
	if err != nil {
		return nil, err
	}
	q := repository.FeedQuery{
		ViewerID:    viewerID,
		FollowScope: viewerID != nil,
		GenreID:     f.GenreID,
		Limit:       f.Limit,
		Offset:      f.Offset,
	}
	posts, err := s.postRepo.ListViews(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("compose feed: %w", err)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, postID int64) (*model.PostDetail, error) {
	view, err := s.postRepo.GetView(ctx, postID, nil)
	if repository.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", postID, err)
	}
	genres, err := s.postRepo.ListGenres(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list genres of post %d: %w", postID, err)
	}
	return &model.PostDetail{PostView: *view, Genres: genres}, nil
}

func (s *postService) PostsByMovie(ctx context.Context, movieID string, params FeedParams) ([]model.PostView, error) {
	f, err := ResolveFeedFilter(params)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListViews(ctx, repository.FeedQuery{
		MovieID: movieID,
		GenreID: f.GenreID,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("posts of movie %s: %w", movieID, err)
	}
	return posts, nil
}

func (s *postService) PostsByUser(ctx context.Context, userID int64) ([]model.PostView, error) {
	posts, err := s.postRepo.ListViews(ctx, repository.FeedQuery{AuthorID: &userID})
	if err != nil {
		return nil, fmt.Errorf("posts of user %d: %w", userID, err)
	}
	return posts, nil
}

func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	post := &model.Post{
		Author:      in.Author,
		UserID:      in.UserID,
		MovieTitle:  in.MovieTitle,
		MovieID:     in.MovieID,
		Released:    in.Released,
		MoviePoster: in.MoviePoster,
		Body:        in.Body,
		MediaType:   in.MediaType,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) UpdateBody(ctx context.Context, postID int64, body string) (*model.Post, error) {
	if body == "" {
		return nil, ErrMissingFields
	}
	post, err := s.postRepo.UpdateBody(ctx, postID, body)
	if repository.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := s.postRepo.Delete(ctx, postID)
	if repository.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete post %d: %w", postID, err)
	}
	return post, nil
}

func (s *postService) ListGenres(ctx context.Context, postID int64) ([]string, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	genres, err := s.postRepo.ListGenres(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list genres of post %d: %w", postID, err)
	}
	return genres, nil
}

func (s *postService) AddGenre(ctx context.Context, postID int64, genre string) (*model.PostGenre, error) {
	id, err := ResolveGenre(genre)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	tag, err := s.postRepo.AddGenre(ctx, postID, id)
	if err != nil {
		return nil, fmt.Errorf("tag post %d: %w", postID, err)
	}
	return tag, nil
}

func (s *postService) RemoveGenre(ctx context.Context, postID int64, genre string) (*model.PostGenre, error) {
	id, err := ResolveGenre(genre)
	if err != nil {
		return nil, err
	}
	tag, err := s.postRepo.RemoveGenre(ctx, postID, id)
	if repository.IsNotFound(err) {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("untag post %d: %w", postID, err)
	}
	return tag, nil
}

func (s *postService) ensurePost(ctx context.Context, postID int64) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post %d: %w", postID, err)
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}
