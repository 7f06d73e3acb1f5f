package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// CreateCommentInput 评论参数
type CreateCommentInput struct {
	UserID int64  `json:"user_id" validate:"required"`
	Author string `json:"author" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// EngagementService 点赞与评论
type EngagementService interface {
	Like(ctx context.Context, userID, postID int64) (*model.PostLike, error)
	Unlike(ctx context.Context, userID, postID int64) (*model.PostLike, error)
	Likers(ctx context.Context, postID int64) ([]model.UserSummary, error)
	LikedPosts(ctx context.Context, userID int64) ([]int64, error)

	Comments(ctx context.Context, postID int64) ([]*model.Comment, error)
	AddComment(ctx context.Context, postID int64, in CreateCommentInput) (*model.Comment, error)
	EditComment(ctx context.Context, commentID int64, body string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) (*model.Comment, error)
}

type engagementService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.PostLikeRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(postRepo repository.PostRepository, likeRepo repository.PostLikeRepository, commentRepo repository.CommentRepository) EngagementService {
	return &engagementService{postRepo: postRepo, likeRepo: likeRepo, commentRepo: commentRepo}
}

func (s *engagementService) Like(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrMissingFields
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	like, err := s.likeRepo.Create(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("like post %d: %w", postID, err)
	}
	return like, nil
}

func (s *engagementService) Unlike(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	like, err := s.likeRepo.Delete(ctx, userID, postID)
	if repository.IsNotFound(err) {
		return nil, ErrLikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unlike post %d: %w", postID, err)
	}
	return like, nil
}

func (s *engagementService) Likers(ctx context.Context, postID int64) ([]model.UserSummary, error) {
	users, err := s.likeRepo.ListLikers(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("likers of post %d: %w", postID, err)
	}
	return users, nil
}

func (s *engagementService) LikedPosts(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.likeRepo.LikedPostIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked posts of user %d: %w", userID, err)
	}
	return ids, nil
}

func (s *engagementService) Comments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *engagementService) AddComment(ctx context.Context, postID int64, in CreateCommentInput) (*model.Comment, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comment := &model.Comment{UserID: in.UserID, PostID: postID, Author: in.Author, Body: in.Body}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("comment on post %d: %w", postID, err)
	}
	return comment, nil
}

func (s *engagementService) EditComment(ctx context.Context, commentID int64, body string) (*model.Comment, error) {
	if body == "" {
		return nil, ErrMissingFields
	}
	comment, err := s.commentRepo.UpdateBody(ctx, commentID, body)
	if repository.IsNotFound(err) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("edit comment %d: %w", commentID, err)
	}
	return comment, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.Delete(ctx, commentID)
	if repository.IsNotFound(err) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return comment, nil
}

func (s *engagementService) ensurePost(ctx context.Context, postID int64) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post %d: %w", postID, err)
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}
