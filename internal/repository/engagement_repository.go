package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/cinesocial/internal/model"
)

type PostLikeRepository interface {
	Create(ctx context.Context, userID, postID int64) (*model.PostLike, error)
	Delete(ctx context.Context, userID, postID int64) (*model.PostLike, error)
	ListLikers(ctx context.Context, postID int64) ([]model.UserSummary, error)
	LikedPostIDs(ctx context.Context, userID int64) ([]int64, error)
}

type postLikeRepository struct{ db *gorm.DB }

func NewPostLikeRepository(db *gorm.DB) PostLikeRepository { return &postLikeRepository{db: db} }

func (r *postLikeRepository) Create(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	var like model.PostLike
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 幂等：同一用户对同一帖子只保留一个赞
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	})
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *postLikeRepository) Delete(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	var like model.PostLike
	if err := deleteReturning(ctx, r.db, &like, "user_id = ? AND post_id = ?", userID, postID); err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *postLikeRepository) ListLikers(ctx context.Context, postID int64) ([]model.UserSummary, error) {
	res := make([]model.UserSummary, 0)
	err := r.db.WithContext(ctx).
		Table("post_likes AS pl").
		Select("u.user_id, u.username, u.name, u.profile_pic, pl.created_at").
		Joins("JOIN users AS u ON u.user_id = pl.user_id").
		Where("pl.post_id = ?", postID).
		Scopes(ByCreatedAt("pl", false)).
		Scan(&res).Error
	return res, err
}

func (r *postLikeRepository) LikedPostIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("post_id", &ids).Error
	return ids, err
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error)
	UpdateBody(ctx context.Context, commentID int64, body string) (*model.Comment, error)
	Delete(ctx context.Context, commentID int64) (*model.Comment, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	res := make([]*model.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Scopes(ByCreatedAt("", true)).
		Find(&res).Error
	return res, err
}

func (r *commentRepository) UpdateBody(ctx context.Context, commentID int64, body string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Comment{}).Where("comment_id = ?", commentID).Update("body", body)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&comment, "comment_id = ?", commentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	if err := deleteReturning(ctx, r.db, &comment, "comment_id = ?", commentID); err != nil {
		return nil, err
	}
	return &comment, nil
}
