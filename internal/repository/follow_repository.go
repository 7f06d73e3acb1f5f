package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/cinesocial/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, userID, following int64) (*model.Follow, error)
	Delete(ctx context.Context, userID, following int64) (bool, error)
	Exists(ctx context.Context, userID, following int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, desc bool) ([]model.UserSummary, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, userID, following int64) (*model.Follow, error) {
	var f model.Follow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 幂等：重复关注不报错，返回已有的关注关系
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Follow{UserID: userID, Following: following}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND following = ?", userID, following).First(&f).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, following int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND following = ?", userID, following).
		Delete(&model.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) Exists(ctx context.Context, userID, following int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND following = ?", userID, following).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListFollowing userID 关注的人，按关注时间排序
func (r *followRepository) ListFollowing(ctx context.Context, userID int64, desc bool) ([]model.UserSummary, error) {
	res := make([]model.UserSummary, 0)
	err := r.db.WithContext(ctx).
		Table("follows AS f").
		Select("u.user_id, u.username, u.name, u.profile_pic, f.created_at").
		Joins("JOIN users AS u ON u.user_id = f.following").
		Where("f.user_id = ?", userID).
		Scopes(ByCreatedAt("f", desc)).
		Scan(&res).Error
	return res, err
}
