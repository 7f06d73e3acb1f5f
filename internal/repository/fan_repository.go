package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/cinesocial/internal/model"
)

type FanRepository interface {
	Create(ctx context.Context, userID, fanID int64) error
	Delete(ctx context.Context, userID, fanID int64) error
	ListFans(ctx context.Context, userID int64, desc bool) ([]model.UserSummary, error)
}

type fanRepository struct{ db *gorm.DB }

func NewFanRepository(db *gorm.DB) FanRepository { return &fanRepository{db: db} }

func (r *fanRepository) Create(ctx context.Context, userID, fanID int64) error {
	f := &model.Fan{UserID: userID, FanID: fanID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *fanRepository) Delete(ctx context.Context, userID, fanID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND fan_id = ?", userID, fanID).Delete(&model.Fan{}).Error
}

// ListFans userID 的粉丝（来自冗余表）
func (r *fanRepository) ListFans(ctx context.Context, userID int64, desc bool) ([]model.UserSummary, error) {
	res := make([]model.UserSummary, 0)
	err := r.db.WithContext(ctx).
		Table("fans").
		Select("users.user_id, users.username, users.name, users.profile_pic, fans.created_at").
		Joins("JOIN users ON fans.fan_id = users.user_id").
		Where("fans.user_id = ?", userID).
		Scopes(ByCreatedAt("fans", desc)).
		Scan(&res).Error
	return res, err
}
