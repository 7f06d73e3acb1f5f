package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/cinesocial/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error)
	List(ctx context.Context) ([]*model.User, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Update 只更新 fields 中给出的列
	Update(ctx context.Context, userID int64, fields map[string]any) (*model.User, error)
	Delete(ctx context.Context, userID int64) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.user_id, u.username, u.name, u.email, u.profile_pic, u.hash, u.created_at,
			(SELECT COUNT(*) FROM follows f WHERE f.user_id = u.user_id) AS following,
			(SELECT COUNT(*) FROM follows f WHERE f.following = u.user_id) AS followers`).
		Where("u.user_id = ?", userID).
		Limit(1).
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &profiles[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	res := make([]*model.User, 0)
	err := r.db.WithContext(ctx).Order("user_id").Find(&res).Error
	return res, err
}

func (r *userRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) Update(ctx context.Context, userID int64, fields map[string]any) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&user, "user_id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := deleteReturning(ctx, r.db, &user, "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &user, nil
}
