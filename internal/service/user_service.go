package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// RegisterInput 注册参数
type RegisterInput struct {
	Username   string  `json:"username" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required"`
	ProfilePic *string `json:"profile_pic"`
}

// UpdateUserInput 资料修改，未给出的字段保持不变
type UpdateUserInput struct {
	Username   *string `json:"username"`
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	ProfilePic *string `json:"profile_pic"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	UsernameFree(ctx context.Context, username string) (bool, error)
	Get(ctx context.Context, userID int64) (*model.UserProfile, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, userID int64, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, userID int64) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cost     int
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, cost: bcrypt.DefaultCost}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	taken, err := s.userRepo.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Username:   in.Username,
		Name:       in.Name,
		Email:      in.Email,
		ProfilePic: in.ProfilePic,
		Hash:       string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) UsernameFree(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, ErrMissingFields
	}
	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return !taken, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.UserProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if repository.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return profile, nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, userID int64, in UpdateUserInput) (*model.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}
	fields := map[string]any{}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.ProfilePic != nil {
		fields["profile_pic"] = *in.ProfilePic
	}
	user, err := s.userRepo.Update(ctx, userID, fields)
	if repository.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.Delete(ctx, userID)
	if repository.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete user %d: %w", userID, err)
	}
	return user, nil
}
