package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/repository"
)

// FollowData 关注列表与粉丝列表
type FollowData struct {
	Followers []model.UserSummary `json:"followers"`
	Following []model.UserSummary `json:"following"`
}

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, userID, following int64) (*model.Follow, error)
	Unfollow(ctx context.Context, userID, following int64) error
	// FollowData order 为 ASC/DESC，按关系建立时间排序
	FollowData(ctx context.Context, userID int64, order string) (*FollowData, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository
	replicator *FanReplicator
}

// NewRelationshipService replicator 为 nil 时粉丝表同步写入
func NewRelationshipService(followRepo repository.FollowRepository, fanRepo repository.FanRepository, replicator *FanReplicator) RelationshipService {
	return &relationshipService{followRepo: followRepo, fanRepo: fanRepo, replicator: replicator}
}

func (s *relationshipService) Follow(ctx context.Context, userID, following int64) (*model.Follow, error) {
	if userID == following {
		return nil, ErrFollowSelf
	}
	follow, err := s.followRepo.Create(ctx, userID, following)
	if err != nil {
		return nil, fmt.Errorf("follow %d -> %d: %w", userID, following, err)
	}
	if s.replicator != nil {
		s.replicator.EnqueueAdd(following, userID)
	} else if err := s.fanRepo.Create(ctx, following, userID); err != nil {
		return nil, fmt.Errorf("record fan %d of %d: %w", userID, following, err)
	}
	return follow, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, userID, following int64) error {
	removed, err := s.followRepo.Delete(ctx, userID, following)
	if err != nil {
		return fmt.Errorf("unfollow %d -> %d: %w", userID, following, err)
	}
	if !removed {
		return ErrFollowNotFound
	}
	if s.replicator != nil {
		s.replicator.EnqueueRemove(following, userID)
	} else if err := s.fanRepo.Delete(ctx, following, userID); err != nil {
		return fmt.Errorf("remove fan %d of %d: %w", userID, following, err)
	}
	return nil
}

func (s *relationshipService) FollowData(ctx context.Context, userID int64, order string) (*FollowData, error) {
	desc, err := ResolveOrder(order)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, userID, desc)
	if err != nil {
		return nil, fmt.Errorf("following of user %d: %w", userID, err)
	}
	followers, err := s.fanRepo.ListFans(ctx, userID, desc)
	if err != nil {
		return nil, fmt.Errorf("fans of user %d: %w", userID, err)
	}
	return &FollowData{Followers: followers, Following: following}, nil
}
