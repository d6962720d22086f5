package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates a directed edge from follower to followed. The target must
// exist, the edge must not already, and nobody follows themselves.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}
	if err := s.followRepo.Follow(ctx, followerID, followedID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return nil
}

// Unfollow removes the edge. An absent edge is reported as not found rather
// than silently ignored.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if err := s.followRepo.Unfollow(ctx, followerID, followedID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followedID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.FollowersOf(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.FollowingOf(ctx, userID)
}
