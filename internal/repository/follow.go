package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the follow edge set and the derived views over it.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error)
	FollowersOf(ctx context.Context, userID uint) ([]models.User, error)
	FollowingOf(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the (follower, followed) edge. A self-follow is rejected
// outright; a duplicate edge surfaces the store's uniqueness violation so
// concurrent duplicate requests resolve to "already following" rather than
// silently succeeding twice.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot follow yourself")
	}

	edge := &models.Follow{FollowerID: followerID, FollowedID: followedID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConstraintViolationError("Already following this user", err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Unfollow removes the (follower, followed) edge. Removing an absent edge
// is reported as NotFound.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followedID)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// IsFollowedBy reports whether other is following user; it is the mirror
// view of IsFollowing.
func (r *followRepository) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return r.IsFollowing(ctx, otherID, userID)
}

func (r *followRepository) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followed_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followed_id").
		Where("f.follower_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
