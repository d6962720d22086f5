package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the like edge set and the derived views over it.
type LikeRepository interface {
	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	LikedMessagesOf(ctx context.Context, userID uint) ([]models.Message, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like inserts the (user, message) edge. Duplicate likes surface the
// store's uniqueness violation; callers treat it as "already liked".
func (r *likeRepository) Like(ctx context.Context, userID, messageID uint) error {
	edge := &models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConstraintViolationError("Already liked this message", err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Unlike removes the (user, message) edge, reporting NotFound if absent.
func (r *likeRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", messageID)
	}
	return nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) LikedMessagesOf(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Table("messages").
		Joins("JOIN likes l ON messages.id = l.message_id").
		Where("l.user_id = ? AND messages.deleted_at IS NULL", userID).
		Order("messages.id").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
