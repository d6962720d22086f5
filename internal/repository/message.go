package repository

import (
	"context"
	"errors"
	"strings"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a new message. Empty text violates the store's NOT NULL
// contract and is rejected as a constraint violation, mirroring what the
// database itself would do on a NULL insert.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if strings.TrimSpace(message.Text) == "" {
		return models.NewConstraintViolationError("Message text must not be empty", nil)
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		if isNotNullError(err) {
			return models.NewConstraintViolationError("Message text must not be empty", err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	var message models.Message
	fetch := func() error {
		if err := r.db.WithContext(ctx).
			Select(`messages.*,
				(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) AS likes_count,
				(SELECT COUNT(*) > 0 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) AS liked`, viewerID).
			Preload("User").
			First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Anonymous reads share one cache entry per message. Liked is
	// viewer-specific, so authenticated reads always hit the database.
	if viewerID == 0 {
		if err := cache.Aside(ctx, cache.MessageKey(id), &message, cache.MessageTTL, fetch); err != nil {
			return nil, err
		}
		return &message, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
