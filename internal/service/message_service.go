package service

import (
	"context"
	"fmt"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
}

type CreateMessageInput struct {
	UserID uint
	Text   string
}

type DeleteMessageInput struct {
	UserID    uint
	MessageID uint
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
	}
}

// CreateMessage posts a new warble on behalf of the author. Empty text is a
// store constraint violation; the length cap is checked here before the
// insert.
func (s *MessageService) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	span, ctx := observability.NewSpan(ctx, "message.create")
	defer span.End()
	span.AddAttributes(
		attribute.Int64("user.id", int64(in.UserID)),
		attribute.Int("message.length", len(in.Text)),
	)

	if len(in.Text) > models.MaxMessageLength {
		err := models.NewValidationError(
			fmt.Sprintf("Message too long (max %d characters)", models.MaxMessageLength))
		span.SetError(err)
		return nil, err
	}

	message := &models.Message{Text: in.Text, UserID: in.UserID}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		span.SetError(err)
		return nil, err
	}
	return s.messageRepo.GetByID(ctx, message.ID, in.UserID)
}

func (s *MessageService) GetMessage(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, viewerID)
}

func (s *MessageService) ListUserMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByUser(ctx, userID, limit, offset)
}

// DeleteMessage removes a warble. Only its author may delete it.
func (s *MessageService) DeleteMessage(ctx context.Context, in DeleteMessageInput) error {
	message, err := s.messageRepo.GetByID(ctx, in.MessageID, in.UserID)
	if err != nil {
		return err
	}
	if message.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own messages")
	}
	if err := s.messageRepo.Delete(ctx, in.MessageID); err != nil {
		return err
	}
	cache.InvalidateMessage(ctx, in.MessageID)
	return nil
}

// LikeMessage records a like edge. The message must exist; a duplicate like
// is a constraint violation, never an internal error.
func (s *MessageService) LikeMessage(ctx context.Context, userID, messageID uint) (*models.Message, error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID, userID); err != nil {
		return nil, err
	}
	if err := s.likeRepo.Like(ctx, userID, messageID); err != nil {
		return nil, err
	}
	cache.InvalidateMessage(ctx, messageID)
	return s.messageRepo.GetByID(ctx, messageID, userID)
}

// UnlikeMessage removes the like edge, reporting not found when it is
// absent.
func (s *MessageService) UnlikeMessage(ctx context.Context, userID, messageID uint) (*models.Message, error) {
	if err := s.likeRepo.Unlike(ctx, userID, messageID); err != nil {
		return nil, err
	}
	cache.InvalidateMessage(ctx, messageID)
	return s.messageRepo.GetByID(ctx, messageID, userID)
}

// LikedMessages lists the warbles a user has liked.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.likeRepo.LikedMessagesOf(ctx, userID)
}
