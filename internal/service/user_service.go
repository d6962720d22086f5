package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Email    string
	Bio      string
	ImageURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile loads a user together with follower, following, and message
// counts for the profile page.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithStats(ctx, id)
}

// UpdateProfile applies a partial edit. Username and email changes go back
// through the same format validation as signup; uniqueness is re-checked by
// the store and surfaces as a constraint violation.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, user.ID)
	return user, nil
}

// DeleteAccount removes the user and everything hanging off them: their
// messages, likes given and received, and follow edges in both directions.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	span, ctx := observability.NewSpan(ctx, "user.delete_account")
	defer span.End()
	span.AddAttributes(attribute.Int64("user.id", int64(userID)))

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		span.SetError(err)
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		span.SetError(err)
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
