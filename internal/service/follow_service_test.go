package service

import (
	"context"
	"testing"

	"warbler/internal/models"
)

func TestFollowServiceFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFollowService(noopFollowRepo(), users)
	err := svc.Follow(context.Background(), 1, 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestFollowServiceFollowSelf(t *testing.T) {
	follows := noopFollowRepo()
	follows.followFn = func(context.Context, uint, uint) error {
		return models.NewValidationError("Cannot follow yourself")
	}

	svc := NewFollowService(follows, noopUserRepo())
	err := svc.Follow(context.Background(), 3, 3)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestFollowServiceFollowDuplicate(t *testing.T) {
	follows := noopFollowRepo()
	follows.followFn = func(context.Context, uint, uint) error {
		return models.NewConstraintViolationError("Already following this user", nil)
	}

	svc := NewFollowService(follows, noopUserRepo())
	err := svc.Follow(context.Background(), 1, 2)
	assertAppErrorCode(t, err, "CONSTRAINT_VIOLATION")
}

func TestFollowServiceUnfollowAbsent(t *testing.T) {
	follows := noopFollowRepo()
	follows.unfollowFn = func(context.Context, uint, uint) error {
		return models.NewNotFoundError("Follow", "edge")
	}

	svc := NewFollowService(follows, noopUserRepo())
	err := svc.Unfollow(context.Background(), 1, 2)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestFollowServiceListsRequireExistingUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFollowService(noopFollowRepo(), users)
	if _, err := svc.Followers(context.Background(), 42); !models.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected not found from Followers, got %v", err)
	}
	if _, err := svc.Following(context.Background(), 42); !models.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected not found from Following, got %v", err)
	}
}
