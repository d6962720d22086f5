package server

import (
	"context"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithStats(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followedID uint) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followedID uint) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Like(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockLikeRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockLikeRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedMessagesOf(ctx context.Context, userID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

type testMocks struct {
	users    *MockUserRepository
	messages *MockMessageRepository
	follows  *MockFollowRepository
	likes    *MockLikeRepository
}

// newTestServer builds a Server over mock repositories. No database, Redis,
// or metrics middleware is involved.
func newTestServer() (*Server, *testMocks) {
	mocks := &testMocks{
		users:    new(MockUserRepository),
		messages: new(MockMessageRepository),
		follows:  new(MockFollowRepository),
		likes:    new(MockLikeRepository),
	}

	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-used-only-in-tests",
			Port:      "0",
		},
		userRepo:    mocks.users,
		messageRepo: mocks.messages,
		followRepo:  mocks.follows,
		likeRepo:    mocks.likes,
	}
	s.authService = service.NewAuthService(mocks.users)
	s.userService = service.NewUserService(mocks.users)
	s.followService = service.NewFollowService(mocks.follows, mocks.users)
	s.messageService = service.NewMessageService(mocks.messages, mocks.likes, mocks.users)

	return s, mocks
}
