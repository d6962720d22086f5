package service

import (
	"context"

	"warbler/internal/models"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDWithStatsFn func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithStats(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithStatsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithStatsFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn     func(context.Context, *models.Message) error
	getByIDFn    func(context.Context, uint, uint) (*models.Message, error)
	listByUserFn func(context.Context, uint, int, int) ([]models.Message, error)
	deleteFn     func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *messageRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:     func(context.Context, *models.Message) error { return nil },
		getByIDFn:    func(context.Context, uint, uint) (*models.Message, error) { return &models.Message{}, nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	followFn       func(context.Context, uint, uint) error
	unfollowFn     func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	isFollowedByFn func(context.Context, uint, uint) (bool, error)
	followersOfFn  func(context.Context, uint) ([]models.User, error)
	followingOfFn  func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followedID uint) error {
	return s.followFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.unfollowFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.isFollowedByFn(ctx, userID, otherID)
}
func (s *followRepoStub) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersOfFn(ctx, userID)
}
func (s *followRepoStub) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingOfFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:       func(context.Context, uint, uint) error { return nil },
		unfollowFn:     func(context.Context, uint, uint) error { return nil },
		isFollowingFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
		isFollowedByFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersOfFn:  func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingOfFn:  func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	likedMessagesOfFn func(context.Context, uint) ([]models.Message, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID, messageID uint) error {
	return s.likeFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.unlikeFn(ctx, userID, messageID)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, messageID)
}
func (s *likeRepoStub) LikedMessagesOf(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likedMessagesOfFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn:            func(context.Context, uint, uint) error { return nil },
		unlikeFn:          func(context.Context, uint, uint) error { return nil },
		isLikedFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		likedMessagesOfFn: func(context.Context, uint) ([]models.Message, error) { return nil, nil },
	}
}
