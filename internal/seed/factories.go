// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage constructs and persists a sample `models.Message` authored
// by the given user, with a realistic created_at spread.
func (f *Factory) CreateMessage(user *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	text := gofakeit.Sentence(gofakeit.Number(3, 18))
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}
	message := &models.Message{
		Text:   text,
		UserID: user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := gofakeit.Number(0, maxDays-1)
	hoursBack := gofakeit.Number(0, 23)
	message.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateFollow persists a follow edge from follower to followed.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	return f.db.Create(follow).Error
}

// CreateLike persists a like from `user` on `message`.
func (f *Factory) CreateLike(user *models.User, message *models.Message) error {
	like := &models.Like{
		UserID:    user.ID,
		MessageID: message.ID,
	}
	return f.db.Create(like).Error
}
