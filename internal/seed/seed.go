package seed

import (
	"fmt"
	"log"
	"math/rand"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	MessagesPerUser int
	ShouldClean     bool
	SkipBcrypt      bool
	MaxDays         int
}

// Seed populates the database with test data: users, their warbles, a
// follow mesh, and scattered likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users, %d messages each...", opts.NumUsers, opts.MessagesPerUser)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	messages := make([]*models.Message, 0, opts.NumUsers*opts.MessagesPerUser)
	for _, user := range users {
		for i := 0; i < opts.MessagesPerUser; i++ {
			message, err := factory.CreateMessage(user)
			if err != nil {
				return fmt.Errorf("failed to create message: %w", err)
			}
			messages = append(messages, message)
		}
	}
	log.Printf("created %d messages", len(messages))

	follows, err := createFollowMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	likes, err := createLikes(factory, users, messages)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	log.Println("Seeding complete")
	return nil
}

// createFollowMesh gives every user a handful of random followees. Self
// edges and duplicates are skipped by construction.
func createFollowMesh(factory *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		count := rand.Intn(len(users)-1) + 1
		if count > 8 {
			count = 8
		}
		seen := map[uint]bool{follower.ID: true}
		for i := 0; i < count; i++ {
			followed := users[rand.Intn(len(users))]
			if seen[followed.ID] {
				continue
			}
			seen[followed.ID] = true
			if err := factory.CreateFollow(follower, followed); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// createLikes sprinkles likes over roughly half the messages.
func createLikes(factory *Factory, users []*models.User, messages []*models.Message) (int, error) {
	created := 0
	for _, message := range messages {
		if rand.Intn(2) == 0 {
			continue
		}
		user := users[rand.Intn(len(users))]
		if err := factory.CreateLike(user, message); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// clearData removes all rows in FK-safe order.
func clearData(db *gorm.DB) error {
	for _, model := range []any{
		&models.Like{},
		&models.Follow{},
		&models.Message{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
