// Command main runs the database seeder for Warbler.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	messagesPerUser := flag.Int("messages", 5, "Number of messages per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding (dev only)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:        *numUsers,
		MessagesPerUser: *messagesPerUser,
		ShouldClean:     *shouldClean,
		SkipBcrypt:      *skipBcrypt,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Test users have the password: password123")
}
