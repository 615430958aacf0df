// Command main runs the database seeder for Moodia.
package main

import (
	"flag"
	"log"

	"moodia/internal/config"
	"moodia/internal/database"
	"moodia/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	moodDays := flag.Int("mood-days", 14, "Days of mood history per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d posts, %d days of moods, clean=%v\n",
		*numUsers, *numPosts, *moodDays, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(db, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		MoodDays: *moodDays,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	log.Printf("%d users created", len(users))

	if err := s.SeedMoodHistory(users, *moodDays); err != nil {
		log.Fatalf("Mood history seeding failed: %v", err)
	}

	posts, err := s.SeedEngagement(users, *numPosts)
	if err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}
	log.Printf("%d posts created", len(posts))

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
