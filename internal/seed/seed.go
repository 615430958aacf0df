package seed

import (
	"fmt"
	"log"
	"time"

	"moodia/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Seeder orchestrates the population of a development database with a
// realistic social mesh: users, follow edges, mood histories, posts,
// reactions, and comments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll deletes all seeded data. Tables are emptied in dependency order
// so foreign keys never dangle mid-clear.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	targets := []any{
		&models.Reaction{},
		&models.Comment{},
		&models.Post{},
		&models.MoodSelection{},
		&models.Follow{},
		&models.User{},
	}
	for _, target := range targets {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(target).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", target, err)
		}
	}
	return nil
}

// SeedSocialMesh creates count users and a follow graph between them. Each
// user follows a random handful of the others, never themselves.
func (s *Seeder) SeedSocialMesh(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include a known login for manual testing
	if count >= 1 {
		demo, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = "demo"
			u.Email = "demo@example.com"
			u.Bio = "Here to check the vibe."
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create demo user: %w", err)
		}
		users = append(users, *demo)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	if err := s.seedFollowGraph(users); err != nil {
		return nil, err
	}

	return users, nil
}

// seedFollowGraph gives every user a random set of people to follow.
func (s *Seeder) seedFollowGraph(users []models.User) error {
	for i := range users {
		follower := users[i]
		others := lo.Filter(users, func(u models.User, _ int) bool {
			return u.ID != follower.ID
		})
		if len(others) == 0 {
			continue
		}

		fanout := s.factory.rnd.Intn(len(others)) + 1
		if fanout > 8 {
			fanout = 8
		}
		for _, followee := range lo.Samples(others, fanout) {
			if err := s.factory.CreateFollow(&follower, &followee); err != nil {
				return fmt.Errorf("failed to create follow edge: %w", err)
			}
		}
	}
	return nil
}

// SeedMoodHistory gives each user a mood selection on most of the last
// `days` calendar days, producing realistic streaks with occasional gaps.
func (s *Seeder) SeedMoodHistory(users []models.User, days int) error {
	if days <= 0 {
		days = 14
	}
	now := time.Now()

	for i := range users {
		for d := 0; d < days; d++ {
			// ~80% of days get a selection so streaks break naturally
			if s.factory.rnd.Float32() >= 0.8 {
				continue
			}
			day := now.AddDate(0, 0, -d)
			if _, err := s.factory.CreateMoodSelection(&users[i], s.factory.randomMood(), day); err != nil {
				return fmt.Errorf("failed to create mood selection: %w", err)
			}
		}
	}
	return nil
}

// SeedEngagement creates count posts spread across the given users, then
// layers reactions and comments on top of them.
func (s *Seeder) SeedEngagement(users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.factory.rnd.Intn(len(users))]
		post, err := s.factory.CreatePost(&author, s.factory.randomMood())
		if err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, *post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	if err := s.seedReactions(users, posts); err != nil {
		return nil, err
	}
	if err := s.seedComments(users, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *Seeder) seedReactions(users []models.User, posts []models.Post) error {
	for i := range posts {
		reactors := lo.Samples(users, s.factory.rnd.Intn(len(users)+1))
		for j := range reactors {
			if err := s.factory.CreateReaction(&reactors[j], &posts[i], s.factory.randomReactionKind()); err != nil {
				return fmt.Errorf("failed to create reaction: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedComments(users []models.User, posts []models.Post) error {
	for i := range posts {
		numComments := s.factory.rnd.Intn(5)
		for j := 0; j < numComments; j++ {
			commenter := users[s.factory.rnd.Intn(len(users))]
			if _, err := s.factory.CreateComment(&commenter, &posts[i]); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}
	return nil
}
