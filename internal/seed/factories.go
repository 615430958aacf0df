// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"moodia/internal/models"
	"moodia/internal/moods"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder and its factories.
type Options struct {
	NumUsers   int
	NumPosts   int
	MoodDays   int
	SkipBcrypt bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rnd: rnd}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Location: gofakeit.City(),
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

// CreatePost constructs and persists a sample `models.Post` for the given
// user, tagged with the given mood.
func (f *Factory) CreatePost(user *models.User, mood string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		Mood:    mood,
		UserID:  user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MoodDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	if f.rnd.Float32() < 0.3 {
		post.Context = gofakeit.Sentence(6)
	}
	if f.rnd.Float32() < 0.4 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction from `user` on `post`. Re-seeding the
// same triple is a no-op thanks to the unique index.
func (f *Factory) CreateReaction(user *models.User, post *models.Post, kind models.ReactionKind) error {
	reaction := &models.Reaction{
		UserID: user.ID,
		PostID: post.ID,
		Kind:   kind,
	}
	return f.db.Where(models.Reaction{UserID: user.ID, PostID: post.ID, Kind: kind}).
		FirstOrCreate(reaction).Error
}

// CreateFollow persists a follow edge from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Where(models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).
		FirstOrCreate(follow).Error
}

// CreateMoodSelection persists a mood selection for the given calendar day.
func (f *Factory) CreateMoodSelection(user *models.User, moodID string, day time.Time) (*models.MoodSelection, error) {
	selection := &models.MoodSelection{
		UserID:     user.ID,
		Day:        models.DayOf(day),
		Mood:       moodID,
		SelectedAt: day,
	}
	if err := f.db.Create(selection).Error; err != nil {
		return nil, err
	}
	return selection, nil
}

// randomMood returns a random mood ID from the registry.
func (f *Factory) randomMood() string {
	all := moods.All()
	return all[f.rnd.Intn(len(all))].ID
}

// randomReactionKind returns a random member of the fixed reaction set.
func (f *Factory) randomReactionKind() models.ReactionKind {
	return models.ReactionKinds[f.rnd.Intn(len(models.ReactionKinds))]
}
