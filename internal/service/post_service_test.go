package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"moodia/internal/models"
)

func activeMoodService(mood string) *MoodService {
	repo := noopMoodRepo()
	repo.getForDayFn = func(_ context.Context, userID uint, day string) (*models.MoodSelection, error) {
		return &models.MoodSelection{UserID: userID, Day: day, Mood: mood, SelectedAt: time.Now()}, nil
	}
	return NewMoodService(repo, false)
}

func noMoodService() *MoodService {
	return NewMoodService(noopMoodRepo(), false)
}

func TestPostServiceCreateRequiresActiveMood(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopReactionRepo(), noMoodService(), nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "Quiet morning",
		Content: "Working through a reading list.",
	})
	if err == nil {
		t.Fatal("expected mood-required error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "MOOD_REQUIRED" {
		t.Fatalf("expected mood-required app error, got %#v", err)
	}
}

func TestPostServiceCreateTagsActiveMood(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, post *models.Post) error {
		created = post
		created.ID = 42
		return nil
	}
	repo.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return created, nil
	}

	svc := NewPostService(repo, noopReactionRepo(), activeMoodService("focus"), nil)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "Deep work",
		Content: "Two hours of uninterrupted writing.",
		Context: "thesis sprint",
	})
	if err != nil {
		t.Fatal(err)
	}
	if post.Mood != "focus" {
		t.Fatalf("expected post tagged with active mood, got %q", post.Mood)
	}
	if post.Context != "thesis sprint" {
		t.Fatalf("unexpected context %q", post.Context)
	}
}

func TestPostServiceCreateValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopReactionRepo(), activeMoodService("focus"), nil)

	tests := []struct {
		name string
		in   CreatePostInput
	}{
		{name: "missing title", in: CreatePostInput{UserID: 1, Content: "body"}},
		{name: "missing content", in: CreatePostInput{UserID: 1, Title: "t"}},
		{name: "title too long", in: CreatePostInput{UserID: 1, Title: string(make([]byte, 301)), Content: "body"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), tt.in)
			var appErr *models.AppError
			if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected validation app error, got %#v", err)
			}
		})
	}
}

func TestPostServiceFeedRequiresActiveMood(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopReactionRepo(), noMoodService(), nil)

	_, err := svc.Feed(context.Background(), FeedInput{CurrentUserID: 1})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "MOOD_REQUIRED" {
		t.Fatalf("expected mood-required app error, got %#v", err)
	}
}

func TestPostServiceFeedMoodFilter(t *testing.T) {
	repo := noopPostRepo()
	var gotMood string
	repo.feedFn = func(_ context.Context, mood string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
		gotMood = mood
		return []*models.Post{{ID: 1, Mood: mood}}, nil
	}

	svc := NewPostService(repo, noopReactionRepo(), activeMoodService("chill"), nil)

	posts, err := svc.Feed(context.Background(), FeedInput{Mood: "explorer", CurrentUserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if gotMood != "explorer" {
		t.Fatalf("expected repo filtered by explorer, got %q", gotMood)
	}
	if len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}
}

func TestPostServiceFeedUnknownMood(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopReactionRepo(), activeMoodService("chill"), nil)

	_, err := svc.Feed(context.Background(), FeedInput{Mood: "melancholy", CurrentUserID: 1})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestPostServiceToggleReactionSelfInverse(t *testing.T) {
	// In-memory ledger: toggling the same kind twice restores the initial state.
	ledger := map[string]bool{}
	reactions := noopReactionRepo()
	reactions.toggleFn = func(_ context.Context, userID, postID uint, kind models.ReactionKind, _ bool) (bool, error) {
		key := string(kind)
		ledger[key] = !ledger[key]
		return ledger[key], nil
	}

	svc := NewPostService(noopPostRepo(), reactions, activeMoodService("focus"), nil)
	ctx := context.Background()

	if _, err := svc.ToggleReaction(ctx, 1, 10, "love"); err != nil {
		t.Fatal(err)
	}
	if !ledger["love"] {
		t.Fatal("expected reaction present after first toggle")
	}
	if _, err := svc.ToggleReaction(ctx, 1, 10, "love"); err != nil {
		t.Fatal(err)
	}
	if ledger["love"] {
		t.Fatal("expected reaction absent after second toggle")
	}
}

func TestPostServiceToggleReactionUnknownKind(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopReactionRepo(), activeMoodService("focus"), nil)

	_, err := svc.ToggleReaction(context.Background(), 1, 10, "meh")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestPostServiceToggleReactionMissingPost(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(repo, noopReactionRepo(), activeMoodService("focus"), nil)

	_, err := svc.ToggleReaction(context.Background(), 1, 99, "love")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestPostServiceUpdateNotOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 7, UserID: 2}, nil
	}

	svc := NewPostService(repo, noopReactionRepo(), activeMoodService("focus"), nil)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 7, Title: "hijack"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}

func TestPostServiceDeleteNotOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 7, UserID: 2}, nil
	}

	svc := NewPostService(repo, noopReactionRepo(), activeMoodService("focus"), nil)

	err := svc.DeletePost(context.Background(), 1, 7)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}
