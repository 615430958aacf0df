package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"moodia/internal/cache"
	"moodia/internal/config"
	"moodia/internal/middleware"
	"moodia/internal/models"
	"moodia/internal/moods"
	"moodia/internal/repository"

	"github.com/cenkalti/backoff/v4"
)

// PostService implements mood-tagged posting, the mood-gated feed, and the
// reaction ledger on top of the post and reaction repositories.
type PostService struct {
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	moodSvc      *MoodService

	exclusiveReactions bool
	feedPageSize       int
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Context  string
	ImageURL string
}

type FeedInput struct {
	Mood          string
	Limit         int
	Offset        int
	CurrentUserID uint
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Content     string
	Context     string
	Highlighted *bool
}

func NewPostService(
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	moodSvc *MoodService,
	cfg *config.Config,
) *PostService {
	exclusive := true
	pageSize := 20
	if cfg != nil {
		exclusive = cfg.ReactionsExclusive
		if cfg.FeedPageSize > 0 {
			pageSize = cfg.FeedPageSize
		}
	}
	return &PostService{
		postRepo:           postRepo,
		reactionRepo:       reactionRepo,
		moodSvc:            moodSvc,
		exclusiveReactions: exclusive,
		feedPageSize:       pageSize,
	}
}

// CreatePost publishes a post tagged with the author's active mood. Without a
// selection for today the post is rejected, so every post carries a mood that
// was true when it was written.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 5000
	const maxContextLen = 140

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}
	if len(in.Context) > maxContextLen {
		return nil, models.NewValidationError("Context too long (max 140 characters)")
	}

	selection, err := s.moodSvc.RequireActiveMood(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Mood:      selection.Mood,
		Context:   strings.TrimSpace(in.Context),
		ImageURL:  in.ImageURL,
		ImageHash: extractImageHash(in.ImageURL),
		UserID:    in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// Feed returns the reverse-chronological feed, optionally filtered to one
// mood. Browsing requires an active mood selection: readers state how they
// feel before they see how everyone else does.
func (s *PostService) Feed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	if _, err := s.moodSvc.RequireActiveMood(ctx, in.CurrentUserID); err != nil {
		return nil, err
	}
	if in.Mood != "" && !moods.Valid(in.Mood) {
		return nil, models.NewValidationError("Unknown mood: " + in.Mood)
	}

	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = s.feedPageSize
	}

	// The unfiltered first page is the hot path; serve it from cache and
	// re-attach the requesting user's reactions afterwards.
	if in.Mood == "" && in.Offset == 0 && limit == s.feedPageSize {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.FeedFirstPageKey, &posts, cache.FeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.fetchFeed(ctx, "", limit, 0, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		if err := s.attachMyReactions(ctx, posts, in.CurrentUserID); err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.fetchFeed(ctx, in.Mood, limit, in.Offset, in.CurrentUserID)
}

// fetchFeed reads one feed page, retrying briefly on transient failures.
// Reads are idempotent so a retry can never duplicate anything.
func (s *PostService) fetchFeed(ctx context.Context, mood string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	operation := func() error {
		var err error
		posts, err = s.postRepo.Feed(ctx, mood, limit, offset, currentUserID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code != "INTERNAL_ERROR" {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newFeedBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return posts, nil
}

func newFeedBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 3 * time.Second
	return b
}

func (s *PostService) attachMyReactions(ctx context.Context, posts []*models.Post, userID uint) error {
	if userID == 0 {
		return nil
	}
	for _, p := range posts {
		kinds, err := s.reactionRepo.KindsForUser(ctx, userID, p.ID)
		if err != nil {
			return err
		}
		p.MyReactions = kinds
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Context != "" {
		post.Context = in.Context
	}
	if in.Highlighted != nil {
		post.Highlighted = *in.Highlighted
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// ToggleReaction flips the user's reaction of the given kind on a post and
// returns the refreshed post. The same call is its own inverse: reacting
// twice with the same kind restores the previous state exactly.
func (s *PostService) ToggleReaction(ctx context.Context, userID, postID uint, kind string) (*models.Post, error) {
	if !models.ValidReactionKind(kind) {
		return nil, models.NewValidationError("Unknown reaction kind: " + kind)
	}

	// Post must exist (and be visible) before touching the ledger.
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	added, err := s.reactionRepo.Toggle(ctx, userID, postID, models.ReactionKind(kind), s.exclusiveReactions)
	if err != nil {
		return nil, err
	}

	direction := "removed"
	if added {
		direction = "added"
	}
	middleware.ReactionToggles.WithLabelValues(kind, direction).Inc()

	return s.postRepo.GetByID(ctx, postID, userID)
}

func extractImageHash(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "/media/i/") {
		parts := strings.Split(strings.TrimPrefix(trimmed, "/media/i/"), "/")
		if len(parts) > 0 && isLikelySHA256(parts[0]) {
			return parts[0]
		}
	}
	return ""
}

func isLikelySHA256(v string) bool {
	if len(v) != 64 {
		return false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
