// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"moodia/internal/cache"
	"moodia/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Feed(ctx context.Context, mood string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
			return r.applyPostDetails(r.db.WithContext(ctx)).
				Preload("User").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	if err := r.enrichReactions(ctx, []*models.Post{&post}, currentUserID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Where("user_id = ?", userID).
		Order("highlighted DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if enrichErr := r.enrichReactions(ctx, posts, currentUserID); enrichErr != nil {
		return nil, enrichErr
	}
	return posts, nil
}

// Feed returns posts in reverse chronological order, optionally restricted to
// one registry mood. Pagination is plain limit/offset.
func (r *postRepository) Feed(ctx context.Context, mood string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User")
	if mood != "" {
		base = base.Where("mood = ?", mood)
	}
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if enrichErr := r.enrichReactions(ctx, posts, currentUserID); enrichErr != nil {
		return nil, enrichErr
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id) as total_reactions")
}

// enrichReactions fills per-kind reaction counts and, when a requesting user
// is known, which kinds that user gave, for the whole page in two queries.
func (r *postRepository) enrichReactions(ctx context.Context, posts []*models.Post, currentUserID uint) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	type kindCount struct {
		PostID uint
		Kind   string
		Count  int
	}
	var counts []kindCount
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("post_id, kind, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id, kind").
		Scan(&counts).Error; err != nil {
		return err
	}

	byPost := make(map[uint]map[string]int, len(posts))
	for _, c := range counts {
		if byPost[c.PostID] == nil {
			byPost[c.PostID] = make(map[string]int)
		}
		byPost[c.PostID][c.Kind] = c.Count
	}

	mine := make(map[uint][]string)
	if currentUserID != 0 {
		type userKind struct {
			PostID uint
			Kind   string
		}
		var kinds []userKind
		if err := r.db.WithContext(ctx).
			Model(&models.Reaction{}).
			Select("post_id, kind").
			Where("user_id = ? AND post_id IN ?", currentUserID, postIDs).
			Scan(&kinds).Error; err != nil {
			return err
		}
		for _, k := range kinds {
			mine[k.PostID] = append(mine[k.PostID], k.Kind)
		}
	}

	for _, p := range posts {
		if byPost[p.ID] != nil {
			p.ReactionCounts = byPost[p.ID]
		} else {
			p.ReactionCounts = map[string]int{}
		}
		if currentUserID != 0 {
			p.MyReactions = mine[p.ID]
		}
		if p.MyReactions == nil {
			p.MyReactions = []string{}
		}
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidateFeed(ctx)
	return nil
}

// Delete removes a post together with its comments and reactions so no
// orphaned engagement rows survive the post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidateFeed(ctx)
	return nil
}
