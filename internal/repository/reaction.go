// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"moodia/internal/cache"
	"moodia/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction ledger operations.
type ReactionRepository interface {
	Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind, exclusive bool) (bool, error)
	Has(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error)
	CountsForPost(ctx context.Context, postID uint) (map[string]int, error)
	KindsForUser(ctx context.Context, userID, postID uint) ([]string, error)
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle flips the user's membership in one reaction kind on a post and
// reports whether the reaction is present afterwards. When exclusive is set,
// adding a kind removes the user's other kinds on the same post, all inside
// one transaction so a concurrent toggle can never leave two kinds behind.
func (r *reactionRepository) Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind, exclusive bool) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// INSERT ... ON CONFLICT DO NOTHING is atomic: RowsAffected tells us
		// whether the reaction was absent before this call.
		result := tx.Exec(
			`INSERT INTO reactions (user_id, post_id, kind, created_at)
			 VALUES (?, ?, ?, NOW())
			 ON CONFLICT (user_id, post_id, kind) DO NOTHING`,
			userID, postID, string(kind),
		)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Already present: this toggle removes it.
			return tx.Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, string(kind)).
				Delete(&models.Reaction{}).Error
		}

		added = true
		if exclusive {
			return tx.Where("user_id = ? AND post_id = ? AND kind != ?", userID, postID, string(kind)).
				Delete(&models.Reaction{}).Error
		}
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return added, nil
}

func (r *reactionRepository) Has(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, string(kind)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reactionRepository) CountsForPost(ctx context.Context, postID uint) (map[string]int, error) {
	type kindCount struct {
		Kind  string
		Count int
	}
	var rows []kindCount
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("kind, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

func (r *reactionRepository) KindsForUser(ctx context.Context, userID, postID uint) ([]string, error) {
	var kinds []string
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Order("kind").
		Pluck("kind", &kinds).Error
	return kinds, err
}
