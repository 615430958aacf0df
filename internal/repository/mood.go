// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"moodia/internal/cache"
	"moodia/internal/models"

	"gorm.io/gorm"
)

// MoodRepository defines the interface for daily mood selection operations.
type MoodRepository interface {
	Upsert(ctx context.Context, selection *models.MoodSelection) error
	GetForDay(ctx context.Context, userID uint, day string) (*models.MoodSelection, error)
	History(ctx context.Context, userID uint, limit int) ([]models.MoodSelection, error)
	FavoriteMood(ctx context.Context, userID uint) (string, error)
}

// moodRepository implements MoodRepository
type moodRepository struct {
	db *gorm.DB
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

// Upsert writes the selection for (user, day). Re-selecting on the same day
// replaces the mood in place, so one row per user per day always holds.
func (r *moodRepository) Upsert(ctx context.Context, selection *models.MoodSelection) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO mood_selections (user_id, day, mood, selected_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, day) DO UPDATE SET mood = EXCLUDED.mood, selected_at = EXCLUDED.selected_at`,
		selection.UserID, selection.Day, selection.Mood, selection.SelectedAt,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateMoodToday(ctx, selection.UserID, selection.Day)
	cache.InvalidateUser(ctx, selection.UserID)
	return nil
}

// GetForDay returns the selection for one calendar day, or nil when the user
// has not selected a mood that day.
func (r *moodRepository) GetForDay(ctx context.Context, userID uint, day string) (*models.MoodSelection, error) {
	var selection models.MoodSelection
	key := cache.MoodTodayKey(userID, day)

	err := cache.Aside(ctx, key, &selection, cache.MoodTTL, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND day = ?", userID, day).
			First(&selection).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &selection, nil
}

// maxHistoryDays bounds History pages to one year of selections. One row per
// user per day means a capped page covers at least the last 365 calendar
// days, so anything derived from it saturates at a year.
const maxHistoryDays = 365

// History returns selections newest day first, at most maxHistoryDays rows.
// Day is a zero-padded YYYY-MM-DD string, so lexicographic order is
// chronological order.
func (r *moodRepository) History(ctx context.Context, userID uint, limit int) ([]models.MoodSelection, error) {
	if limit <= 0 {
		limit = 30
	}
	if limit > maxHistoryDays {
		limit = maxHistoryDays
	}
	var selections []models.MoodSelection
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(limit).
		Find(&selections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return selections, nil
}

// FavoriteMood returns the user's most frequent mood across their whole
// history, breaking ties by mood id. Empty string means no history yet.
func (r *moodRepository) FavoriteMood(ctx context.Context, userID uint) (string, error) {
	var mood string
	err := r.db.WithContext(ctx).
		Model(&models.MoodSelection{}).
		Select("mood").
		Where("user_id = ?", userID).
		Group("mood").
		Order("COUNT(*) DESC, mood ASC").
		Limit(1).
		Scan(&mood).Error
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return mood, nil
}
