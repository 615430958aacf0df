package service

import (
	"context"
	"time"

	"moodia/internal/middleware"
	"moodia/internal/models"
	"moodia/internal/moods"
	"moodia/internal/repository"
)

// MoodService implements the daily mood selection flow: one mood per user per
// calendar day, streak and favorite derivation over the selection history.
type MoodService struct {
	moodRepo  repository.MoodRepository
	lockDaily bool
	now       func() time.Time
}

type SelectMoodInput struct {
	UserID uint
	Mood   string
}

// MoodStatus is the user-facing view of today's selection.
type MoodStatus struct {
	Selection *models.MoodSelection `json:"selection"`
	Streak    int                   `json:"streak"`
	CanChange bool                  `json:"can_change"`
}

func NewMoodService(moodRepo repository.MoodRepository, lockDaily bool) *MoodService {
	return &MoodService{
		moodRepo:  moodRepo,
		lockDaily: lockDaily,
		now:       time.Now,
	}
}

// SelectMood records the user's mood for today. Re-selecting replaces the
// existing entry unless daily locking is enabled, in which case a second
// different mood on the same day is rejected.
func (s *MoodService) SelectMood(ctx context.Context, in SelectMoodInput) (*models.MoodSelection, error) {
	if !moods.Valid(in.Mood) {
		return nil, models.NewValidationError("Unknown mood: " + in.Mood)
	}

	nowUTC := s.now().UTC()
	day := models.DayOf(nowUTC)

	existing, err := s.moodRepo.GetForDay(ctx, in.UserID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Mood == in.Mood {
		// Same mood again is a no-op, not an error.
		return existing, nil
	}
	if existing != nil && s.lockDaily {
		return nil, models.NewConflictError("Mood already selected for today")
	}

	selection := &models.MoodSelection{
		UserID:     in.UserID,
		Day:        day,
		Mood:       in.Mood,
		SelectedAt: nowUTC,
	}
	if err := s.moodRepo.Upsert(ctx, selection); err != nil {
		return nil, err
	}
	middleware.MoodSelections.WithLabelValues(in.Mood).Inc()
	return selection, nil
}

// ActiveMood returns today's selection, or nil when the user has not picked
// a mood yet today. Yesterday's selection never carries over.
func (s *MoodService) ActiveMood(ctx context.Context, userID uint) (*models.MoodSelection, error) {
	return s.moodRepo.GetForDay(ctx, userID, models.DayOf(s.now()))
}

// RequireActiveMood returns today's selection or the MOOD_REQUIRED error.
func (s *MoodService) RequireActiveMood(ctx context.Context, userID uint) (*models.MoodSelection, error) {
	selection, err := s.ActiveMood(ctx, userID)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, models.NewMoodRequiredError()
	}
	return selection, nil
}

// Status bundles today's selection, the running streak and whether the user
// may still change their mood today.
func (s *MoodService) Status(ctx context.Context, userID uint) (*MoodStatus, error) {
	selection, err := s.ActiveMood(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.Streak(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MoodStatus{
		Selection: selection,
		Streak:    streak,
		CanChange: selection == nil || !s.lockDaily,
	}, nil
}

// Streak counts consecutive days with a selection, walking back from today
// and stopping at the first gap. Today itself counts as the first gap: until
// the user selects a mood for the current day the streak reads 0. The walk
// covers one year of history, so the reported streak saturates at 365.
func (s *MoodService) Streak(ctx context.Context, userID uint) (int, error) {
	history, err := s.moodRepo.History(ctx, userID, 365)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, nil
	}

	selected := make(map[string]bool, len(history))
	for _, sel := range history {
		selected[sel.Day] = true
	}

	day := s.now().UTC().Truncate(24 * time.Hour)
	streak := 0
	for selected[models.DayOf(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// History returns the newest-first selection log.
func (s *MoodService) History(ctx context.Context, userID uint, limit int) ([]models.MoodSelection, error) {
	return s.moodRepo.History(ctx, userID, limit)
}

// FavoriteMood is the most frequently selected mood across the whole history.
func (s *MoodService) FavoriteMood(ctx context.Context, userID uint) (string, error) {
	return s.moodRepo.FavoriteMood(ctx, userID)
}
