// Package models contains data structures for the application's domain models.
package models

import "time"

// MoodSelection is a user's mood for one calendar day. The (UserID, Day) pair
// is unique: re-selecting on the same day updates the row in place, so the
// table doubles as the append-only daily mood history used for streaks.
type MoodSelection struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_day" json:"user_id"`
	// Day is the UTC calendar date in YYYY-MM-DD form.
	Day        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_day" json:"day"`
	Mood       string    `gorm:"type:varchar(20);not null" json:"mood"`
	SelectedAt time.Time `gorm:"not null" json:"selected_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// DayFormat is the layout for MoodSelection.Day.
const DayFormat = "2006-01-02"

// DayOf formats t as a UTC calendar day key.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}
