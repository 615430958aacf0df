// Package moods holds the static mood registry: the closed set of mood
// identifiers users can select, with their display metadata.
package moods

import "moodia/internal/models"

// Mood is one entry of the registry.
type Mood struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// registry is defined at process start and never mutated.
var registry = []Mood{
	{ID: "focus", Emoji: "🎯", Label: "Focus", Color: "#6366f1"},
	{ID: "creative", Emoji: "🎨", Label: "Creative", Color: "#ec4899"},
	{ID: "explorer", Emoji: "🧭", Label: "Explorer", Color: "#f59e0b"},
	{ID: "reflective", Emoji: "🪞", Label: "Reflective", Color: "#8b5cf6"},
	{ID: "chill", Emoji: "🧊", Label: "Chill", Color: "#38bdf8"},
	{ID: "relax", Emoji: "🌿", Label: "Relax", Color: "#22c55e"},
	{ID: "motivated", Emoji: "🔥", Label: "Motivated", Color: "#ef4444"},
	{ID: "happy", Emoji: "😊", Label: "Happy", Color: "#eab308"},
}

var byID = func() map[string]Mood {
	m := make(map[string]Mood, len(registry))
	for _, mood := range registry {
		m[mood.ID] = mood
	}
	return m
}()

// All returns every mood in registry order.
func All() []Mood {
	out := make([]Mood, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the mood for id. Unknown ids fail with a NotFound error
// rather than silently rendering nothing.
func Lookup(id string) (Mood, error) {
	mood, ok := byID[id]
	if !ok {
		return Mood{}, models.NewNotFoundError("Mood", id)
	}
	return mood, nil
}

// Valid reports whether id names a registered mood.
func Valid(id string) bool {
	_, ok := byID[id]
	return ok
}
