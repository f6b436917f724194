package model

import "time"

// NewsItem represents a single article from any source. JSON field names match
// the wire format the frontend already consumes.
type NewsItem struct {
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Tags       []string  `json:"tags"`
	Popularity float64   `json:"popularity"`
	// RankScore is computed per request per user and never written back to
	// storage.
	RankScore float64 `json:"rankScore,omitempty"`
}

// Settings holds a user's feed preferences, keyed by email.
type Settings struct {
	Email       string   `json:"email"`
	Topics      []string `json:"topics"`
	Tags        []string `json:"tags"`
	ScrollSpeed int      `json:"scrollSpeed"`
	Theme       string   `json:"theme"`
}

// DefaultSettings returns the settings used when a user never saved any.
func DefaultSettings(email string) Settings {
	return Settings{
		Email:       email,
		Topics:      []string{},
		Tags:        []string{},
		ScrollSpeed: 15,
		Theme:       "cyberBlue",
	}
}

// Bookmark is an article saved by a user. There is no update operation.
type Bookmark struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account record, keyed by email.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
