package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Movie represents a catalog entry.
type Movie struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Genres      StringList `json:"genre" db:"genres"`
	ReleaseYear int        `json:"releaseYear" db:"release_year"`
	Rating      float64    `json:"rating" db:"rating"`
	PosterURL   string     `json:"posterUrl" db:"poster_url"`
	TrailerURL  string     `json:"trailerUrl" db:"trailer_url"`
	Duration    int        `json:"duration" db:"duration"`
	Directors   StringList `json:"directors" db:"directors"`
	Cast        StringList `json:"cast" db:"cast_members"`
	IsTrending  bool       `json:"isTrending" db:"is_trending"`
	IsTopRated  bool       `json:"isTopRated" db:"is_top_rated"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// MovieSummary is the populated form of a watchlist or favorites entry.
type MovieSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	PosterURL string    `json:"posterUrl" db:"poster_url"`
}

// StringList is a list of strings stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan %T into StringList", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}
