package model

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

type Category string

const (
	CategoryMustWatch    Category = "must-watch"
	CategoryGood         Category = "good"
	CategoryOneTimeWatch Category = "one-time-watch"
	CategoryBad          Category = "bad"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMustWatch, CategoryGood, CategoryOneTimeWatch, CategoryBad:
		return true
	}
	return false
}

// RatingEvent is one vote from one rater. Later events from the same rater
// supersede earlier ones; old events are kept for audit.
type RatingEvent struct {
	Value     int
	Timestamp time.Time
}

// Entry is a single rated work in the shared catalog. Descriptive fields are
// immutable after creation; the only mutations are appended rating events and
// outright deletion by the owner.
type Entry struct {
	ID         string
	Title      string
	Kind       Kind
	Year       int
	BaseRating int
	Category   Category
	Language   string
	AgeRating  string
	CreatedAt  time.Time
	CreatedBy  uuid.UUID

	// Ratings maps rater ID to that rater's events in chronological order.
	Ratings map[uuid.UUID][]RatingEvent

	// PosterLink is derived from an external lookup after sync.
	// Empty is not an error.
	PosterLink string
}

// EntryDraft carries the user-submitted fields of a new entry before the
// store has assigned it an ID.
type EntryDraft struct {
	Title      string
	Kind       Kind
	Year       int
	BaseRating int
	Category   Category
	Language   string
	AgeRating  string
}
