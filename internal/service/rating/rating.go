package rating

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
)

// Raters pick from a narrower scale than the 1-10 base rating a creator sets.
const (
	MinValue = 6
	MaxValue = 10
)

var (
	ErrValidationFailed = errors.New("invalid rating")
	ErrSelfRating       = errors.New("rating own entries is forbidden")
)

// NewEvent validates a rating submission and shapes it into an event ready to
// be appended to the store. It performs no I/O; persisting the event is the
// caller's job.
func NewEvent(e model.Entry, raterID uuid.UUID, value int) (model.RatingEvent, error) {
	if value < MinValue || value > MaxValue {
		return model.RatingEvent{}, fmt.Errorf("%w: value %d out of [%d,%d]", ErrValidationFailed, value, MinValue, MaxValue)
	}

	if raterID == e.CreatedBy {
		return model.RatingEvent{}, ErrSelfRating
	}

	return model.RatingEvent{
		Value:     value,
		Timestamp: time.Now(),
	}, nil
}
