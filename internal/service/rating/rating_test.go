package rating

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func someEntry(createdBy uuid.UUID) model.Entry {
	return model.Entry{
		ID:         "e1",
		Title:      "title",
		Kind:       model.KindMovie,
		BaseRating: 8,
		CreatedBy:  createdBy,
	}
}

func TestNewEventAcceptsBoundaryValues(t *testing.T) {
	e := someEntry(uuid.New())
	rater := uuid.New()

	for _, v := range []int{MinValue, 7, MaxValue} {
		ev, err := NewEvent(e, rater, v)

		require.NoError(t, err)
		assert.Equal(t, v, ev.Value)
		assert.WithinDuration(t, time.Now(), ev.Timestamp, time.Second)
	}
}

func TestNewEventRejectsOutOfRangeValues(t *testing.T) {
	e := someEntry(uuid.New())
	rater := uuid.New()

	for _, v := range []int{0, MinValue - 1, MaxValue + 1, 100, -3} {
		_, err := NewEvent(e, rater, v)

		assert.ErrorIs(t, err, ErrValidationFailed, "value %d", v)
	}
}

func TestNewEventRejectsSelfRating(t *testing.T) {
	creator := uuid.New()
	e := someEntry(creator)

	_, err := NewEvent(e, creator, 9)

	assert.ErrorIs(t, err, ErrSelfRating)
}

func TestNewEventRangeCheckedBeforeSelfRating(t *testing.T) {
	creator := uuid.New()
	e := someEntry(creator)

	_, err := NewEvent(e, creator, 3)

	assert.ErrorIs(t, err, ErrValidationFailed)
}
