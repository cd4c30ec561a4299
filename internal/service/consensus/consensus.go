package consensus

import (
	"math"

	"github.com/humanbelnik/cinetally/internal/model"
)

// Score computes the consensus score for an entry: the arithmetic mean of the
// creator's base rating and every rater's latest vote. The result is not
// rounded so that rankings stay stable under display rounding.
func Score(e model.Entry) float64 {
	sum := float64(e.BaseRating)
	n := 1

	for _, events := range e.Ratings {
		v, ok := latest(events)
		if !ok {
			continue
		}
		sum += float64(v)
		n++
	}

	return sum / float64(n)
}

// Display rounds a score to one decimal for presentation.
func Display(score float64) float64 {
	return math.Round(score*10) / 10
}

// latest picks the rater's counted vote: the event with the newest timestamp.
// On equal timestamps the event appearing later in the list wins.
func latest(events []model.RatingEvent) (int, bool) {
	if len(events) == 0 {
		return 0, false
	}

	best := events[0]
	for _, ev := range events[1:] {
		if !ev.Timestamp.Before(best.Timestamp) {
			best = ev
		}
	}

	return best.Value, true
}
