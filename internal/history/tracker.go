package history

import "fmt"

// DefaultWindow is how many recent scores the drift calculation spans.
const DefaultWindow = 5

// Tracker records DNA scores against a Store and reports drift over the
// recent window. Store failures degrade to a zero drift with a warning
// instead of failing the analysis.
type Tracker struct {
	store  Store
	window int
}

func NewTracker(store Store, window int) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{store: store, window: window}
}

// Record appends score to the series and returns the drift over the
// updated window. A failed append is retried once; a non-empty warning
// means the score was not persisted and the drift is zero.
func (t *Tracker) Record(score float64) (float64, string) {
	series, err := t.store.Append(score)
	if err != nil {
		series, err = t.store.Append(score)
	}
	if err != nil {
		return 0, fmt.Sprintf("score history not persisted: %v", err)
	}
	return Drift(series, t.window), ""
}

// History returns the persisted series, oldest first.
func (t *Tracker) History() ([]float64, error) {
	return t.store.Scores()
}

// Window reports how many recent scores drift is computed over.
func (t *Tracker) Window() int { return t.window }

// Drift is the spread between the highest and lowest of the last window
// scores. Fewer than two recorded scores mean there is nothing to compare
// yet, so drift is zero.
func Drift(scores []float64, window int) float64 {
	if len(scores) < 2 {
		return 0
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if len(scores) > window {
		scores = scores[len(scores)-window:]
	}
	min, max := scores[0], scores[0]
	for _, v := range scores[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
