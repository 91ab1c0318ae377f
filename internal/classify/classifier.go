package classify

import "github.com/ormolov/sway/internal/model"

// Reason strings, one per trigger category, in fixed report order
const (
	reasonFear       = "Fear-based psychological trigger detected."
	reasonUrgency    = "Urgency pressure language detected."
	reasonNegativity = "Negative emotional tone identified."

	// NoPatternsMessage is returned when nothing fired
	NoPatternsMessage = "No strong psychological manipulation patterns detected."
)

// Classify derives the manipulation type from the fired categories.
// First match wins: both, fear alone, urgency alone, neither.
func Classify(fearCount, urgencyCount int) model.ManipulationType {
	switch {
	case fearCount > 0 && urgencyCount > 0:
		return model.TypeFearAndUrgency
	case fearCount > 0:
		return model.TypeFearOnly
	case urgencyCount > 0:
		return model.TypeUrgencyOnly
	default:
		return model.TypeLow
	}
}

// Explain returns one human-readable reason per category with a positive
// signal, in fixed order (fear, urgency, negativity). When no category
// fired, the single no-patterns message is returned.
func Explain(fearCount, urgencyCount, negativityValue int) []string {
	var reasons []string

	if fearCount > 0 {
		reasons = append(reasons, reasonFear)
	}
	if urgencyCount > 0 {
		reasons = append(reasons, reasonUrgency)
	}
	if negativityValue > 0 {
		reasons = append(reasons, reasonNegativity)
	}

	if len(reasons) == 0 {
		return []string{NoPatternsMessage}
	}
	return reasons
}
