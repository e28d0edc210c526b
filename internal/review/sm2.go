package review

import "math"

// SM-2 constants.
const (
	DefaultEase = 2.5
	MinEase     = 1.3
)

// State is the scheduling state of one question for one learner.
type State struct {
	EaseFactor  float64
	Interval    int // days until next review
	ReviewCount int
}

// NewState is the state of a question never reviewed before.
func NewState() State {
	return State{EaseFactor: DefaultEase, Interval: 1, ReviewCount: 0}
}

// QualityFor maps a correctness verdict onto the 0-5 SM-2 quality scale.
// Grading only observes a binary signal, so the mapping is coarse.
func QualityFor(correct bool) int {
	if correct {
		return 4
	}
	return 2
}

// Schedule applies one review with the given quality rating and returns the
// updated state. Quality below 3 resets the interval to one day and leaves
// the ease factor untouched; otherwise the ease factor adjusts per SM-2 and
// the interval grows with it. The review count always advances.
func Schedule(prev State, quality int) State {
	next := prev
	next.ReviewCount = prev.ReviewCount + 1

	if quality < 3 {
		next.Interval = 1
		return next
	}

	q := float64(quality)
	ease := prev.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEase {
		ease = MinEase
	}
	ease = math.Round(ease*100) / 100
	next.EaseFactor = ease

	switch prev.ReviewCount {
	case 0:
		next.Interval = 1
	case 1:
		next.Interval = 6
	default:
		next.Interval = int(math.Round(float64(prev.Interval) * ease))
	}
	if next.Interval < 1 {
		next.Interval = 1
	}
	return next
}
