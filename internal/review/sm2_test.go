package review

import "testing"

func TestScheduleFailureResetsInterval(t *testing.T) {
	for _, quality := range []int{0, 1, 2} {
		prev := State{EaseFactor: 2.8, Interval: 42, ReviewCount: 7}
		next := Schedule(prev, quality)
		if next.Interval != 1 {
			t.Fatalf("quality %d: interval = %d, want 1", quality, next.Interval)
		}
		if next.EaseFactor != prev.EaseFactor {
			t.Fatalf("quality %d: ease changed from %v to %v", quality, prev.EaseFactor, next.EaseFactor)
		}
		if next.ReviewCount != 8 {
			t.Fatalf("quality %d: review count = %d, want 8", quality, next.ReviewCount)
		}
	}
}

func TestScheduleEarlyIntervals(t *testing.T) {
	first := Schedule(NewState(), 4)
	if first.Interval != 1 {
		t.Fatalf("first review interval = %d, want 1", first.Interval)
	}
	if first.EaseFactor != 2.5 {
		t.Fatalf("first review ease = %v, want 2.5", first.EaseFactor)
	}

	second := Schedule(first, 4)
	if second.Interval != 6 {
		t.Fatalf("second review interval = %d, want 6", second.Interval)
	}

	// quality 4 leaves the ease at 2.5, so the third interval is
	// round(6 * 2.5) = 15; only quality 5 grows the ease factor
	third := Schedule(second, 4)
	if third.EaseFactor != 2.5 {
		t.Fatalf("third review ease = %v, want 2.5", third.EaseFactor)
	}
	if third.Interval != 15 {
		t.Fatalf("third review interval = %d, want 15", third.Interval)
	}

	perfect := Schedule(second, 5)
	if perfect.EaseFactor != 2.6 {
		t.Fatalf("quality 5 ease = %v, want 2.6", perfect.EaseFactor)
	}
	if perfect.Interval != 16 {
		t.Fatalf("quality 5 interval = %d, want round(6*2.6) = 16", perfect.Interval)
	}
}

func TestScheduleEaseMonotonicInQuality(t *testing.T) {
	prev := State{EaseFactor: 2.0, Interval: 10, ReviewCount: 5}
	last := 0.0
	for q := 3; q <= 5; q++ {
		next := Schedule(prev, q)
		if next.EaseFactor < last {
			t.Fatalf("ease not monotone: quality %d gave %v after %v", q, next.EaseFactor, last)
		}
		last = next.EaseFactor
	}
}

func TestScheduleEaseFloor(t *testing.T) {
	prev := State{EaseFactor: MinEase, Interval: 3, ReviewCount: 4}
	next := Schedule(prev, 3) // quality 3 lowers ease by 0.14
	if next.EaseFactor != MinEase {
		t.Fatalf("ease = %v, want floor %v", next.EaseFactor, MinEase)
	}
}

func TestQualityFor(t *testing.T) {
	if QualityFor(true) != 4 || QualityFor(false) != 2 {
		t.Fatalf("quality mapping = %d/%d, want 4/2", QualityFor(true), QualityFor(false))
	}
}
