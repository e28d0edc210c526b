package review

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreApplyContinuesHistory(t *testing.T) {
	st := NewInMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := Outcome{QuestionText: "What is a SYN flood?", CorrectAnswer: "a tcp handshake exhaustion attack", UserAnswer: "handshake exhaustion", IsCorrect: true}

	rec, err := st.Apply(ctx, "u1", "networking", o, now)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if rec.ReviewCount != 1 || rec.Interval != 1 || rec.EaseFactor != 2.5 {
		t.Fatalf("first apply: %+v", rec)
	}
	if !rec.NextReviewAt.Equal(now.AddDate(0, 0, 1)) {
		t.Fatalf("next review at %v, want %v", rec.NextReviewAt, now.AddDate(0, 0, 1))
	}

	// the same question text in a later quiz continues the same history
	rec, err = st.Apply(ctx, "u1", "networking", o, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if rec.ReviewCount != 2 || rec.Interval != 6 {
		t.Fatalf("second apply: %+v", rec)
	}

	// a different subject starts fresh
	rec, err = st.Apply(ctx, "u1", "crypto", o, now)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if rec.ReviewCount != 1 {
		t.Fatalf("different subject should start a new record: %+v", rec)
	}
}

func TestMemoryStoreApplyIncorrectResets(t *testing.T) {
	st := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now()
	o := Outcome{QuestionText: "q", CorrectAnswer: "a", IsCorrect: true}

	for i := 0; i < 3; i++ {
		if _, err := st.Apply(ctx, "u1", "s1", o, now); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	o.IsCorrect = false
	rec, err := st.Apply(ctx, "u1", "s1", o, now)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if rec.Interval != 1 {
		t.Fatalf("incorrect answer should reset interval, got %d", rec.Interval)
	}
	if rec.ReviewCount != 4 {
		t.Fatalf("review count = %d, want 4", rec.ReviewCount)
	}
	if rec.IsCorrect {
		t.Fatalf("record should carry the latest verdict")
	}
}

// Concurrent submissions touching the same question must not lose updates.
func TestMemoryStoreApplyConcurrent(t *testing.T) {
	st := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now()
	o := Outcome{QuestionText: "q", CorrectAnswer: "a", IsCorrect: true}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.Apply(ctx, "u1", "s1", o, now); err != nil {
				t.Errorf("apply: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := st.Get(ctx, Key{UserID: "u1", SubjectID: "s1", QuestionText: "q"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.ReviewCount != n {
		t.Fatalf("review count = %d, want %d", rec.ReviewCount, n)
	}
}

func TestMemoryStoreListDue(t *testing.T) {
	st := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// incorrect answers come due after one day, correct first-reviews too
	for i, q := range []string{"q1", "q2", "q3"} {
		at := base.AddDate(0, 0, -i-1)
		if _, err := st.Apply(ctx, "u1", "s1", Outcome{QuestionText: q, IsCorrect: false}, at); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	due, err := st.ListDue(ctx, "u1", "s1", base, 0)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 3 {
		t.Fatalf("due = %d records, want 3", len(due))
	}
	for i := 1; i < len(due); i++ {
		if due[i].NextReviewAt.Before(due[i-1].NextReviewAt) {
			t.Fatalf("due list not sorted by next review time")
		}
	}

	due, err = st.ListDue(ctx, "u1", "s1", base, 2)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("limit ignored, got %d records", len(due))
	}

	// nothing due before the first review date
	due, err = st.ListDue(ctx, "u1", "s1", base.AddDate(0, 0, -10), 0)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no due records, got %d", len(due))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	st := NewInMemoryStore()
	if _, err := st.Get(context.Background(), Key{UserID: "nobody"}); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
