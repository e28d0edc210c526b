package review

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("review record not found")

// Store persists review records keyed by (user, subject, question text).
type Store interface {
	// Apply folds one grading outcome into the record for its key,
	// creating it on first encounter. Applications for the same key are
	// serialized, so concurrent submissions cannot lose an update.
	Apply(ctx context.Context, userID, subjectID string, o Outcome, now time.Time) (Record, error)
	Get(ctx context.Context, k Key) (Record, error)
	// ListDue returns records with next_review_at <= now, soonest first.
	ListDue(ctx context.Context, userID, subjectID string, now time.Time, limit int) ([]Record, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	records map[Key]Record
}

// NewInMemoryStore is used by tests and single-process dev setups.
func NewInMemoryStore() Store {
	return &memoryStore{records: map[Key]Record{}}
}

func (m *memoryStore) Apply(_ context.Context, userID, subjectID string, o Outcome, now time.Time) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := Key{UserID: userID, SubjectID: subjectID, QuestionText: o.QuestionText}
	prev := NewState()
	if rec, ok := m.records[k]; ok {
		prev = rec.state()
	}
	next := Schedule(prev, QualityFor(o.IsCorrect))

	rec := Record{
		UserID:         userID,
		SubjectID:      subjectID,
		QuestionText:   o.QuestionText,
		UserAnswer:     o.UserAnswer,
		CorrectAnswer:  o.CorrectAnswer,
		IsCorrect:      o.IsCorrect,
		ReviewCount:    next.ReviewCount,
		EaseFactor:     next.EaseFactor,
		Interval:       next.Interval,
		NextReviewAt:   now.AddDate(0, 0, next.Interval),
		LastReviewedAt: now,
	}
	m.records[k] = rec
	return rec, nil
}

func (m *memoryStore) Get(_ context.Context, k Key) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[k]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *memoryStore) ListDue(_ context.Context, userID, subjectID string, now time.Time, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0)
	for k, rec := range m.records {
		if k.UserID != userID || k.SubjectID != subjectID {
			continue
		}
		if rec.NextReviewAt.After(now) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextReviewAt.Before(out[j].NextReviewAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
