package quiz

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Score is one persisted submission outcome.
type Score struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	SubjectID    string    `json:"subjectId"`
	Score        float64   `json:"score"`
	CorrectCount int       `json:"correctCount"`
	Total        int       `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ScoreStore records quiz outcomes and the per-user aggregate counter.
type ScoreStore interface {
	SaveScore(ctx context.Context, s Score) error
	IncrementQuizCount(ctx context.Context, userID string) error
	QuizzesTaken(ctx context.Context, userID string) (int, error)
	RecentScores(ctx context.Context, userID string, limit int) ([]Score, error)
}

type memoryScores struct {
	mu     sync.RWMutex
	scores []Score
	counts map[string]int
}

// NewInMemoryScoreStore is used by tests and single-process dev setups.
func NewInMemoryScoreStore() ScoreStore {
	return &memoryScores{counts: map[string]int{}}
}

func (m *memoryScores) SaveScore(_ context.Context, s Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, s)
	return nil
}

func (m *memoryScores) IncrementQuizCount(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[userID]++
	return nil
}

func (m *memoryScores) QuizzesTaken(_ context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[userID], nil
}

func (m *memoryScores) RecentScores(_ context.Context, userID string, limit int) ([]Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Score, 0)
	for _, s := range m.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
