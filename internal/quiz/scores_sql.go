package quiz

import (
	"context"
	"database/sql"
	"time"
)

// SQLScoreStore keeps submission scores and per-user aggregates in sqlite or
// postgres.
type SQLScoreStore struct {
	db     *sql.DB
	driver string
}

func NewSQLScoreStore(db *sql.DB, driver string) *SQLScoreStore {
	return &SQLScoreStore{db: db, driver: driver}
}

func (s *SQLScoreStore) SaveScore(ctx context.Context, sc Score) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO quiz_scores
		(id, user_id, subject_id, score, correct_count, total, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sc.ID, sc.UserID, sc.SubjectID, sc.Score, sc.CorrectCount, sc.Total, sc.CreatedAt.Unix())
	return err
}

func (s *SQLScoreStore) IncrementQuizCount(ctx context.Context, userID string) error {
	// server-side increment; no read-modify-write from the client
	_, err := s.db.ExecContext(ctx, `INSERT INTO user_stats (user_id, quizzes_taken)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET quizzes_taken = user_stats.quizzes_taken + 1`,
		userID)
	return err
}

func (s *SQLScoreStore) QuizzesTaken(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT quizzes_taken FROM user_stats WHERE user_id=$1`, userID).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

func (s *SQLScoreStore) RecentScores(ctx context.Context, userID string, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, subject_id, score,
		correct_count, total, created_at FROM quiz_scores
		WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Score, 0)
	for rows.Next() {
		var sc Score
		var at int64
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.SubjectID, &sc.Score,
			&sc.CorrectCount, &sc.Total, &at); err != nil {
			return nil, err
		}
		sc.CreatedAt = time.Unix(at, 0).UTC()
		out = append(out, sc)
	}
	return out, rows.Err()
}
