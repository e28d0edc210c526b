package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps review records in sqlite or postgres. The read and the
// upsert run in one transaction, with a row lock on postgres, so the
// read-modify-write of a record is atomic per key even across processes.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Apply(ctx context.Context, userID, subjectID string, o Outcome, now time.Time) (Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, err
	}
	defer tx.Rollback()

	sel := `SELECT review_count, ease_factor, interval_days FROM review_records
		WHERE user_id=$1 AND subject_id=$2 AND question_text=$3`
	if s.driver == "postgres" {
		sel += " FOR UPDATE"
	}

	prev := NewState()
	err = tx.QueryRowContext(ctx, sel, userID, subjectID, o.QuestionText).
		Scan(&prev.ReviewCount, &prev.EaseFactor, &prev.Interval)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("load review record: %w", err)
	}

	next := Schedule(prev, QualityFor(o.IsCorrect))
	nextAt := now.AddDate(0, 0, next.Interval)

	_, err = tx.ExecContext(ctx, `INSERT INTO review_records
		(user_id, subject_id, question_text, user_answer, correct_answer, is_correct,
		 review_count, ease_factor, interval_days, next_review_at, last_reviewed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id, subject_id, question_text) DO UPDATE SET
		 user_answer=EXCLUDED.user_answer,
		 correct_answer=EXCLUDED.correct_answer,
		 is_correct=EXCLUDED.is_correct,
		 review_count=EXCLUDED.review_count,
		 ease_factor=EXCLUDED.ease_factor,
		 interval_days=EXCLUDED.interval_days,
		 next_review_at=EXCLUDED.next_review_at,
		 last_reviewed_at=EXCLUDED.last_reviewed_at`,
		userID, subjectID, o.QuestionText, o.UserAnswer, o.CorrectAnswer, o.IsCorrect,
		next.ReviewCount, next.EaseFactor, next.Interval, nextAt.Unix(), now.Unix())
	if err != nil {
		return Record{}, fmt.Errorf("upsert review record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, err
	}

	return Record{
		UserID:         userID,
		SubjectID:      subjectID,
		QuestionText:   o.QuestionText,
		UserAnswer:     o.UserAnswer,
		CorrectAnswer:  o.CorrectAnswer,
		IsCorrect:      o.IsCorrect,
		ReviewCount:    next.ReviewCount,
		EaseFactor:     next.EaseFactor,
		Interval:       next.Interval,
		NextReviewAt:   nextAt,
		LastReviewedAt: now,
	}, nil
}

func (s *SQLStore) Get(ctx context.Context, k Key) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT user_id, subject_id, question_text,
		user_answer, correct_answer, is_correct, review_count, ease_factor,
		interval_days, next_review_at, last_reviewed_at
		FROM review_records WHERE user_id=$1 AND subject_id=$2 AND question_text=$3`,
		k.UserID, k.SubjectID, k.QuestionText)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLStore) ListDue(ctx context.Context, userID, subjectID string, now time.Time, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, subject_id, question_text,
		user_answer, correct_answer, is_correct, review_count, ease_factor,
		interval_days, next_review_at, last_reviewed_at
		FROM review_records
		WHERE user_id=$1 AND subject_id=$2 AND next_review_at<=$3
		ORDER BY next_review_at ASC LIMIT $4`,
		userID, subjectID, now.Unix(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var nextAt, lastAt int64
	err := sc.Scan(&rec.UserID, &rec.SubjectID, &rec.QuestionText,
		&rec.UserAnswer, &rec.CorrectAnswer, &rec.IsCorrect, &rec.ReviewCount,
		&rec.EaseFactor, &rec.Interval, &nextAt, &lastAt)
	if err != nil {
		return Record{}, err
	}
	rec.NextReviewAt = time.Unix(nextAt, 0).UTC()
	rec.LastReviewedAt = time.Unix(lastAt, 0).UTC()
	return rec, nil
}
