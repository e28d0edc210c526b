package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prime-pentrix/tutor-core/internal/grading"
	"github.com/prime-pentrix/tutor-core/internal/llm"
	"github.com/prime-pentrix/tutor-core/internal/review"
	syncx "github.com/prime-pentrix/tutor-core/internal/sync"
)

// TextGrader grades one batch of free-text questions. *llm.Client implements
// it; tests plug in fakes.
type TextGrader interface {
	GradeTextAnswers(ctx context.Context, qs []llm.TextQuestion) []llm.Verdict
}

type Clock func() time.Time

// Service is the grading entry point: it turns a submitted question set into
// a scored result and folds every question into the learner's review
// schedule.
type Service struct {
	grader  TextGrader
	reviews review.Store
	scores  ScoreStore
	events  *syncx.EventRepo // optional
	now     Clock
}

func NewService(grader TextGrader, reviews review.Store, scores ScoreStore, events *syncx.EventRepo, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{grader: grader, reviews: reviews, scores: scores, events: events, now: now}
}

// GradeSubmission grades the full ordered question set and returns the
// result plus the updated review record per question. Unanswered questions
// count as wrong, not excluded: the score denominator is the full set.
// Persistence problems are logged and never fail the response; the learner
// always gets a score.
func (s *Service) GradeSubmission(ctx context.Context, userID, subjectID string, questions []Question) (Result, []review.Record, error) {
	if len(questions) == 0 {
		return Result{}, nil, fmt.Errorf("empty question set")
	}
	now := s.now()

	graded := make([]GradedQuestion, len(questions))
	var batch []llm.TextQuestion
	for i, q := range questions {
		graded[i] = GradedQuestion{Question: q, GradedAt: now}
		switch {
		case q.Deterministic():
			graded[i].IsCorrect = grading.Match(grading.Q{
				Type:          q.Type,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				UserAnswer:    q.UserAnswer,
			})
		case strings.TrimSpace(q.UserAnswer) != "":
			batch = append(batch, llm.TextQuestion{
				ID:            q.ID,
				Prompt:        q.Prompt,
				CorrectAnswer: q.CorrectAnswer,
				UserAnswer:    q.UserAnswer,
			})
		}
		// free-text with no answer stays incorrect without an AI call
	}

	if len(batch) > 0 {
		verdicts := s.grader.GradeTextAnswers(ctx, batch)
		byID := make(map[string]llm.Verdict, len(verdicts))
		for i, v := range verdicts {
			byID[batch[i].ID] = v
		}
		for i := range graded {
			v, ok := byID[graded[i].ID]
			if !ok {
				continue
			}
			graded[i].IsCorrect = v.Correct
			if v.Feedback != "" {
				// question-specific reasoning beats the canned explanation
				graded[i].Explanation = v.Feedback
			}
		}
	}

	correct := 0
	for _, g := range graded {
		if g.IsCorrect {
			correct++
		}
	}
	score := math.Round(float64(correct)/float64(len(questions))*1000) / 10

	result := Result{Score: score, CorrectCount: correct, Questions: graded}
	s.recordScore(ctx, userID, subjectID, result, now)
	records := s.applyReviews(userID, subjectID, graded, now)
	return result, records, nil
}

func (s *Service) recordScore(ctx context.Context, userID, subjectID string, res Result, now time.Time) {
	if s.scores == nil {
		return
	}
	sc := Score{
		ID:           uuid.NewString(),
		UserID:       userID,
		SubjectID:    subjectID,
		Score:        res.Score,
		CorrectCount: res.CorrectCount,
		Total:        len(res.Questions),
		CreatedAt:    now,
	}
	if err := s.scores.SaveScore(ctx, sc); err != nil {
		log.Printf("quiz: save score for %s: %v", userID, err)
	}
	if err := s.scores.IncrementQuizCount(ctx, userID); err != nil {
		log.Printf("quiz: increment quiz count for %s: %v", userID, err)
	}
	if s.events != nil {
		data, _ := json.Marshal(map[string]any{
			"user_id": userID, "subject_id": subjectID,
			"score": res.Score, "correct": res.CorrectCount, "total": len(res.Questions),
		})
		if err := s.events.Append(ctx, syncx.Event{Type: "QuizGraded", Key: sc.ID, DataJSON: string(data)}); err != nil {
			log.Printf("quiz: append event: %v", err)
		}
	}
}

// applyReviews updates the review schedule for every graded question. Each
// update touches a distinct key, so they run concurrently; one failing
// update is logged and skipped without affecting the rest. The context is
// detached from the request so an abandoned caller does not lose the
// bookkeeping.
func (s *Service) applyReviews(userID, subjectID string, graded []GradedQuestion, now time.Time) []review.Record {
	if s.reviews == nil {
		return nil
	}
	ctx := context.Background()

	records := make([]review.Record, len(graded))
	ok := make([]bool, len(graded))
	var wg sync.WaitGroup
	for i, g := range graded {
		wg.Add(1)
		go func(i int, g GradedQuestion) {
			defer wg.Done()
			rec, err := s.reviews.Apply(ctx, userID, subjectID, review.Outcome{
				QuestionText:  g.Prompt,
				UserAnswer:    g.UserAnswer,
				CorrectAnswer: g.CorrectAnswer,
				IsCorrect:     g.IsCorrect,
			}, now)
			if err != nil {
				log.Printf("quiz: review update for %q: %v", g.Prompt, err)
				return
			}
			records[i] = rec
			ok[i] = true
		}(i, g)
	}
	wg.Wait()

	out := make([]review.Record, 0, len(records))
	for i, rec := range records {
		if ok[i] {
			out = append(out, rec)
		}
	}
	return out
}
