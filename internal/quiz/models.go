package quiz

import "time"

// Question types accepted from the question generator.
const (
	TypeMCQ         = "mcq"
	TypeTrueFalse   = "true-false"
	TypeFillBlank   = "fill-blank"
	TypeShortAnswer = "short-answer"
)

// Question is one submitted quiz item. Immutable input to grading.
type Question struct {
	ID            string   `json:"id" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=mcq true-false fill-blank short-answer"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options,omitempty"` // mcq only, ordered
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation,omitempty"`
	UserAnswer    string   `json:"userAnswer,omitempty"`
}

// Deterministic reports whether the question type is gradable without an
// external model call.
func (q Question) Deterministic() bool {
	return q.Type == TypeMCQ || q.Type == TypeTrueFalse
}

// GradedQuestion is a Question plus its verdict. Produced once per
// submission, never mutated afterward.
type GradedQuestion struct {
	Question
	IsCorrect bool      `json:"isCorrect"`
	GradedAt  time.Time `json:"gradedAt"`
}

// Result is the outcome of grading one submission.
type Result struct {
	Score        float64          `json:"score"` // 0..100, one decimal
	CorrectCount int              `json:"correctCount"`
	Questions    []GradedQuestion `json:"questions"`
}
