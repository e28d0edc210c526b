package review

import "time"

// Key identifies one review record. The exact question text is the identity:
// the same question reused in a later quiz continues the same review history.
type Key struct {
	UserID       string
	SubjectID    string
	QuestionText string
}

// Record is the persisted spaced-repetition state for one question.
type Record struct {
	UserID         string    `json:"userId"`
	SubjectID      string    `json:"subjectId"`
	QuestionText   string    `json:"questionText"`
	UserAnswer     string    `json:"userAnswer"`
	CorrectAnswer  string    `json:"correctAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	ReviewCount    int       `json:"reviewCount"`
	EaseFactor     float64   `json:"easeFactor"`
	Interval       int       `json:"interval"`
	NextReviewAt   time.Time `json:"nextReviewAt"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}

// state extracts the scheduling state a record carries.
func (r Record) state() State {
	return State{EaseFactor: r.EaseFactor, Interval: r.Interval, ReviewCount: r.ReviewCount}
}

// Outcome is one grading observation to fold into a record.
type Outcome struct {
	QuestionText  string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}
