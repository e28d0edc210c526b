package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/prime-pentrix/tutor-core/internal/quiz"
	"github.com/prime-pentrix/tutor-core/internal/rbac"
	"github.com/prime-pentrix/tutor-core/internal/review"
)

var validate = validator.New()

type gradeReq struct {
	SubjectID string          `json:"subject_id" validate:"required"`
	Questions []quiz.Question `json:"questions" validate:"required,min=1,dive"`
}

type gradeResp struct {
	quiz.Result
	Reviews []review.Record `json:"reviews"`
}

// POST /quizzes/grade
// A malformed submission is the only fatal error: everything past validation
// degrades gracefully and still produces a score.
func GradeQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid submission: "+err.Error(), http.StatusBadRequest)
			return
		}
		userID := rbac.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "missing subject", http.StatusUnauthorized)
			return
		}
		res, records, err := svc.GradeSubmission(r.Context(), userID, req.SubjectID, req.Questions)
		if err != nil {
			http.Error(w, "grade: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gradeResp{Result: res, Reviews: records})
	}
}
