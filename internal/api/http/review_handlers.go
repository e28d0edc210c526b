package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prime-pentrix/tutor-core/internal/quiz"
	"github.com/prime-pentrix/tutor-core/internal/rbac"
	"github.com/prime-pentrix/tutor-core/internal/review"
)

// GET /reviews/due?subject_id=...&limit=...
func DueReviewsHandler(store review.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		subjectID := strings.TrimSpace(r.URL.Query().Get("subject_id"))
		if subjectID == "" {
			http.Error(w, "subject_id required", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		records, err := store.ListDue(r.Context(), userID, subjectID, time.Now(), limit)
		if err != nil {
			http.Error(w, "due reviews: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"reviews": records,
			"total":   len(records),
		})
	}
}

// GET /stats
func StatsHandler(scores quiz.ScoreStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := rbac.SubjectFromContext(r.Context())
		taken, err := scores.QuizzesTaken(r.Context(), userID)
		if err != nil {
			http.Error(w, "stats: "+err.Error(), http.StatusInternalServerError)
			return
		}
		recent, err := scores.RecentScores(r.Context(), userID, 10)
		if err != nil {
			http.Error(w, "stats: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"quizzes_taken": taken,
			"recent_scores": recent,
		})
	}
}

// GET /healthz
func HealthHandler(providers []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"providers": providers,
		})
	}
}
