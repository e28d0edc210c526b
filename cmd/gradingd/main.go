package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/prime-pentrix/tutor-core/internal/api/http"
	authmw "github.com/prime-pentrix/tutor-core/internal/auth/middleware"
	"github.com/prime-pentrix/tutor-core/internal/config"
	"github.com/prime-pentrix/tutor-core/internal/db"
	"github.com/prime-pentrix/tutor-core/internal/llm"
	"github.com/prime-pentrix/tutor-core/internal/quiz"
	"github.com/prime-pentrix/tutor-core/internal/rbac"
	"github.com/prime-pentrix/tutor-core/internal/review"
	syncx "github.com/prime-pentrix/tutor-core/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	reviews := review.NewSQLStore(dbh, cfg.DBDriver)
	scores := quiz.NewSQLScoreStore(dbh, cfg.DBDriver)
	events := syncx.NewEventRepo(dbh)

	// --- Grading cascade ---
	providers := llm.NewProviders(cfg.Providers)
	client := llm.NewClient(providers)
	if names := client.ProviderNames(); len(names) > 0 {
		log.Printf("grading cascade: %v", names)
	} else {
		log.Printf("no grading provider configured; free-text grading uses keyword fallback")
	}

	svc := quiz.NewService(client, reviews, scores, events, nil)

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(authSvc, cfg.UserHashes(), cfg.AdminUser))

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.With(rbac.Require("quiz:grade")).
			Post("/quizzes/grade", api.GradeQuizHandler(svc))
		pr.With(rbac.RequireAny("reviews:view-own", "reviews:view-all")).
			Get("/reviews/due", api.DueReviewsHandler(reviews))
		pr.With(rbac.RequireAny("stats:view-own", "stats:view-all")).
			Get("/stats", api.StatsHandler(scores))
	})

	r.Get("/healthz", api.HealthHandler(client.ProviderNames()))
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
