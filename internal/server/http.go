package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// NewHTTPServer wires the question bank routes plus the base routes
// (health, metrics) for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, handlers *trivia.HTTPHandlers, wsHandler *trivia.WSHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/categories", handlers.ListCategories)
	mux.HandleFunc("GET /v1/categories/{id}/questions", handlers.ListByCategory)
	mux.HandleFunc("GET /v1/questions", handlers.ListQuestions)
	mux.HandleFunc("POST /v1/questions", handlers.PostQuestions)
	mux.HandleFunc("DELETE /v1/questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("POST /v1/quizzes", handlers.PlayQuiz)

	if wsHandler != nil {
		mux.HandleFunc("GET /ws/quizzes", wsHandler.HandleQuizRound)
	}

	handler := withRequestID(logger, withCORS(cfg.CORS, mux))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
