package http

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// GET /quizze/test-connection
func TestConnectionHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("store ping failed", "err", err)
			fail(w, http.StatusServiceUnavailable, "database connection failed")
			return
		}
		ok(w, http.StatusOK, nil, "Database connection is working!")
	}
}

func readyzHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
