package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mind-engage/mindengage-quiz/internal/api/http"
	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/catalog"
	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("gateway stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		return err
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer dbh.Close()

	// --- Auth ---
	teachers := auth.NewTeacherStore(dbh, 0)
	added, err := teachers.Seed(ctx, cfg.TeacherCodes)
	if err != nil {
		return err
	}
	if added > 0 {
		logger.Info("teacher codes seeded", "added", added)
	}
	authSvc := auth.NewAuthService(cfg.SessionSecret, cfg.SessionTTL)

	// --- Router ---
	h := api.NewRouter(api.Deps{
		Catalog:               catalog.NewService(catalog.NewSQLStore(dbh), logger),
		Quizzes:               quiz.NewService(quiz.NewSQLStore(dbh), cfg.ShareBaseURL, logger),
		Exams:                 exam.NewService(exam.NewSQLStore(dbh), logger),
		Auth:                  authSvc,
		Teachers:              teachers,
		DB:                    dbh,
		Logger:                logger,
		CORSOrigins:           cfg.CORSOrigins(),
		RequireTeacherSession: cfg.RequireTeacherSession,
		SecureCookies:         cfg.Mode == config.ModeOnline,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
