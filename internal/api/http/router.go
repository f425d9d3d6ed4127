package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/catalog"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
)

type Deps struct {
	Catalog  *catalog.Service
	Quizzes  *quiz.Service
	Exams    *exam.Service
	Auth     *auth.AuthService
	Teachers TeacherVerifier
	DB       Pinger
	Logger   *slog.Logger

	CORSOrigins []string
	// RequireTeacherSession gates teacher-only routes behind a session.
	RequireTeacherSession bool
	SecureCookies         bool
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	log := d.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(auth.SessionMiddleware(d.Auth))

	teacherOnly := func(next http.Handler) http.Handler { return next }
	if d.RequireTeacherSession {
		teacherOnly = rbac.RequireTeacher
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyzHandler(d.DB))

	r.Get("/aufgaben", ListAllTasksHandler(d.Catalog, log))
	r.Get("/modi", ListModesHandler(d.Quizzes, log))

	r.Route("/quizze", func(qr chi.Router) {
		qr.Get("/", ListQuizzesHandler(d.Quizzes, log))
		qr.With(teacherOnly).Post("/", BuildQuizHandler(d.Quizzes, log))
		qr.Get("/test-connection", TestConnectionHandler(d.DB, log))
		qr.Get("/lehrer/", TeacherLoginHandler(d.Teachers, d.Auth, d.SecureCookies, log))

		qr.Get("/themen/", ListTopicsHandler(d.Catalog, log))
		qr.With(teacherOnly).Post("/themen/", CreateTopicHandler(d.Catalog, log))

		qr.Get("/aufgaben/", ListTasksByTopicHandler(d.Catalog, log))
		qr.With(teacherOnly).Post("/aufgaben/", CreateTaskHandler(d.Catalog, log))
		// {ref} is a topic name for GET and a task id for PUT and DELETE
		qr.Get("/aufgaben/{ref}", ListTasksForTopicHandler(d.Catalog, log))
		qr.With(teacherOnly).Put("/aufgaben/{ref}", UpdateTaskHandler(d.Catalog, log))
		qr.With(teacherOnly).Delete("/aufgaben/{ref}", DeleteTaskHandler(d.Catalog, log))

		qr.Post("/teilnehmern/", CreateParticipantHandler(d.Exams, log))
		qr.With(teacherOnly).Get("/pruefung/bezeichnungen", ExamLabelsHandler(d.Exams, log))
		qr.With(teacherOnly).Get("/pruefung/ergebnisse", ExamResultsHandler(d.Exams, log))

		qr.Get("/{quizID}", GetQuizHandler(d.Quizzes, log))
		qr.With(teacherOnly).Delete("/{quizID}", DeleteQuizHandler(d.Quizzes, log))
		qr.Post("/{quizID}/pruefung/", SubmitAnswersHandler(d.Exams, log))
	})

	return r
}
