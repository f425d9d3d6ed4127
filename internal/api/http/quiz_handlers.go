package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

type buildQuizRequest struct {
	Bezeichnung    string   `json:"bezeichnung" validate:"required"`
	Themen         []string `json:"themen"`
	AnzahlAufgaben int      `json:"anzahl_aufgaben"`
	Modus          string   `json:"modus" validate:"required"`
}

// GET /modi
func ListModesHandler(svc *quiz.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modes, err := svc.ListModes(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, modes, "")
	}
}

// GET /quizze/
func ListQuizzesHandler(svc *quiz.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListQuizzes(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, list, "")
	}
}

// POST /quizze/ creates the quiz and samples its tasks in one step.
func BuildQuizHandler(svc *quiz.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buildQuizRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, logger, err)
			return
		}
		created, err := svc.Build(r.Context(), quiz.BuildRequest{
			Label:     req.Bezeichnung,
			Topics:    req.Themen,
			TaskCount: req.AnzahlAufgaben,
			ModeName:  req.Modus,
		})
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusCreated, created, "")
	}
}

// GET /quizze/{quizID}
func GetQuizHandler(svc *quiz.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		detail, err := svc.GetQuizWithTasks(r.Context(), id)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, detail, "")
	}
}

// DELETE /quizze/{quizID}
func DeleteQuizHandler(svc *quiz.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		if err := svc.DeleteQuiz(r.Context(), id); err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, map[string]int64{"quizID": id}, fmt.Sprintf("Quiz %d wurde gelöscht.", id))
	}
}
