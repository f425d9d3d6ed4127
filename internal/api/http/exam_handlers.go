package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

var errQuizIDMismatch = apperr.Invalid("quizID in body does not match path")

type participantRequest struct {
	Schuelernummer string `json:"schuelernummer" validate:"required"`
	Klasse         string `json:"klasse" validate:"required"`
}

type answerRequest struct {
	AufgabeID int64 `json:"aufgabeID" validate:"required"`
	Auswahl   int   `json:"auswahl"`
}

type submitRequest struct {
	QuizID       *int64          `json:"quizID"`
	TeilnehmerID int64           `json:"teilnehmerID" validate:"required"`
	Antworten    []answerRequest `json:"antworten" validate:"dive"`
}

// POST /quizze/teilnehmern/
func CreateParticipantHandler(svc *exam.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req participantRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, logger, err)
			return
		}
		p, err := svc.CreateParticipant(r.Context(), req.Schuelernummer, req.Klasse)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusCreated, p, "Teilnehmer erfolgreich erstellt.")
	}
}

// POST /quizze/{quizID}/pruefung/ stores the scored submission. The score is
// not echoed back.
func SubmitAnswersHandler(svc *exam.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := pathID(r, "quizID")
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		var req submitRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, logger, err)
			return
		}
		if req.QuizID != nil && *req.QuizID != quizID {
			writeError(w, r, logger, errQuizIDMismatch)
			return
		}
		answers := make([]grading.Answer, len(req.Antworten))
		for i, a := range req.Antworten {
			answers[i] = grading.Answer{TaskID: a.AufgabeID, Choice: a.Auswahl}
		}
		err = svc.Submit(r.Context(), exam.Submission{
			QuizID:        quizID,
			ParticipantID: req.TeilnehmerID,
			Answers:       answers,
		})
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusCreated, nil, "Vielen Dank für Ihre Abgabe!")
	}
}

// GET /quizze/pruefung/bezeichnungen
func ExamLabelsHandler(svc *exam.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labels, err := svc.ListExamLabels(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, labels, "")
	}
}

// GET /quizze/pruefung/ergebnisse?pruefung_bezeichnung=...
func ExamResultsHandler(svc *exam.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		label := r.URL.Query().Get("pruefung_bezeichnung")
		if strings.TrimSpace(label) == "" {
			writeError(w, r, logger, apperr.Invalid("pruefung_bezeichnung is required"))
			return
		}
		res, err := svc.Results(r.Context(), label)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, res, "")
	}
}
