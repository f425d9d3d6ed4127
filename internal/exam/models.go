package exam

import (
	"github.com/mind-engage/mindengage-quiz/internal/apperr"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

var (
	ErrParticipantNotFound = apperr.NotFound("participant not found")
	ErrInvalidParticipant  = apperr.Invalid("student number and class are required")
	ErrNoExamsFound        = apperr.NotFound("no exams found")
	ErrNoExamRecords       = apperr.NotFound("no exam records for this quiz")
	ErrNoParticipants      = apperr.NotFound("no participants for this exam")
)

type Participant struct {
	ID            int64  `json:"teilnehmerID"`
	StudentNumber string `json:"schuelernummer"`
	ClassLabel    string `json:"klasse"`
}

// Submission is one participant's set of answers for a quiz.
type Submission struct {
	QuizID        int64
	ParticipantID int64
	Answers       []grading.Answer
}

// ResultEntry is one stored score. StudentNumber and ClassLabel are empty
// when the participant row no longer exists.
type ResultEntry struct {
	StudentNumber string  `json:"schuelernummer"`
	ClassLabel    string  `json:"klasse"`
	Score         float64 `json:"ergebnis"`
}

// Results merges the entries of every exam record of one quiz.
type Results struct {
	QuizID  int64         `json:"quizID"`
	Label   string        `json:"bezeichnung"`
	Entries []ResultEntry `json:"ergebnisse"`
}
