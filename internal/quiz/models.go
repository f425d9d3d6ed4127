package quiz

import (
	"time"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
)

var (
	ErrQuizNotFound     = apperr.NotFound("quiz not found")
	ErrModeNotFound     = apperr.NotFound("mode not found")
	ErrMissingTopics    = apperr.Invalid("at least one topic is required")
	ErrNoTasksForTopics = apperr.NotFound("no tasks found for the selected topics")
	ErrInvalidTaskCount = apperr.Invalid("requested task count must be at least 1")
	ErrEmptyLabel       = apperr.Invalid("quiz label is required")
)

type Mode struct {
	ID          int64  `json:"modiID"`
	Name        string `json:"name"`
	Description string `json:"beschreibung"`
}

// Quiz is the stored quiz row. Link stays nil until link generation ran.
type Quiz struct {
	ID        int64     `json:"quizID"`
	Label     string    `json:"bezeichnung"`
	Link      *string   `json:"freigabelink"`
	CreatedAt time.Time `json:"erstelldatum"`
	ModeID    int64     `json:"modiID"`
}

type Created struct {
	QuizID int64  `json:"quizID"`
	Link   string `json:"freigabelink"`
}

// TaskView is a task as delivered to quiz takers. Solution and Feedback are
// nil for exam-mode quizzes.
type TaskView struct {
	ID         int64   `json:"aufgabeID"`
	StatementA string  `json:"aussage1"`
	StatementB string  `json:"aussage2"`
	Solution   *int    `json:"loesung,omitempty"`
	Feedback   *string `json:"feedback,omitempty"`
}

type Detail struct {
	Quiz
	Tasks []TaskView `json:"aufgaben"`
}

type Summary struct {
	ID        int64     `json:"quizID"`
	Label     string    `json:"bezeichnung"`
	TaskCount int       `json:"anzahl_aufgaben"`
	Link      *string   `json:"freigabelink"`
	ModeName  string    `json:"modi_name"`
	CreatedAt time.Time `json:"erstelldatum"`
}

type BuildRequest struct {
	Label     string
	Topics    []string
	TaskCount int
	ModeName  string
}
