package catalog

import "github.com/mind-engage/mindengage-quiz/internal/apperr"

var (
	ErrDuplicateTopic   = apperr.Conflict("topic already exists")
	ErrTopicNotFound    = apperr.NotFound("topic not found")
	ErrTaskNotFound     = apperr.NotFound("task not found")
	ErrNoFieldsToUpdate = apperr.Invalid("at least one field must be provided to update a task")
	ErrEmptyTopicName   = apperr.Invalid("topic name is required")
)

type Topic struct {
	ID   int64  `json:"themaID"`
	Name string `json:"name"`
}

// Task is a statement pair; Solution selects the correct statement.
type Task struct {
	ID         int64  `json:"aufgabeID"`
	TopicID    int64  `json:"themaID"`
	StatementA string `json:"aussage1"`
	StatementB string `json:"aussage2"`
	Solution   int    `json:"loesung"`
	Feedback   string `json:"feedback"`
}

// TopicTask is one row of the flat task/topic join.
type TopicTask struct {
	TopicName string `json:"thema_name"`
	Task
}

type NewTask struct {
	StatementA string
	StatementB string
	Solution   int
	Feedback   string
	TopicName  string
}
