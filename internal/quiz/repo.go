package quiz

import (
	"context"
	"time"
)

type Repository interface {
	ModeByName(ctx context.Context, name string) (Mode, error)
	ListModes(ctx context.Context) ([]Mode, error)

	InsertQuiz(ctx context.Context, label string, createdAt time.Time, modeID int64) (int64, error)
	SetLink(ctx context.Context, quizID int64, link string) error
	GetQuiz(ctx context.Context, id int64) (Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error
	ListQuizzes(ctx context.Context) ([]Summary, error)

	TaskIDsForTopics(ctx context.Context, topics []string) ([]int64, error)
	// InsertQuizTasks links the tasks and returns how many links are new;
	// tasks already on the quiz are skipped.
	InsertQuizTasks(ctx context.Context, quizID int64, taskIDs []int64) (int, error)
	// QuizTasks returns every linked task with solution and feedback filled.
	QuizTasks(ctx context.Context, quizID int64) ([]TaskView, error)
}

type Store interface {
	InTx(ctx context.Context, fn func(Repository) error) error
}
