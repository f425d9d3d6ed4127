package exam

import "context"

type Repository interface {
	InsertParticipant(ctx context.Context, studentNumber, classLabel string) (Participant, error)
	GetParticipant(ctx context.Context, id int64) (Participant, error)

	// QuizExists returns quiz.ErrQuizNotFound for an unknown id.
	QuizExists(ctx context.Context, quizID int64) error
	// Solutions maps each known task id to its stored solution. Unknown ids
	// are absent from the result.
	Solutions(ctx context.Context, taskIDs []int64) (map[int64]int, error)
	InsertExamRecord(ctx context.Context, quizID int64) (int64, error)
	InsertExamResult(ctx context.Context, participantID, recordID int64, score float64) error

	ExamLabels(ctx context.Context, modeID int64) ([]string, error)
	// LatestQuizByLabel resolves a label to the most recently created quiz.
	LatestQuizByLabel(ctx context.Context, label string) (int64, error)
	CountRecords(ctx context.Context, quizID int64) (int, error)
	ResultsForQuiz(ctx context.Context, quizID int64) ([]ResultEntry, error)
}

type Store interface {
	InTx(ctx context.Context, fn func(Repository) error) error
}
