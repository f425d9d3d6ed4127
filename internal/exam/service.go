package exam

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/catalog"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

// Service covers participants, answer submission and exam reporting.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) CreateParticipant(ctx context.Context, studentNumber, classLabel string) (Participant, error) {
	if strings.TrimSpace(studentNumber) == "" || strings.TrimSpace(classLabel) == "" {
		return Participant{}, ErrInvalidParticipant
	}
	var out Participant
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.InsertParticipant(ctx, studentNumber, classLabel)
		return err
	})
	if err != nil {
		return Participant{}, err
	}
	s.logger.Info("participant created", "participant_id", out.ID)
	return out, nil
}

// Submit scores the answers against the current solutions and stores one
// exam record plus one result. Nothing is written unless every check passes.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	var outcome grading.Outcome
	var recordID int64
	err := s.store.InTx(ctx, func(r Repository) error {
		if err := r.QuizExists(ctx, sub.QuizID); err != nil {
			return err
		}
		if len(sub.Answers) == 0 {
			return grading.ErrNoAnswers
		}
		if _, err := r.GetParticipant(ctx, sub.ParticipantID); err != nil {
			return err
		}

		solutions, err := r.Solutions(ctx, answeredTasks(sub.Answers))
		if err != nil {
			return err
		}
		for _, a := range sub.Answers {
			if _, ok := solutions[a.TaskID]; !ok {
				return fmt.Errorf("%w: %d", catalog.ErrTaskNotFound, a.TaskID)
			}
		}
		if outcome, err = grading.Score(solutions, sub.Answers); err != nil {
			return err
		}

		if recordID, err = r.InsertExamRecord(ctx, sub.QuizID); err != nil {
			return err
		}
		return r.InsertExamResult(ctx, sub.ParticipantID, recordID, outcome.Rate)
	})
	if err != nil {
		return err
	}
	s.logger.Info("submission stored",
		"quiz_id", sub.QuizID, "participant_id", sub.ParticipantID,
		"exam_record_id", recordID, "correct", outcome.Correct, "total", outcome.Total)
	return nil
}

// ListExamLabels returns the label of every exam-mode quiz.
func (s *Service) ListExamLabels(ctx context.Context) ([]string, error) {
	var out []string
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ExamLabels(ctx, db.ModeExam)
		if err == nil && len(out) == 0 {
			return ErrNoExamsFound
		}
		return err
	})
	return out, err
}

// Results flattens the scores of every submission made against the quiz
// labelled label. Duplicate labels resolve to the newest quiz.
func (s *Service) Results(ctx context.Context, label string) (Results, error) {
	var out Results
	err := s.store.InTx(ctx, func(r Repository) error {
		quizID, err := r.LatestQuizByLabel(ctx, label)
		if err != nil {
			return fmt.Errorf("%w: %q", err, label)
		}
		n, err := r.CountRecords(ctx, quizID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoExamRecords
		}
		entries, err := r.ResultsForQuiz(ctx, quizID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrNoParticipants
		}
		out = Results{QuizID: quizID, Label: label, Entries: entries}
		return nil
	})
	return out, err
}

func answeredTasks(answers []grading.Answer) []int64 {
	seen := make(map[int64]bool, len(answers))
	ids := make([]int64, 0, len(answers))
	for _, a := range answers {
		if !seen[a.TaskID] {
			seen[a.TaskID] = true
			ids = append(ids, a.TaskID)
		}
	}
	return ids
}
