package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Service struct {
	store        Store
	shareBaseURL string
	logger       *slog.Logger
	now          func() time.Time
}

func NewService(store Store, shareBaseURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		shareBaseURL: shareBaseURL,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateQuiz stores a new quiz for the named mode and assigns its access link.
func (s *Service) CreateQuiz(ctx context.Context, label, modeName string) (Created, error) {
	if strings.TrimSpace(label) == "" {
		return Created{}, ErrEmptyLabel
	}
	var out Created
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = s.createQuiz(ctx, r, label, modeName)
		return err
	})
	if err != nil {
		return Created{}, err
	}
	s.logger.Info("quiz created", "quiz_id", out.QuizID, "mode", modeName)
	return out, nil
}

// AddTasksToQuiz links a uniform random sample of up to n tasks drawn from
// the given topics and returns how many new links were made. Sampled tasks
// already on the quiz are skipped.
func (s *Service) AddTasksToQuiz(ctx context.Context, quizID int64, topics []string, n int) (int, error) {
	if err := validateSelection(topics, n); err != nil {
		return 0, err
	}
	var added int
	err := s.store.InTx(ctx, func(r Repository) error {
		if _, err := r.GetQuiz(ctx, quizID); err != nil {
			return err
		}
		var err error
		added, err = addTasks(ctx, r, quizID, topics, n)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("tasks added to quiz", "quiz_id", quizID, "count", added)
	return added, nil
}

// Build creates a quiz and fills it in a single transaction, so a selection
// that yields no tasks leaves no quiz behind.
func (s *Service) Build(ctx context.Context, req BuildRequest) (Created, error) {
	if strings.TrimSpace(req.Label) == "" {
		return Created{}, ErrEmptyLabel
	}
	if err := validateSelection(req.Topics, req.TaskCount); err != nil {
		return Created{}, err
	}
	var out Created
	var added int
	err := s.store.InTx(ctx, func(r Repository) error {
		var err error
		if out, err = s.createQuiz(ctx, r, req.Label, req.ModeName); err != nil {
			return err
		}
		added, err = addTasks(ctx, r, out.QuizID, req.Topics, req.TaskCount)
		return err
	})
	if err != nil {
		return Created{}, err
	}
	s.logger.Info("quiz built", "quiz_id", out.QuizID, "mode", req.ModeName, "tasks", added)
	return out, nil
}

// GetQuizWithTasks loads the quiz and its tasks, redacted for exam mode.
func (s *Service) GetQuizWithTasks(ctx context.Context, quizID int64) (Detail, error) {
	var out Detail
	err := s.store.InTx(ctx, func(r Repository) error {
		qz, err := r.GetQuiz(ctx, quizID)
		if err != nil {
			return err
		}
		tasks, err := r.QuizTasks(ctx, quizID)
		if err != nil {
			return err
		}
		out = Detail{Quiz: qz, Tasks: ApplyVisibility(qz.ModeID, tasks)}
		return nil
	})
	return out, err
}

func (s *Service) ListQuizzes(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ListQuizzes(ctx)
		return err
	})
	return out, err
}

func (s *Service) ListModes(ctx context.Context) ([]Mode, error) {
	var out []Mode
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ListModes(ctx)
		return err
	})
	return out, err
}

// DeleteQuiz removes the quiz; task links and exam records go with it.
func (s *Service) DeleteQuiz(ctx context.Context, quizID int64) error {
	err := s.store.InTx(ctx, func(r Repository) error {
		return r.DeleteQuiz(ctx, quizID)
	})
	if err == nil {
		s.logger.Info("quiz deleted", "quiz_id", quizID)
	}
	return err
}

func (s *Service) createQuiz(ctx context.Context, r Repository, label, modeName string) (Created, error) {
	mode, err := r.ModeByName(ctx, modeName)
	if err != nil {
		if errors.Is(err, ErrModeNotFound) {
			return Created{}, fmt.Errorf("%w: %q", ErrModeNotFound, modeName)
		}
		return Created{}, err
	}
	id, err := r.InsertQuiz(ctx, label, s.now(), mode.ID)
	if err != nil {
		return Created{}, err
	}
	link := AccessLink(s.shareBaseURL, mode.ID, id)
	if err := r.SetLink(ctx, id, link); err != nil {
		return Created{}, err
	}
	return Created{QuizID: id, Link: link}, nil
}

func addTasks(ctx context.Context, r Repository, quizID int64, topics []string, n int) (int, error) {
	ids, err := r.TaskIDsForTopics(ctx, topics)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrNoTasksForTopics
	}
	return r.InsertQuizTasks(ctx, quizID, Sample(ids, n))
}

func validateSelection(topics []string, n int) error {
	if len(topics) == 0 {
		return ErrMissingTopics
	}
	if n < 1 {
		return ErrInvalidTaskCount
	}
	return nil
}
