package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service implements topic and task maintenance. Every call runs in its own
// transaction.
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

func (s *Service) CreateTopic(ctx context.Context, name string) (Topic, error) {
	if strings.TrimSpace(name) == "" {
		return Topic{}, ErrEmptyTopicName
	}
	var out Topic
	err := s.store.InTx(ctx, func(r Repository) error {
		_, err := r.TopicByName(ctx, name)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %q", ErrDuplicateTopic, name)
		case !errors.Is(err, ErrTopicNotFound):
			return err
		}
		out, err = r.InsertTopic(ctx, name)
		return err
	})
	if err != nil {
		return Topic{}, err
	}
	s.logger.Info("topic created", "topic_id", out.ID, "name", out.Name)
	return out, nil
}

func (s *Service) ListTopics(ctx context.Context) ([]Topic, error) {
	var out []Topic
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ListTopics(ctx)
		return err
	})
	return out, err
}

func (s *Service) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	var out Task
	err := s.store.InTx(ctx, func(r Repository) error {
		topic, err := r.TopicByName(ctx, in.TopicName)
		if err != nil {
			if errors.Is(err, ErrTopicNotFound) {
				return fmt.Errorf("%w: %q", ErrTopicNotFound, in.TopicName)
			}
			return err
		}
		out, err = r.InsertTask(ctx, Task{
			TopicID:    topic.ID,
			StatementA: in.StatementA,
			StatementB: in.StatementB,
			Solution:   in.Solution,
			Feedback:   in.Feedback,
		})
		return err
	})
	if err != nil {
		return Task{}, err
	}
	s.logger.Info("task created", "task_id", out.ID, "topic_id", out.TopicID)
	return out, nil
}

// UpdateTask merge-patches the stored task; fields absent from patch keep
// their stored values.
func (s *Service) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	if patch.Empty() {
		return Task{}, ErrNoFieldsToUpdate
	}
	var out Task
	err := s.store.InTx(ctx, func(r Repository) error {
		current, err := r.GetTask(ctx, id)
		if err != nil {
			return err
		}
		out = MergeFields(current, patch)
		return r.UpdateTask(ctx, out)
	})
	if err != nil {
		return Task{}, err
	}
	return out, nil
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(r Repository) error {
		return r.DeleteTask(ctx, id)
	})
	if err == nil {
		s.logger.Info("task deleted", "task_id", id)
	}
	return err
}

func (s *Service) ListAllTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ListTasks(ctx)
		return err
	})
	return out, err
}

// ListTasksByTopic returns the flat join; grouping is left to the caller.
func (s *Service) ListTasksByTopic(ctx context.Context) ([]TopicTask, error) {
	return s.listTopicTasks(ctx, "")
}

func (s *Service) ListTasksForTopic(ctx context.Context, topicName string) ([]TopicTask, error) {
	if strings.TrimSpace(topicName) == "" {
		return nil, ErrEmptyTopicName
	}
	return s.listTopicTasks(ctx, topicName)
}

func (s *Service) listTopicTasks(ctx context.Context, topicName string) ([]TopicTask, error) {
	var out []TopicTask
	err := s.store.InTx(ctx, func(r Repository) (err error) {
		out, err = r.ListTopicTasks(ctx, topicName)
		return err
	})
	return out, err
}
