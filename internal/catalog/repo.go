package catalog

import "context"

// Repository is the set of catalog queries available inside one transaction.
type Repository interface {
	TopicByName(ctx context.Context, name string) (Topic, error)
	InsertTopic(ctx context.Context, name string) (Topic, error)
	ListTopics(ctx context.Context) ([]Topic, error)

	InsertTask(ctx context.Context, t Task) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context) ([]Task, error)
	// ListTopicTasks returns the flat task/topic join; topicName filters when non-empty.
	ListTopicTasks(ctx context.Context, topicName string) ([]TopicTask, error)
}

type Store interface {
	InTx(ctx context.Context, fn func(Repository) error) error
}
