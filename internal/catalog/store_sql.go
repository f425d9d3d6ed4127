package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
	"github.com/mind-engage/mindengage-quiz/internal/db"
)

type SQLStore struct {
	root *sql.DB
	q    db.Querier
}

func NewSQLStore(dbh *sql.DB) *SQLStore {
	return &SQLStore{root: dbh, q: dbh}
}

// InTx hands fn a store bound to a single transaction.
func (s *SQLStore) InTx(ctx context.Context, fn func(Repository) error) error {
	return db.WithTx(ctx, s.root, func(tx *sql.Tx) error {
		return fn(&SQLStore{root: s.root, q: tx})
	})
}

func (s *SQLStore) TopicByName(ctx context.Context, name string) (Topic, error) {
	var t Topic
	err := s.q.QueryRowContext(ctx, `SELECT id, name FROM topics WHERE name=$1`, name).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Topic{}, ErrTopicNotFound
	}
	if err != nil {
		return Topic{}, apperr.Store("select topic", err)
	}
	return t, nil
}

func (s *SQLStore) InsertTopic(ctx context.Context, name string) (Topic, error) {
	t := Topic{Name: name}
	if err := s.q.QueryRowContext(ctx, `INSERT INTO topics (name) VALUES ($1) RETURNING id`, name).Scan(&t.ID); err != nil {
		return Topic{}, apperr.Store("insert topic", err)
	}
	return t, nil
}

func (s *SQLStore) ListTopics(ctx context.Context) ([]Topic, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name FROM topics ORDER BY id`)
	if err != nil {
		return nil, apperr.Store("list topics", err)
	}
	defer rows.Close()

	out := make([]Topic, 0)
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, apperr.Store("scan topic", err)
		}
		out = append(out, t)
	}
	return out, apperr.Store("list topics", rows.Err())
}

func (s *SQLStore) InsertTask(ctx context.Context, t Task) (Task, error) {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO tasks (topic_id, statement_a, statement_b, solution, feedback)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		t.TopicID, t.StatementA, t.StatementB, t.Solution, t.Feedback).Scan(&t.ID)
	if err != nil {
		return Task{}, apperr.Store("insert task", err)
	}
	return t, nil
}

func (s *SQLStore) GetTask(ctx context.Context, id int64) (Task, error) {
	var t Task
	err := s.q.QueryRowContext(ctx,
		`SELECT id, topic_id, statement_a, statement_b, solution, feedback FROM tasks WHERE id=$1`, id).
		Scan(&t.ID, &t.TopicID, &t.StatementA, &t.StatementB, &t.Solution, &t.Feedback)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	}
	if err != nil {
		return Task{}, apperr.Store("select task", err)
	}
	return t, nil
}

func (s *SQLStore) UpdateTask(ctx context.Context, t Task) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE tasks SET statement_a=$1, statement_b=$2, solution=$3, feedback=$4 WHERE id=$5`,
		t.StatementA, t.StatementB, t.Solution, t.Feedback, t.ID)
	return apperr.Store("update task", err)
}

func (s *SQLStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return apperr.Store("delete task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("delete task", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *SQLStore) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, topic_id, statement_a, statement_b, solution, feedback FROM tasks ORDER BY id`)
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.TopicID, &t.StatementA, &t.StatementB, &t.Solution, &t.Feedback); err != nil {
			return nil, apperr.Store("scan task", err)
		}
		out = append(out, t)
	}
	return out, apperr.Store("list tasks", rows.Err())
}

func (s *SQLStore) ListTopicTasks(ctx context.Context, topicName string) ([]TopicTask, error) {
	query := `SELECT tp.name, t.id, t.topic_id, t.statement_a, t.statement_b, t.solution, t.feedback
		FROM tasks t
		JOIN topics tp ON tp.id = t.topic_id`
	var args []any
	if topicName != "" {
		query += ` WHERE tp.name=$1`
		args = append(args, topicName)
	}
	query += ` ORDER BY tp.name, t.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("list topic tasks", err)
	}
	defer rows.Close()

	out := make([]TopicTask, 0)
	for rows.Next() {
		var r TopicTask
		if err := rows.Scan(&r.TopicName, &r.ID, &r.TopicID, &r.StatementA, &r.StatementB, &r.Solution, &r.Feedback); err != nil {
			return nil, apperr.Store("scan topic task", err)
		}
		out = append(out, r)
	}
	return out, apperr.Store("list topic tasks", rows.Err())
}
