package quiz

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

func (s *SQLStore) InTx(ctx context.Context, fn func(Repository) error) error {
	return db.WithTx(ctx, s.root, func(tx *sql.Tx) error {
		return fn(&SQLStore{root: s.root, q: tx})
	})
}

func (s *SQLStore) ModeByName(ctx context.Context, name string) (Mode, error) {
	var m Mode
	err := s.q.QueryRowContext(ctx, `SELECT id, name, description FROM modes WHERE name=$1`, name).
		Scan(&m.ID, &m.Name, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Mode{}, ErrModeNotFound
	}
	if err != nil {
		return Mode{}, apperr.Store("select mode", err)
	}
	return m, nil
}

func (s *SQLStore) ListModes(ctx context.Context) ([]Mode, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name, description FROM modes ORDER BY id`)
	if err != nil {
		return nil, apperr.Store("list modes", err)
	}
	defer rows.Close()

	out := make([]Mode, 0, 2)
	for rows.Next() {
		var m Mode
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, apperr.Store("scan mode", err)
		}
		out = append(out, m)
	}
	return out, apperr.Store("list modes", rows.Err())
}

func (s *SQLStore) InsertQuiz(ctx context.Context, label string, createdAt time.Time, modeID int64) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO quizzes (label, link, created_at, mode_id) VALUES ($1, NULL, $2, $3) RETURNING id`,
		label, createdAt.Unix(), modeID).Scan(&id)
	if err != nil {
		return 0, apperr.Store("insert quiz", err)
	}
	return id, nil
}

func (s *SQLStore) SetLink(ctx context.Context, quizID int64, link string) error {
	_, err := s.q.ExecContext(ctx, `UPDATE quizzes SET link=$1 WHERE id=$2`, link, quizID)
	return apperr.Store("update quiz link", err)
}

func (s *SQLStore) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	var (
		qz        Quiz
		link      sql.NullString
		createdAt int64
	)
	err := s.q.QueryRowContext(ctx,
		`SELECT id, label, link, created_at, mode_id FROM quizzes WHERE id=$1`, id).
		Scan(&qz.ID, &qz.Label, &link, &createdAt, &qz.ModeID)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrQuizNotFound
	}
	if err != nil {
		return Quiz{}, apperr.Store("select quiz", err)
	}
	qz.Link = nullString(link)
	qz.CreatedAt = time.Unix(createdAt, 0).UTC()
	return qz, nil
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return apperr.Store("delete quiz", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("delete quiz", err)
	}
	if n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Summary, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT q.id, q.label, COUNT(qt.task_id), q.link, COALESCE(m.name, ''), q.created_at
		  FROM quizzes q
		  LEFT JOIN modes m ON m.id = q.mode_id
		  LEFT JOIN quiz_tasks qt ON qt.quiz_id = q.id
		 GROUP BY q.id, q.label, q.link, m.name, q.created_at
		 ORDER BY q.id`)
	if err != nil {
		return nil, apperr.Store("list quizzes", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			sm        Summary
			link      sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&sm.ID, &sm.Label, &sm.TaskCount, &link, &sm.ModeName, &createdAt); err != nil {
			return nil, apperr.Store("scan quiz", err)
		}
		sm.Link = nullString(link)
		sm.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, sm)
	}
	return out, apperr.Store("list quizzes", rows.Err())
}

func (s *SQLStore) TaskIDsForTopics(ctx context.Context, topics []string) ([]int64, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	args := make([]any, len(topics))
	for i, t := range topics {
		args[i] = t
	}
	rows, err := s.q.QueryContext(ctx, `
		SELECT t.id
		  FROM tasks t
		  JOIN topics tp ON tp.id = t.topic_id
		 WHERE tp.name IN (`+db.Placeholders(1, len(topics))+`)
		 ORDER BY t.id`, args...)
	if err != nil {
		return nil, apperr.Store("select task ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Store("scan task id", err)
		}
		ids = append(ids, id)
	}
	return ids, apperr.Store("select task ids", rows.Err())
}

func (s *SQLStore) InsertQuizTasks(ctx context.Context, quizID int64, taskIDs []int64) (int, error) {
	added := 0
	for _, id := range taskIDs {
		res, err := s.q.ExecContext(ctx,
			`INSERT INTO quiz_tasks (quiz_id, task_id) VALUES ($1, $2)
			 ON CONFLICT (quiz_id, task_id) DO NOTHING`, quizID, id)
		if err != nil {
			return added, apperr.Store("insert quiz task", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, apperr.Store("insert quiz task", err)
		}
		added += int(n)
	}
	return added, nil
}

func (s *SQLStore) QuizTasks(ctx context.Context, quizID int64) ([]TaskView, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT t.id, t.statement_a, t.statement_b, t.solution, t.feedback
		  FROM quiz_tasks qt
		  JOIN tasks t ON t.id = qt.task_id
		 WHERE qt.quiz_id = $1
		 ORDER BY t.id`, quizID)
	if err != nil {
		return nil, apperr.Store("select quiz tasks", err)
	}
	defer rows.Close()

	out := make([]TaskView, 0)
	for rows.Next() {
		var (
			tv       TaskView
			solution int
			feedback string
		)
		if err := rows.Scan(&tv.ID, &tv.StatementA, &tv.StatementB, &solution, &feedback); err != nil {
			return nil, apperr.Store("scan quiz task", err)
		}
		tv.Solution = &solution
		tv.Feedback = &feedback
		out = append(out, tv)
	}
	return out, apperr.Store("select quiz tasks", rows.Err())
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
