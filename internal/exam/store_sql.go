package exam

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
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

func (s *SQLStore) InsertParticipant(ctx context.Context, studentNumber, classLabel string) (Participant, error) {
	p := Participant{StudentNumber: studentNumber, ClassLabel: classLabel}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO participants (student_number, class_label) VALUES ($1, $2) RETURNING id`,
		studentNumber, classLabel).Scan(&p.ID)
	if err != nil {
		return Participant{}, apperr.Store("insert participant", err)
	}
	return p, nil
}

func (s *SQLStore) GetParticipant(ctx context.Context, id int64) (Participant, error) {
	var p Participant
	err := s.q.QueryRowContext(ctx,
		`SELECT id, student_number, class_label FROM participants WHERE id=$1`, id).
		Scan(&p.ID, &p.StudentNumber, &p.ClassLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return Participant{}, apperr.Store("select participant", err)
	}
	return p, nil
}

func (s *SQLStore) QuizExists(ctx context.Context, quizID int64) error {
	var one int
	err := s.q.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id=$1`, quizID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.ErrQuizNotFound
	}
	return apperr.Store("select quiz", err)
}

func (s *SQLStore) Solutions(ctx context.Context, taskIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, solution FROM tasks WHERE id IN (`+db.Placeholders(1, len(taskIDs))+`)`, args...)
	if err != nil {
		return nil, apperr.Store("select solutions", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  int64
			sol int
		)
		if err := rows.Scan(&id, &sol); err != nil {
			return nil, apperr.Store("scan solution", err)
		}
		out[id] = sol
	}
	return out, apperr.Store("select solutions", rows.Err())
}

func (s *SQLStore) InsertExamRecord(ctx context.Context, quizID int64) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO exam_records (quiz_id) VALUES ($1) RETURNING id`, quizID).Scan(&id)
	if err != nil {
		return 0, apperr.Store("insert exam record", err)
	}
	return id, nil
}

func (s *SQLStore) InsertExamResult(ctx context.Context, participantID, recordID int64, score float64) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO exam_results (participant_id, exam_record_id, score) VALUES ($1, $2, $3)`,
		participantID, recordID, score)
	return apperr.Store("insert exam result", err)
}

func (s *SQLStore) ExamLabels(ctx context.Context, modeID int64) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT label FROM quizzes WHERE mode_id=$1 ORDER BY id`, modeID)
	if err != nil {
		return nil, apperr.Store("select exam labels", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, apperr.Store("scan exam label", err)
		}
		out = append(out, l)
	}
	return out, apperr.Store("select exam labels", rows.Err())
}

func (s *SQLStore) LatestQuizByLabel(ctx context.Context, label string) (int64, error) {
	var id int64
	err := s.q.QueryRowContext(ctx,
		`SELECT id FROM quizzes WHERE label=$1 ORDER BY created_at DESC, id DESC LIMIT 1`, label).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, quiz.ErrQuizNotFound
	}
	if err != nil {
		return 0, apperr.Store("select quiz by label", err)
	}
	return id, nil
}

func (s *SQLStore) CountRecords(ctx context.Context, quizID int64) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exam_records WHERE quiz_id=$1`, quizID).Scan(&n); err != nil {
		return 0, apperr.Store("count exam records", err)
	}
	return n, nil
}

func (s *SQLStore) ResultsForQuiz(ctx context.Context, quizID int64) ([]ResultEntry, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT COALESCE(p.student_number, ''), COALESCE(p.class_label, ''), r.score
		  FROM exam_records e
		  JOIN exam_results r ON r.exam_record_id = e.id
		  LEFT JOIN participants p ON p.id = r.participant_id
		 WHERE e.quiz_id = $1
		 ORDER BY e.id, r.id`, quizID)
	if err != nil {
		return nil, apperr.Store("select exam results", err)
	}
	defer rows.Close()
	out := make([]ResultEntry, 0)
	for rows.Next() {
		var re ResultEntry
		if err := rows.Scan(&re.StudentNumber, &re.ClassLabel, &re.Score); err != nil {
			return nil, apperr.Store("scan exam result", err)
		}
		out = append(out, re)
	}
	return out, apperr.Store("select exam results", rows.Err())
}
