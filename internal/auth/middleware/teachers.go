package auth

import (
	"context"
	"database/sql"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
)

var ErrInvalidTeacherCode = apperr.Unauthorized("invalid teacher code")

// TeacherStore keeps the allow-list of teacher codes as bcrypt hashes.
type TeacherStore struct {
	db   *sql.DB
	cost int
}

func NewTeacherStore(db *sql.DB, cost int) *TeacherStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &TeacherStore{db: db, cost: cost}
}

type teacherRow struct {
	id   int64
	hash []byte
}

func (s *TeacherStore) load(ctx context.Context) ([]teacherRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, code_hash FROM teachers ORDER BY id`)
	if err != nil {
		return nil, apperr.Store("select teachers", err)
	}
	defer rows.Close()
	var out []teacherRow
	for rows.Next() {
		var (
			tr   teacherRow
			hash string
		)
		if err := rows.Scan(&tr.id, &hash); err != nil {
			return nil, apperr.Store("scan teacher", err)
		}
		tr.hash = []byte(hash)
		out = append(out, tr)
	}
	return out, apperr.Store("select teachers", rows.Err())
}

func match(rows []teacherRow, code string) (int64, bool) {
	for _, tr := range rows {
		if bcrypt.CompareHashAndPassword(tr.hash, []byte(code)) == nil {
			return tr.id, true
		}
	}
	return 0, false
}

// Seed stores a hash for every code not yet on the allow-list and returns how
// many were added.
func (s *TeacherStore) Seed(ctx context.Context, codes []string) (int, error) {
	existing, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, ok := match(existing, code); ok {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
		if err != nil {
			return added, err
		}
		var id int64
		if err := s.db.QueryRowContext(ctx,
			`INSERT INTO teachers (code_hash) VALUES ($1) RETURNING id`, string(hash)).Scan(&id); err != nil {
			return added, apperr.Store("insert teacher", err)
		}
		existing = append(existing, teacherRow{id: id, hash: hash})
		added++
	}
	return added, nil
}

// Verify returns the teacher subject for code, or ErrInvalidTeacherCode.
func (s *TeacherStore) Verify(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrInvalidTeacherCode
	}
	rows, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	id, ok := match(rows, code)
	if !ok {
		return "", ErrInvalidTeacherCode
	}
	return "teacher:" + strconv.FormatInt(id, 10), nil
}
