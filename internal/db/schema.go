package db

// quiz_tasks.task_id deliberately carries no foreign key: deleting a task does
// not check quiz references, and reads join the link away.
const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS topics (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  topic_id INTEGER NOT NULL REFERENCES topics(id),
  statement_a TEXT NOT NULL,
  statement_b TEXT NOT NULL,
  solution INTEGER NOT NULL,
  feedback TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS modes (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS quizzes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  label TEXT NOT NULL,
  link TEXT,
  created_at INTEGER NOT NULL,
  mode_id INTEGER NOT NULL REFERENCES modes(id)
);

CREATE TABLE IF NOT EXISTS quiz_tasks (
  quiz_id INTEGER NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
  task_id INTEGER NOT NULL,
  PRIMARY KEY (quiz_id, task_id)
);

CREATE TABLE IF NOT EXISTS teachers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_number TEXT NOT NULL,
  class_label TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exam_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  quiz_id INTEGER NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS exam_results (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  participant_id INTEGER NOT NULL,
  exam_record_id INTEGER NOT NULL REFERENCES exam_records(id) ON DELETE CASCADE,
  score REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_topic ON tasks(topic_id);
CREATE INDEX IF NOT EXISTS idx_quizzes_mode ON quizzes(mode_id);
CREATE INDEX IF NOT EXISTS idx_exam_records_quiz ON exam_records(quiz_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS topics (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tasks (
  id BIGSERIAL PRIMARY KEY,
  topic_id BIGINT NOT NULL REFERENCES topics(id),
  statement_a TEXT NOT NULL,
  statement_b TEXT NOT NULL,
  solution INTEGER NOT NULL,
  feedback TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS modes (
  id BIGINT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS quizzes (
  id BIGSERIAL PRIMARY KEY,
  label TEXT NOT NULL,
  link TEXT,
  created_at BIGINT NOT NULL,
  mode_id BIGINT NOT NULL REFERENCES modes(id)
);

CREATE TABLE IF NOT EXISTS quiz_tasks (
  quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
  task_id BIGINT NOT NULL,
  PRIMARY KEY (quiz_id, task_id)
);

CREATE TABLE IF NOT EXISTS teachers (
  id BIGSERIAL PRIMARY KEY,
  code_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
  id BIGSERIAL PRIMARY KEY,
  student_number TEXT NOT NULL,
  class_label TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exam_records (
  id BIGSERIAL PRIMARY KEY,
  quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS exam_results (
  id BIGSERIAL PRIMARY KEY,
  participant_id BIGINT NOT NULL,
  exam_record_id BIGINT NOT NULL REFERENCES exam_records(id) ON DELETE CASCADE,
  score DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_topic ON tasks(topic_id);
CREATE INDEX IF NOT EXISTS idx_quizzes_mode ON quizzes(mode_id);
CREATE INDEX IF NOT EXISTS idx_exam_records_quiz ON exam_records(quiz_id);
`
