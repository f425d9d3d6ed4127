package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/catalog"
	"github.com/mind-engage/mindengage-quiz/internal/db/dbtest"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

type envelope struct {
	Status  string            `json:"status"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Detail  string            `json:"detail"`
	Errors  map[string]string `json:"errors"`
}

func newTestRouter(t *testing.T, requireSession bool) http.Handler {
	t.Helper()
	dbh := dbtest.Open(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	teachers := auth.NewTeacherStore(dbh, bcrypt.MinCost)
	if _, err := teachers.Seed(context.Background(), []string{"4242"}); err != nil {
		t.Fatalf("seed teachers: %v", err)
	}
	return NewRouter(Deps{
		Catalog:               catalog.NewService(catalog.NewSQLStore(dbh), logger),
		Quizzes:               quiz.NewService(quiz.NewSQLStore(dbh), "http://127.0.0.1:5500/frontend/schuelerView", logger),
		Exams:                 exam.NewService(exam.NewSQLStore(dbh), logger),
		Auth:                  auth.NewAuthService("test-secret", time.Hour),
		Teachers:              teachers,
		DB:                    dbh,
		Logger:                logger,
		CORSOrigins:           []string{"http://localhost:5500"},
		RequireTeacherSession: requireSession,
	})
}

func call(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if b := bytes.TrimSpace(rec.Body.Bytes()); len(b) > 0 {
		if err := json.Unmarshal(b, &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, b, err)
		}
	}
	return rec, env
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, env envelope, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, code, rec.Body.String())
	}
	want := "success"
	if code >= 400 {
		want = "error"
	}
	if env.Status != want {
		t.Fatalf("envelope status = %q, want %q", env.Status, want)
	}
}

func seedCatalog(t *testing.T, h http.Handler) {
	t.Helper()
	rec, env := call(t, h, http.MethodPost, "/quizze/themen/?themaName=Networking", "")
	expect(t, rec, env, http.StatusCreated)
	for _, body := range []string{
		`{"aussage1":"TCP ist zuverlässig","aussage2":"UDP ist zuverlässig","loesung":1,"feedback":"TCP bestätigt","thema":"Networking"}`,
		`{"aussage1":"IPv4 hat 32 Bit","aussage2":"IPv4 hat 128 Bit","loesung":2,"feedback":"32 Bit","thema":"Networking"}`,
	} {
		rec, env := call(t, h, http.MethodPost, "/quizze/aufgaben/", body)
		expect(t, rec, env, http.StatusCreated)
	}
}

func TestExamFlow(t *testing.T) {
	h := newTestRouter(t, false)
	seedCatalog(t, h)

	rec, env := call(t, h, http.MethodPost, "/quizze/",
		`{"bezeichnung":"Netze","themen":["Networking"],"anzahl_aufgaben":5,"modus":"pruefung"}`)
	expect(t, rec, env, http.StatusCreated)
	var created quiz.Created
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.QuizID != 1 || !strings.HasSuffix(created.Link, "/pruefung.html?quizID=1") {
		t.Fatalf("created = %+v", created)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/1", "")
	expect(t, rec, env, http.StatusOK)
	if bytes.Contains(env.Data, []byte("loesung")) || bytes.Contains(env.Data, []byte("feedback")) {
		t.Fatalf("exam quiz leaks solution: %s", env.Data)
	}
	var detail struct {
		Tasks []struct {
			ID int64 `json:"aufgabeID"`
		} `json:"aufgaben"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil || len(detail.Tasks) != 2 {
		t.Fatalf("detail = %s, %v", env.Data, err)
	}

	rec, env = call(t, h, http.MethodPost, "/quizze/teilnehmern/", `{"schuelernummer":"4711","klasse":"10b"}`)
	expect(t, rec, env, http.StatusCreated)

	// task 1 wrong, task 2 right
	rec, env = call(t, h, http.MethodPost, "/quizze/1/pruefung/",
		`{"quizID":1,"teilnehmerID":1,"antworten":[{"aufgabeID":1,"auswahl":2},{"aufgabeID":2,"auswahl":2}]}`)
	expect(t, rec, env, http.StatusCreated)
	if len(bytes.TrimSpace(env.Data)) > 0 && string(env.Data) != "null" {
		t.Fatalf("submission echoes data: %s", env.Data)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/bezeichnungen", "")
	expect(t, rec, env, http.StatusOK)
	if string(env.Data) != `["Netze"]` {
		t.Fatalf("labels = %s", env.Data)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/ergebnisse?pruefung_bezeichnung=Netze", "")
	expect(t, rec, env, http.StatusOK)
	var res exam.Results
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if res.QuizID != 1 || len(res.Entries) != 1 || res.Entries[0].Score != 50 || res.Entries[0].StudentNumber != "4711" {
		t.Fatalf("results = %+v", res)
	}
}

func TestPracticeQuizShowsSolutions(t *testing.T) {
	h := newTestRouter(t, false)
	seedCatalog(t, h)

	rec, env := call(t, h, http.MethodPost, "/quizze/",
		`{"bezeichnung":"Uebung","themen":["Networking"],"anzahl_aufgaben":1,"modus":"uebung"}`)
	expect(t, rec, env, http.StatusCreated)

	rec, env = call(t, h, http.MethodGet, "/quizze/1", "")
	expect(t, rec, env, http.StatusOK)
	var detail quiz.Detail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(detail.Tasks) != 1 || detail.Tasks[0].Solution == nil || detail.Tasks[0].Feedback == nil {
		t.Fatalf("detail = %s", env.Data)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/", "")
	expect(t, rec, env, http.StatusOK)
	var list []quiz.Summary
	if err := json.Unmarshal(env.Data, &list); err != nil || len(list) != 1 || list[0].TaskCount != 1 || list[0].ModeName != "uebung" {
		t.Fatalf("list = %s, %v", env.Data, err)
	}
}

func TestErrorMapping(t *testing.T) {
	h := newTestRouter(t, false)
	seedCatalog(t, h)

	tests := []struct {
		name, method, path, body string
		code                     int
	}{
		{"duplicate topic", http.MethodPost, "/quizze/themen/", `{"themaName":"Networking"}`, http.StatusConflict},
		{"unknown topic for task", http.MethodPost, "/quizze/aufgaben/", `{"aussage1":"a","aussage2":"b","loesung":1,"thema":"Fehlt"}`, http.StatusNotFound},
		{"malformed json", http.MethodPost, "/quizze/aufgaben/", `{"aussage1":`, http.StatusBadRequest},
		{"empty patch", http.MethodPut, "/quizze/aufgaben/1", `{}`, http.StatusBadRequest},
		{"null-only patch", http.MethodPut, "/quizze/aufgaben/1", `{"feedback":null}`, http.StatusBadRequest},
		{"patch unknown task", http.MethodPut, "/quizze/aufgaben/99", `{"loesung":2}`, http.StatusNotFound},
		{"bad task id", http.MethodDelete, "/quizze/aufgaben/abc", "", http.StatusBadRequest},
		{"unknown quiz", http.MethodGet, "/quizze/42", "", http.StatusNotFound},
		{"no topics", http.MethodPost, "/quizze/", `{"bezeichnung":"X","themen":[],"anzahl_aufgaben":2,"modus":"uebung"}`, http.StatusBadRequest},
		{"no tasks for topics", http.MethodPost, "/quizze/", `{"bezeichnung":"X","themen":["Leer"],"anzahl_aufgaben":2,"modus":"uebung"}`, http.StatusNotFound},
		{"unknown mode", http.MethodPost, "/quizze/", `{"bezeichnung":"X","themen":["Networking"],"anzahl_aufgaben":2,"modus":"klausur"}`, http.StatusNotFound},
		{"no exams", http.MethodGet, "/quizze/pruefung/bezeichnungen", "", http.StatusNotFound},
		{"results without label", http.MethodGet, "/quizze/pruefung/ergebnisse", "", http.StatusBadRequest},
		{"delete unknown quiz", http.MethodDelete, "/quizze/42", "", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := call(t, h, tc.method, tc.path, tc.body)
			expect(t, rec, env, tc.code)
			if env.Detail == "" {
				t.Fatalf("missing detail")
			}
		})
	}
}

func TestValidationErrorsNameFields(t *testing.T) {
	h := newTestRouter(t, false)
	rec, env := call(t, h, http.MethodPost, "/quizze/aufgaben/", `{"aussage1":"a","aussage2":"b","thema":"T"}`)
	expect(t, rec, env, http.StatusBadRequest)
	if env.Errors["loesung"] != "required" {
		t.Fatalf("errors = %v", env.Errors)
	}
}

func TestSubmissionChecks(t *testing.T) {
	h := newTestRouter(t, false)
	seedCatalog(t, h)
	rec, env := call(t, h, http.MethodPost, "/quizze/",
		`{"bezeichnung":"Netze","themen":["Networking"],"anzahl_aufgaben":2,"modus":"pruefung"}`)
	expect(t, rec, env, http.StatusCreated)
	rec, env = call(t, h, http.MethodPost, "/quizze/teilnehmern/", `{"schuelernummer":"1","klasse":"9a"}`)
	expect(t, rec, env, http.StatusCreated)

	tests := []struct {
		name, path, body string
		code             int
	}{
		{"quiz id mismatch", "/quizze/1/pruefung/", `{"quizID":2,"teilnehmerID":1,"antworten":[{"aufgabeID":1,"auswahl":1}]}`, http.StatusBadRequest},
		{"empty answers", "/quizze/1/pruefung/", `{"teilnehmerID":1,"antworten":[]}`, http.StatusBadRequest},
		{"unknown task", "/quizze/1/pruefung/", `{"teilnehmerID":1,"antworten":[{"aufgabeID":77,"auswahl":1}]}`, http.StatusNotFound},
		{"unknown quiz", "/quizze/9/pruefung/", `{"teilnehmerID":1,"antworten":[{"aufgabeID":1,"auswahl":1}]}`, http.StatusNotFound},
		{"unknown participant", "/quizze/1/pruefung/", `{"teilnehmerID":5,"antworten":[{"aufgabeID":1,"auswahl":1}]}`, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := call(t, h, http.MethodPost, tc.path, tc.body)
			expect(t, rec, env, tc.code)
		})
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/ergebnisse?pruefung_bezeichnung=Netze", "")
	expect(t, rec, env, http.StatusNotFound)
}

func TestTaskLifecycleAndTopicListing(t *testing.T) {
	h := newTestRouter(t, false)
	seedCatalog(t, h)

	rec, env := call(t, h, http.MethodPut, "/quizze/aufgaben/1", `{"feedback":"neu"}`)
	expect(t, rec, env, http.StatusOK)
	var task catalog.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.Feedback != "neu" || task.StatementA != "TCP ist zuverlässig" || task.Solution != 1 {
		t.Fatalf("merged task = %+v", task)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/aufgaben/", "")
	expect(t, rec, env, http.StatusOK)
	var grouped map[string][]catalog.Task
	if err := json.Unmarshal(env.Data, &grouped); err != nil || len(grouped["Networking"]) != 2 {
		t.Fatalf("grouped = %s, %v", env.Data, err)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/aufgaben/Networking", "")
	expect(t, rec, env, http.StatusOK)
	rec, env = call(t, h, http.MethodGet, "/quizze/aufgaben/Unbekannt", "")
	expect(t, rec, env, http.StatusOK)
	if string(env.Data) != "[]" || env.Message == "" {
		t.Fatalf("unknown topic: data=%s message=%q", env.Data, env.Message)
	}

	rec, env = call(t, h, http.MethodDelete, "/quizze/aufgaben/1", "")
	expect(t, rec, env, http.StatusOK)
	rec, env = call(t, h, http.MethodDelete, "/quizze/aufgaben/1", "")
	expect(t, rec, env, http.StatusNotFound)

	rec, env = call(t, h, http.MethodGet, "/aufgaben", "")
	expect(t, rec, env, http.StatusOK)
	var all []catalog.Task
	if err := json.Unmarshal(env.Data, &all); err != nil || len(all) != 1 {
		t.Fatalf("all = %s, %v", env.Data, err)
	}

	rec, env = call(t, h, http.MethodGet, "/modi", "")
	expect(t, rec, env, http.StatusOK)
	rec, env = call(t, h, http.MethodGet, "/quizze/test-connection", "")
	expect(t, rec, env, http.StatusOK)
}

func TestTeacherSessionGate(t *testing.T) {
	h := newTestRouter(t, true)

	rec, env := call(t, h, http.MethodPost, "/quizze/themen/?themaName=Netze", "")
	expect(t, rec, env, http.StatusUnauthorized)

	rec, env = call(t, h, http.MethodGet, "/quizze/lehrer/?lehrerkennzahl=0000", "")
	expect(t, rec, env, http.StatusUnauthorized)

	rec, env = call(t, h, http.MethodGet, "/quizze/lehrer/?lehrerkennzahl=4242", "")
	expect(t, rec, env, http.StatusOK)
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			session = c
		}
	}
	if session == nil || !session.HttpOnly {
		t.Fatalf("session cookie = %+v", session)
	}

	rec, env = call(t, h, http.MethodPost, "/quizze/themen/?themaName=Netze", "", session)
	expect(t, rec, env, http.StatusCreated)

	// student routes stay open
	rec, env = call(t, h, http.MethodGet, "/quizze/themen/", "")
	expect(t, rec, env, http.StatusOK)
}

func TestHealthAndCORS(t *testing.T) {
	h := newTestRouter(t, false)
	for _, p := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/quizze/", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5500" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestQueryValuesKeepSurroundingSpaces(t *testing.T) {
	h := newTestRouter(t, false)

	rec, env := call(t, h, http.MethodPost, "/quizze/themen/?themaName=%20Netze", "")
	expect(t, rec, env, http.StatusCreated)
	rec, env = call(t, h, http.MethodGet, "/quizze/themen/", "")
	expect(t, rec, env, http.StatusOK)
	var topics []catalog.Topic
	if err := json.Unmarshal(env.Data, &topics); err != nil || len(topics) != 1 || topics[0].Name != " Netze" {
		t.Fatalf("topics = %s, %v", env.Data, err)
	}

	rec, env = call(t, h, http.MethodPost, "/quizze/themen/?themaName=%20%20", "")
	expect(t, rec, env, http.StatusBadRequest)

	seedCatalog(t, h)
	rec, env = call(t, h, http.MethodPost, "/quizze/",
		`{"bezeichnung":" Klausur ","themen":["Networking"],"anzahl_aufgaben":1,"modus":"pruefung"}`)
	expect(t, rec, env, http.StatusCreated)

	// the padded label finds the quiz, which has no submissions yet
	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/ergebnisse?pruefung_bezeichnung=%20Klausur%20", "")
	expect(t, rec, env, http.StatusNotFound)
	if !strings.Contains(env.Detail, "no exam records") {
		t.Fatalf("detail = %q", env.Detail)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/ergebnisse?pruefung_bezeichnung=Klausur", "")
	expect(t, rec, env, http.StatusNotFound)
	if strings.Contains(env.Detail, "no exam records") {
		t.Fatalf("trimmed label matched the padded quiz: %q", env.Detail)
	}

	rec, env = call(t, h, http.MethodGet, "/quizze/pruefung/ergebnisse?pruefung_bezeichnung=%20", "")
	expect(t, rec, env, http.StatusBadRequest)
}

type deadlinePinger struct {
	hasDeadline bool
}

func (p *deadlinePinger) PingContext(ctx context.Context) error {
	_, p.hasDeadline = ctx.Deadline()
	return nil
}

func TestRequestsCarryNoDeadline(t *testing.T) {
	pinger := &deadlinePinger{}
	h := NewRouter(Deps{
		DB:     pinger,
		Auth:   auth.NewAuthService("test-secret", time.Hour),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	rec, env := call(t, h, http.MethodGet, "/quizze/test-connection", "")
	expect(t, rec, env, http.StatusOK)
	if pinger.hasDeadline {
		t.Fatalf("request context has a deadline")
	}
}
