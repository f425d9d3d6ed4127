package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-quiz/internal/catalog"
)

type createTopicRequest struct {
	ThemaName string `json:"themaName" validate:"required"`
}

type createTaskRequest struct {
	Aussage1 string `json:"aussage1" validate:"required"`
	Aussage2 string `json:"aussage2" validate:"required"`
	Loesung  *int   `json:"loesung" validate:"required"`
	Feedback string `json:"feedback"`
	Thema    string `json:"thema" validate:"required"`
}

// GET /aufgaben
func ListAllTasksHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := svc.ListAllTasks(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, tasks, "")
	}
}

// GET /quizze/themen/
func ListTopicsHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := svc.ListTopics(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, topics, "")
	}
}

// POST /quizze/themen/?themaName=... or with a JSON body {"themaName": "..."}
func CreateTopicHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("themaName")
		if strings.TrimSpace(name) == "" {
			var req createTopicRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, r, logger, err)
				return
			}
			name = req.ThemaName
		}
		topic, err := svc.CreateTopic(r.Context(), name)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusCreated, topic, fmt.Sprintf("Thema '%s' erfolgreich erstellt.", topic.Name))
	}
}

// GET /quizze/aufgaben/
func ListTasksByTopicHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListTasksByTopic(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, groupByTopic(rows), "")
	}
}

// GET /quizze/aufgaben/{ref} where ref is a topic name.
func ListTasksForTopicHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "ref")
		rows, err := svc.ListTasksForTopic(r.Context(), name)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		tasks := make([]catalog.Task, 0, len(rows))
		for _, row := range rows {
			tasks = append(tasks, row.Task)
		}
		msg := ""
		if len(tasks) == 0 {
			msg = fmt.Sprintf("Keine Aufgaben für Thema '%s' gefunden.", name)
		}
		ok(w, http.StatusOK, tasks, msg)
	}
}

// POST /quizze/aufgaben/
func CreateTaskHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, logger, err)
			return
		}
		task, err := svc.CreateTask(r.Context(), catalog.NewTask{
			StatementA: req.Aussage1,
			StatementB: req.Aussage2,
			Solution:   *req.Loesung,
			Feedback:   req.Feedback,
			TopicName:  req.Thema,
		})
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusCreated, task, "")
	}
}

// PUT /quizze/aufgaben/{ref} where ref is a task id. Absent fields keep
// their stored values.
func UpdateTaskHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "ref")
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		var patch catalog.TaskPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, r, logger, err)
			return
		}
		task, err := svc.UpdateTask(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, task, "")
	}
}

// DELETE /quizze/aufgaben/{ref}
func DeleteTaskHandler(svc *catalog.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "ref")
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		if err := svc.DeleteTask(r.Context(), id); err != nil {
			writeError(w, r, logger, err)
			return
		}
		ok(w, http.StatusOK, nil, fmt.Sprintf("Aufgabe mit ID %d wurde erfolgreich gelöscht.", id))
	}
}

// groupByTopic keys the flat join by topic name.
func groupByTopic(rows []catalog.TopicTask) map[string][]catalog.Task {
	out := make(map[string][]catalog.Task)
	for _, row := range rows {
		out[row.TopicName] = append(out[row.TopicName], row.Task)
	}
	return out
}
