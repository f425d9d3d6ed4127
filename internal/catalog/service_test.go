package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
	"github.com/mind-engage/mindengage-quiz/internal/catalog"
	"github.com/mind-engage/mindengage-quiz/internal/db/dbtest"
)

func newService(t *testing.T) (*catalog.Service, func(table string) int) {
	t.Helper()
	dbh := dbtest.Open(t)
	svc := catalog.NewService(catalog.NewSQLStore(dbh), nil)
	return svc, func(table string) int { return dbtest.Count(t, dbh, table) }
}

func TestCreateTopicRejectsDuplicate(t *testing.T) {
	svc, count := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateTopic(ctx, "Networking"); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	_, err := svc.CreateTopic(ctx, "Networking")
	if !errors.Is(err, catalog.ErrDuplicateTopic) {
		t.Fatalf("err = %v, want ErrDuplicateTopic", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
	if n := count("topics"); n != 1 {
		t.Fatalf("topics = %d, want 1", n)
	}

	// exact, case-sensitive match
	if _, err := svc.CreateTopic(ctx, "networking"); err != nil {
		t.Fatalf("create lower-case topic: %v", err)
	}
}

func TestCreateTopicRequiresName(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.CreateTopic(context.Background(), "  "); !errors.Is(err, catalog.ErrEmptyTopicName) {
		t.Fatalf("err = %v, want ErrEmptyTopicName", err)
	}
}

func TestCreateTaskUnknownTopic(t *testing.T) {
	svc, count := newService(t)
	_, err := svc.CreateTask(context.Background(), catalog.NewTask{
		StatementA: "TCP ist verbindungsorientiert",
		StatementB: "UDP ist verbindungsorientiert",
		Solution:   1,
		TopicName:  "Fehlt",
	})
	if !errors.Is(err, catalog.ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
	if n := count("tasks"); n != 0 {
		t.Fatalf("tasks = %d, want 0", n)
	}
}

func TestCreateUpdateDeleteTask(t *testing.T) {
	svc, count := newService(t)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, "Networking")
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	task, err := svc.CreateTask(ctx, catalog.NewTask{
		StatementA: "TCP ist verbindungsorientiert",
		StatementB: "UDP ist verbindungsorientiert",
		Solution:   1,
		Feedback:   "TCP baut eine Verbindung auf.",
		TopicName:  "Networking",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == 0 || task.TopicID != topic.ID {
		t.Fatalf("unexpected task: %+v", task)
	}

	updated, err := svc.UpdateTask(ctx, task.ID, catalog.TaskPatch{Feedback: catalog.Some("neu")})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	want := task
	want.Feedback = "neu"
	if updated != want {
		t.Fatalf("updated = %+v, want %+v", updated, want)
	}

	all, err := svc.ListAllTasks(ctx)
	if err != nil || len(all) != 1 || all[0] != want {
		t.Fatalf("ListAllTasks = %+v, %v", all, err)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if n := count("tasks"); n != 0 {
		t.Fatalf("tasks = %d, want 0", n)
	}
	if err := svc.DeleteTask(ctx, task.ID); !errors.Is(err, catalog.ErrTaskNotFound) {
		t.Fatalf("second delete err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.UpdateTask(ctx, 1, catalog.TaskPatch{}); !errors.Is(err, catalog.ErrNoFieldsToUpdate) {
		t.Fatalf("err = %v, want ErrNoFieldsToUpdate", err)
	}
	if _, err := svc.UpdateTask(ctx, 99, catalog.TaskPatch{Solution: catalog.Some(2)}); !errors.Is(err, catalog.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestListTasksByTopicIsFlatJoin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Netze", "Datenbanken"} {
		if _, err := svc.CreateTopic(ctx, name); err != nil {
			t.Fatalf("create topic: %v", err)
		}
	}
	for i, topic := range []string{"Netze", "Netze", "Datenbanken"} {
		if _, err := svc.CreateTask(ctx, catalog.NewTask{StatementA: "a", StatementB: "b", Solution: i % 2, TopicName: topic}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	rows, err := svc.ListTasksByTopic(ctx)
	if err != nil {
		t.Fatalf("ListTasksByTopic: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	perTopic := map[string]int{}
	for _, r := range rows {
		perTopic[r.TopicName]++
	}
	if perTopic["Netze"] != 2 || perTopic["Datenbanken"] != 1 {
		t.Fatalf("per topic = %v", perTopic)
	}

	only, err := svc.ListTasksForTopic(ctx, "Datenbanken")
	if err != nil || len(only) != 1 || only[0].TopicName != "Datenbanken" {
		t.Fatalf("ListTasksForTopic = %+v, %v", only, err)
	}
	none, err := svc.ListTasksForTopic(ctx, "Unbekannt")
	if err != nil || len(none) != 0 {
		t.Fatalf("unknown topic = %+v, %v", none, err)
	}

	topics, err := svc.ListTopics(ctx)
	if err != nil || len(topics) != 2 {
		t.Fatalf("ListTopics = %+v, %v", topics, err)
	}
}
