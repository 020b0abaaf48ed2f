package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"driftboard/internal/model"
	"driftboard/internal/store"
	"driftboard/internal/tree"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(store.Store{Dir: t.TempDir()})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) model.Task {
	t.Helper()
	var task model.Task
	if err := json.NewDecoder(rec.Body).Decode(&task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{
		"text": "Buy milk", "category": "errands", "priority": "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeTask(t, rec)
	if created.ID == "" || created.Text != "Buy milk" {
		t.Fatalf("bad created task: %+v", created)
	}
	if created.Category != "errands" || created.Priority != model.PriorityHigh {
		t.Fatalf("extras not applied: %+v", created)
	}

	rec = doJSON(t, srv, http.MethodGet, "/tasks/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeTask(t, rec); got.ID != created.ID {
		t.Fatalf("expected task %s, got %s", created.ID, got.ID)
	}
}

func TestCreateTask_RequiresText(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateSubtaskAndListFiltered(t *testing.T) {
	srv := newTestServer(t)

	parent := decodeTask(t, doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "Parent"}))
	rec := doJSON(t, srv, http.MethodPost, "/tasks/"+parent.ID+"/subtasks", map[string]string{"text": "Child"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	child := decodeTask(t, rec)
	if child.ParentID != parent.ID || child.Depth != 1 {
		t.Fatalf("subtask not nested: %+v", child)
	}

	// Mark the child done, then list completed: the parent must survive as
	// an ancestor of the match.
	done := true
	rec = doJSON(t, srv, http.MethodPatch, "/tasks/"+child.ID, map[string]any{"done": done})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/tasks?status=completed", nil)
	var listed []model.Task
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != parent.ID {
		t.Fatalf("expected ancestor-preserved parent, got %+v", listed)
	}
	if len(listed[0].Subtasks) != 1 || listed[0].Subtasks[0].ID != child.ID {
		t.Fatalf("expected surviving child, got %+v", listed[0].Subtasks)
	}
}

func TestListGrouped(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "a", "category": "work"})
	doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "b"})

	rec := doJSON(t, srv, http.MethodGet, "/tasks?group=1", nil)
	var groups []tree.CategoryGroup
	if err := json.NewDecoder(rec.Body).Decode(&groups); err != nil {
		t.Fatalf("decode groups: %v", err)
	}
	if len(groups) != 2 || groups[0].Name != "work" || groups[1].Name != tree.UncategorizedBucket {
		names := make([]string, len(groups))
		for i := range groups {
			names[i] = groups[i].Name
		}
		t.Fatalf("unexpected buckets: %v", names)
	}
}

func TestMoveTaskEndpoint(t *testing.T) {
	srv := newTestServer(t)
	a := decodeTask(t, doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "A"}))
	b := decodeTask(t, doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "B"}))

	rec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/tasks/%s/move", a.ID), map[string]string{"after": b.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var tasks []model.Task
	if err := json.NewDecoder(rec.Body).Decode(&tasks); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Fatalf("expected order [B A], got %+v", tasks)
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	srv := newTestServer(t)
	a := decodeTask(t, doJSON(t, srv, http.MethodPost, "/tasks", map[string]string{"text": "A"}))
	doJSON(t, srv, http.MethodPost, "/tasks/"+a.ID+"/subtasks", map[string]string{"text": "child"})

	rec := doJSON(t, srv, http.MethodDelete, "/tasks/"+a.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/tasks/"+a.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestMutationsOnMissingTask(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/tasks/ghost", nil},
		{http.MethodPatch, "/tasks/ghost", map[string]any{"done": true}},
		{http.MethodDelete, "/tasks/ghost", nil},
		{http.MethodPost, "/tasks/ghost/move", map[string]string{"after": "x"}},
		{http.MethodPost, "/tasks/ghost/subtasks", map[string]string{"text": "x"}},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
	}
}
