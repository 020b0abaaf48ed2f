// Package web serves the board over a local HTTP JSON API, for scripts and
// editor integrations. Responses use the nested-JSON wire shape; mutations
// load the board, apply the pure engine functions, and save the result.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"driftboard/internal/model"
	"driftboard/internal/store"
	"driftboard/internal/tree"
)

type Server struct {
	// mu serializes load-modify-save cycles; the engine itself is pure, so
	// concurrent readers of an already-loaded tree need no locking.
	mu sync.Mutex
	st store.Store
}

func NewServer(st store.Store) *Server {
	return &Server{st: st}
}

// Router builds the mux router for the API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tasks", s.handleGetTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{taskID}", s.handleGetTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{taskID}", s.handlePatchTask).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{taskID}", s.handleDeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/tasks/{taskID}/subtasks", s.handleCreateSubtask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{taskID}/move", s.handleMoveTask).Methods(http.MethodPost)
	r.Use(requestLogger)
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	log.Printf("driftboard web API listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleGetTasks handles GET /tasks. Filter/sort/group query params drive
// the projector: status, priority, due, search, sort, desc, group.
func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, err := s.st.Load()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	f := tree.Filters{
		Status:   tree.StatusFilter(strings.ToLower(q.Get("status"))),
		Priority: tree.PriorityFilter(strings.ToLower(q.Get("priority"))),
		Due:      tree.DueFilter(strings.ToLower(q.Get("due"))),
		Search:   q.Get("search"),
	}
	srt := tree.Sort{
		Key:  tree.SortKey(strings.ToLower(q.Get("sort"))),
		Desc: q.Get("desc") == "true" || q.Get("desc") == "1",
	}
	view := tree.Project(b.Tasks, f, srt)
	if q.Get("group") == "true" || q.Get("group") == "1" {
		writeJSON(w, http.StatusOK, tree.GroupByCategory(view))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b, err := s.st.Load()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	t, ok := tree.Find(b.Tasks, mux.Vars(r)["taskID"])
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type createTaskRequest struct {
	Text     string         `json:"text"`
	Category string         `json:"category"`
	Priority model.Priority `json:"priority"`
	DueDate  string         `json:"dueDate"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tasks := tree.AddTask(b.Tasks, req.Text)
	id := tasks[len(tasks)-1].ID
	tasks = applyCreateExtras(tasks, id, req)
	b.Tasks = tasks
	if err := s.st.Save(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	t, _ := tree.Find(tasks, id)
	writeJSON(w, http.StatusCreated, t)
}

func applyCreateExtras(tasks []model.Task, id string, req createTaskRequest) []model.Task {
	patch := tree.Patch{}
	changed := false
	if strings.TrimSpace(req.Category) != "" {
		patch.Category = &req.Category
		changed = true
	}
	if req.Priority != "" {
		patch.Priority = &req.Priority
		changed = true
	}
	if strings.TrimSpace(req.DueDate) != "" {
		patch.DueDate = &req.DueDate
		changed = true
	}
	if !changed {
		return tasks
	}
	return tree.UpdateTask(tasks, id, patch)
}

func (s *Server) handleCreateSubtask(w http.ResponseWriter, r *http.Request) {
	parentID := mux.Vars(r)["taskID"]
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, ok := tree.Find(b.Tasks, parentID); !ok {
		http.Error(w, "parent not found", http.StatusNotFound)
		return
	}
	tasks := tree.AddSubtask(b.Tasks, parentID, req.Text)
	parent, _ := tree.Find(tasks, parentID)
	id := parent.Subtasks[len(parent.Subtasks)-1].ID
	b.Tasks = tasks
	if err := s.st.Save(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	t, _ := tree.Find(tasks, id)
	writeJSON(w, http.StatusCreated, t)
}

type patchTaskRequest struct {
	Text        *string         `json:"text"`
	Description *string         `json:"description"`
	Done        *bool           `json:"done"`
	Category    *string         `json:"category"`
	Priority    *model.Priority `json:"priority"`
	DueDate     *string         `json:"dueDate"`
	IsExpanded  *bool           `json:"isExpanded"`
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req patchTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		http.Error(w, "text cannot be empty", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, ok := tree.Find(b.Tasks, taskID); !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	b.Tasks = tree.UpdateTask(b.Tasks, taskID, tree.Patch{
		Text:        req.Text,
		Description: req.Description,
		Done:        req.Done,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		IsExpanded:  req.IsExpanded,
	})
	if err := s.st.Save(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	t, _ := tree.Find(b.Tasks, taskID)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, ok := tree.Find(b.Tasks, taskID); !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	b.Tasks = tree.DeleteTask(b.Tasks, taskID)
	if err := s.st.Save(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": taskID})
}

type moveTaskRequest struct {
	After string `json:"after"`
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, ok := tree.Find(b.Tasks, taskID); !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	b.Tasks = tree.MoveTask(b.Tasks, taskID, req.After)
	if err := s.st.Save(b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, b.Tasks)
}
