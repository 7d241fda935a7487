package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/idilsaglam/todolists/internal/model"
)

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide a valid user.")
		return
	}

	s.mu.Lock()
	acc, found := s.userByEmail(req.Email)
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "User with this email does not exist.")
		return
	}
	if !acc.IsEnabled {
		writeError(w, http.StatusForbidden, "This user is not activated.")
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)); err != nil {
		writeError(w, http.StatusForbidden, "Incorrect password.")
		return
	}

	tok, err := s.sign(acc.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to Log In. Try again later.")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   3600 * 24 * 30,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successful login!"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successful logout!"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		writeError(w, http.StatusBadRequest, "Please provide a valid user.")
		return
	}

	s.mu.Lock()
	_, exists := s.userByEmail(req.Email)
	s.mu.Unlock()
	if exists {
		writeError(w, http.StatusConflict, "User with this email already exists.")
		return
	}

	u := s.AddUser(req.Name, req.Email, req.Password)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleListsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please specify a valid id.")
		return
	}
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}
	if u.ID != userID {
		writeError(w, http.StatusForbidden, "You do not have permission to view this list.")
		return
	}

	s.mu.Lock()
	out := []model.List{}
	for i := len(s.lists) - 1; i >= 0; i-- {
		if s.lists[i].OwnerID == userID {
			out = append(out, s.lists[i])
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide a valid list.")
		return
	}
	switch n := utf8.RuneCountInString(req.Name); {
	case n < 3:
		writeError(w, http.StatusBadRequest, "The name has to be at least 3 characters long.")
		return
	case n > 32:
		writeError(w, http.StatusBadRequest, "The name can be maximum 32 characters long.")
		return
	}
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}

	s.mu.Lock()
	l := s.addList(u.ID, req.Name)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleListByURL(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}
	slug := mux.Vars(r)["url"]

	s.mu.Lock()
	var found *model.List
	for i := range s.lists {
		if s.lists[i].URL == slug {
			l := s.lists[i]
			found = &l
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeError(w, http.StatusNotFound, "List with this id does not exist.")
		return
	}
	if found.OwnerID != u.ID {
		writeError(w, http.StatusForbidden, "You do not have permission to view this list.")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleTasksForList(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.Atoi(mux.Vars(r)["listId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please specify a valid id.")
		return
	}
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists := s.listByID(listID)
	if !exists {
		writeError(w, http.StatusNotFound, "List with this ID does not exist.")
		return
	}
	if l.OwnerID != u.ID {
		writeError(w, http.StatusForbidden, "You do not have the permission to view this list.")
		return
	}
	writeJSON(w, http.StatusOK, s.tasksFor(listID))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req model.NewTask
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide a valid task.")
		return
	}
	switch n := utf8.RuneCountInString(req.Title); {
	case n < 3:
		writeError(w, http.StatusBadRequest, "The title has to be at least 3 characters long.")
		return
	case n > 32:
		writeError(w, http.StatusBadRequest, "The title can be maximum 32 characters long.")
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		writeError(w, http.StatusBadRequest, "The description can be maximum 256 characters long.")
		return
	}
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists := s.listByID(req.ListID)
	if !exists {
		writeError(w, http.StatusNotFound, "List with this ID does not exist.")
		return
	}
	if l.OwnerID != u.ID {
		writeError(w, http.StatusForbidden, "You do not have the permission to create in this list.")
		return
	}
	writeJSON(w, http.StatusCreated, s.addTask(req, u.ID))
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	s.withOwnTask(w, r, func(i int) {
		s.tasks[i].IsDone = !s.tasks[i].IsDone
		writeJSON(w, http.StatusAccepted, s.tasks[i])
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.withOwnTask(w, r, func(i int) {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted."})
	})
}

// withOwnTask runs fn with mu held and the index of the task named in the
// route, after the usual id, existence and ownership checks.
func (s *Server) withOwnTask(w http.ResponseWriter, r *http.Request, fn func(i int)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please specify a valid id.")
		return
	}
	u, ok := s.loggedIn(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if s.tasks[i].CreatedByID != u.ID {
			writeError(w, http.StatusForbidden, "You do not have permission to do this.")
			return
		}
		fn(i)
		return
	}
	writeError(w, http.StatusNotFound, "Task with this ID does not exist.")
}
