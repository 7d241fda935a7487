// Package apitest runs an in-memory stand-in for the lists/tasks API on an
// httptest server. Tests seed users, lists and tasks, inject failures per
// route, and inspect which requests arrived.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/idilsaglam/todolists/internal/model"
)

const (
	prefix     = "/api/v1"
	cookieName = "jwt"
)

// Request is one call the server received.
type Request struct {
	Method string
	Path   string
}

type account struct {
	model.User
	hash []byte
}

type failure struct {
	status  int
	message string
}

// Server is safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	nextID   int
	now      func() time.Time
	users    []account
	lists    []model.List
	tasks    []model.Task
	requests []Request
	failures map[string]failure
}

// New starts the server; callers Close it.
func New() *Server {
	s := &Server{
		secret:   []byte(uuid.NewString()),
		now:      time.Now,
		failures: map[string]failure{},
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix(prefix).Subrouter()
	api.Use(s.record)

	api.HandleFunc("/user", s.handleCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)

	api.HandleFunc("/lists/user/{userId}", s.handleListsForUser).Methods(http.MethodGet)
	api.HandleFunc("/lists", s.handleCreateList).Methods(http.MethodPost)
	api.HandleFunc("/lists/{url}", s.handleListByURL).Methods(http.MethodGet)

	api.HandleFunc("/tasks/list/{listId}", s.handleTasksForList).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", s.handleToggleTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	return r
}

// record logs the request and applies any injected failure for the
// matched route template.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path})
		var f failure
		var failing bool
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				f, failing = s.failures[r.Method+" "+tpl]
			}
		}
		s.mu.Unlock()

		if failing {
			if f.message == "" {
				w.WriteHeader(f.status)
				return
			}
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes every request matching method and route (a template below
// /api/v1, e.g. "/tasks/{id}") answer with status. An empty message sends
// no body.
func (s *Server) Fail(method, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+prefix+route] = failure{status: status, message: message}
}

// Recover removes an injected failure.
func (s *Server) Recover(method, route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+prefix+route)
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests used method on a path starting with
// pathPrefix (relative to /api/v1).
func (s *Server) Count(method, pathPrefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, prefix+pathPrefix) {
			n++
		}
	}
	return n
}

// AddUser seeds an enabled user.
func (s *Server) AddUser(name, email, password string) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: s.id(), Name: name, Email: email, IsEnabled: true}
	s.users = append(s.users, account{User: u, hash: hash})
	return u
}

// DisableUser marks a user as not activated.
func (s *Server) DisableUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].IsEnabled = false
		}
	}
}

// AddList seeds a list owned by ownerID.
func (s *Server) AddList(ownerID int, name string) model.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addList(ownerID, name)
}

// AddTask seeds a task created by the list's owner.
func (s *Server) AddTask(listID int, title, description string) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner := 0
	if l, ok := s.listByID(listID); ok {
		owner = l.OwnerID
	}
	return s.addTask(model.NewTask{ListID: listID, Title: title, Description: description}, owner)
}

// Tasks returns the stored tasks of a list, newest first.
func (s *Server) Tasks(listID int) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksFor(listID)
}

// SessionCookie returns a valid session cookie for userID, for tests that
// start already logged in.
func (s *Server) SessionCookie(userID int) *http.Cookie {
	tok, err := s.sign(userID)
	if err != nil {
		panic(err)
	}
	return &http.Cookie{Name: cookieName, Value: tok, Path: "/"}
}

// ----- helpers (callers hold mu) -----

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func (s *Server) addList(ownerID int, name string) model.List {
	l := model.List{
		ID:      s.id(),
		OwnerID: ownerID,
		Name:    name,
		URL:     slugify(name) + "-" + uuid.NewString()[:8],
	}
	s.lists = append(s.lists, l)
	return l
}

func (s *Server) addTask(nt model.NewTask, createdBy int) model.Task {
	id := s.id()
	t := model.Task{
		ID:          id,
		CreatedByID: createdBy,
		ListID:      nt.ListID,
		Title:       nt.Title,
		Description: nt.Description,
		URL:         slugify(nt.Title) + "-" + strconv.Itoa(id),
		// Creation order must survive equal clock readings.
		CreatedAt: s.now().UTC().Add(time.Duration(id) * time.Millisecond),
	}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Server) listByID(id int) (model.List, bool) {
	for _, l := range s.lists {
		if l.ID == id {
			return l, true
		}
	}
	return model.List{}, false
}

func (s *Server) tasksFor(listID int) []model.Task {
	out := []model.Task{}
	for _, t := range s.tasks {
		if t.ListID == listID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Server) userByEmail(email string) (account, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return account{}, false
}

func (s *Server) sign(userID int) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(30 * 24 * time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// loggedIn resolves the session cookie. Callers must not hold mu.
func (s *Server) loggedIn(r *http.Request) (model.User, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return model.User{}, false
	}
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(c.Value, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.User{}, false
	}
	id, err := strconv.Atoi(claims.Issuer)
	if err != nil {
		return model.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.User, true
		}
	}
	return model.User{}, false
}

func slugify(title string) string {
	const drop = "'\"+!%/=(){}[]|~ˇ$ß\\.:;?@&#<>"
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case strings.ContainsRune(drop, r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
