// Package tui is the interactive client: a session bootstrap that resolves
// who is logged in, a router over three paths, and one model per page.
// Pages own the data they fetch; nothing is shared between them.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/model"
)

// Backend is the API surface the pages use.
type Backend interface {
	CurrentUser(ctx context.Context) (*model.User, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) error
	ListsForUser(ctx context.Context, userID int) ([]model.List, error)
	CreateList(ctx context.Context, name string) (model.List, error)
	ListByURL(ctx context.Context, slug string) (model.List, error)
	TasksForList(ctx context.Context, listID int) ([]model.Task, error)
	CreateTask(ctx context.Context, t model.NewTask) (model.Task, error)
	ToggleTask(ctx context.Context, taskID int) error
	DeleteTask(ctx context.Context, taskID int) error
}

// Options configure Run.
type Options struct {
	Backend Backend
	Log     *logging.Logger
	// Path is the initial route, e.g. "/" or "/lists/groceries-1a2b3c4d".
	Path string
	// OnSessionChange runs after a successful login or logout so the
	// caller can persist the session cookies.
	OnSessionChange func()
}

const defaultNoticeTTL = 4 * time.Second

// env is what every page needs from the outside world.
type env struct {
	ctx             context.Context
	backend         Backend
	log             *logging.Logger
	onSessionChange func()
	noticeTTL       time.Duration
	width, height   int
}

func newEnv(ctx context.Context, opt Options) *env {
	log := opt.Log
	if log == nil {
		log = logging.Nop()
	}
	return &env{
		ctx:             ctx,
		backend:         opt.Backend,
		log:             log,
		onSessionChange: opt.OnSessionChange,
		noticeTTL:       defaultNoticeTTL,
		width:           80,
		height:          24,
	}
}

func (e *env) sessionChanged() {
	if e.onSessionChange != nil {
		e.onSessionChange()
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opt Options) error {
	m := newApp(newEnv(ctx, opt), opt.Path)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
