package tui

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/apitest"
	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type harness struct {
	t      *testing.T
	srv    *apitest.Server
	client *api.Client
	env    *env
	m      tea.Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	e := newEnv(context.Background(), Options{Backend: c})
	e.noticeTTL = time.Millisecond
	return &harness{t: t, srv: srv, client: c, env: e}
}

func (h *harness) loginAs(u model.User) {
	h.client.SetCookies([]*http.Cookie{h.srv.SessionCookie(u.ID)})
}

func (h *harness) start(path string) {
	m := newApp(h.env, path)
	h.m = m
	h.drain(m.Init())
}

// drain runs commands synchronously, feeding their messages back into the
// model. Spinner ticks and notice expiry are dropped so nothing loops.
func (h *harness) drain(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			h.t.Fatalf("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, noticeExpiredMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return
		default:
			var next tea.Cmd
			h.m, next = h.m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		h.m, cmd = h.m.Update(keyMsg(k))
		h.drain(cmd)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	var cmd tea.Cmd
	h.m, cmd = h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	h.drain(cmd)
}

func (h *harness) view() string { return xansi.Strip(h.m.View()) }

func (h *harness) route() route { return h.m.(appModel).route }

func (h *harness) mustSee(parts ...string) {
	h.t.Helper()
	v := h.view()
	for _, p := range parts {
		if !strings.Contains(v, p) {
			h.t.Fatalf("expected %q in view:\n%s", p, v)
		}
	}
}

func (h *harness) mustNotSee(parts ...string) {
	h.t.Helper()
	v := h.view()
	for _, p := range parts {
		if strings.Contains(v, p) {
			h.t.Fatalf("did not expect %q in view:\n%s", p, v)
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in   string
		want route
	}{
		{"", route{kind: routeRoot}},
		{"/", route{kind: routeRoot}},
		{"/register", route{kind: routeRegister}},
		{"register/", route{kind: routeRegister}},
		{"/lists/groceries-1a2b", route{kind: routeList, slug: "groceries-1a2b"}},
		{"/lists/groceries-1a2b?x=1", route{kind: routeList, slug: "groceries-1a2b"}},
		{"/lists/", route{kind: routeRoot}},
		{"/lists/a/b", route{kind: routeRoot}},
		{"/nope", route{kind: routeRoot}},
	}
	for _, tt := range tests {
		if got := parseRoute(tt.in); got != tt.want {
			t.Fatalf("parseRoute(%q)=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestApp_ShowsSpinnerUntilSessionResolves(t *testing.T) {
	h := newHarness(t)
	h.m = newApp(h.env, "/")
	h.mustSee("Loading...")
}

func TestApp_SessionFailureShowsLogin(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail(http.MethodGet, "/user", http.StatusInternalServerError, "")
	h.start("/")

	h.mustSee("Log In", "Your email address:", "Don't have an account? Register here!")
}

func TestApp_LoggedInRootShowsHome(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.srv.AddList(jo.ID, "Groceries")
	h.loginAs(jo)
	h.start("/")

	h.mustSee("Welcome, Jo! 👋", "Log Out", "Your Lists", "Groceries", "Owner: You")
}

func TestApp_UnknownPathIsRoot(t *testing.T) {
	h := newHarness(t)
	h.start("/nowhere")
	h.mustSee("Log In")
}

func TestLogin_ValidationAndSuccess(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("Jo", "j@d.com", "secret")
	h.start("/")

	h.typeText("j@d")
	h.mustSee("This email is too short.")

	h.typeText(".com")
	h.mustNotSee("This email is too short.")

	h.press("tab")
	h.typeText("secret")
	h.press("enter")

	h.mustSee("Welcome, Jo!")
	if h.srv.Count(http.MethodPost, "/login") != 1 {
		t.Fatalf("expected one login request")
	}
}

func TestLogin_ServerErrorShownVerbatim(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("Jo", "j@d.com", "secret")
	h.start("/")

	h.typeText("j@d.com")
	h.press("tab")
	h.typeText("wrong")
	h.press("enter")

	h.mustSee("Incorrect password.", "Log In")
}

func TestLogin_FailureLogKeepsEmailOut(t *testing.T) {
	h := newHarness(t)
	var buf bytes.Buffer
	h.env.log = logging.New(&buf)
	h.srv.AddUser("Jo", "j@d.com", "secret")
	h.start("/")

	h.typeText("j@d.com")
	h.press("tab")
	h.typeText("wrong")
	h.press("enter")

	if !strings.Contains(buf.String(), "login:") {
		t.Fatalf("expected the failure to be logged, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "j@d.com") {
		t.Fatalf("log must not carry the email: %q", buf.String())
	}
}

func TestLogin_DisabledUntilValid(t *testing.T) {
	h := newHarness(t)
	h.start("/")

	h.typeText("j@d.com")
	h.press("tab", "enter")
	if h.srv.Count(http.MethodPost, "/login") != 0 {
		t.Fatalf("login sent with an empty password")
	}
}

func TestLogin_LinkOpensRegister(t *testing.T) {
	h := newHarness(t)
	h.start("/")

	h.press("tab", "tab", "tab", "enter")
	if h.route().kind != routeRegister {
		t.Fatalf("expected register route, got %+v", h.route())
	}
	h.mustSee("Register", "Your name:")
}

func TestRegister_SuccessReturnsToLoginWithNotice(t *testing.T) {
	h := newHarness(t)
	h.start("/register")

	h.typeText("Jo Doe")
	h.press("tab")
	h.typeText("jo@doe.com")
	h.press("tab")
	h.typeText("secret1")
	h.press("enter")

	if h.route().kind != routeRoot {
		t.Fatalf("expected root route, got %+v", h.route())
	}
	h.mustSee(registeredNotice, "Log In")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("Jo", "jo@doe.com", "secret")
	h.start("/register")

	h.typeText("Jo Doe")
	h.press("tab")
	h.typeText("jo@doe.com")
	h.press("tab")
	h.typeText("secret1")
	h.press("enter")

	h.mustSee("User with this email already exists.")
}

func TestRegister_LoggedInRedirectsToRoot(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.start("/register")

	if h.route().kind != routeRoot {
		t.Fatalf("expected redirect to root, got %+v", h.route())
	}
	h.mustSee("Welcome, Jo!")
}

func TestHome_EmptyListsAndCreate(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.start("/")

	h.mustSee("You don't have a list yet.")

	h.typeText("ab")
	h.press("enter")
	if h.srv.Count(http.MethodPost, "/lists") != 0 {
		t.Fatalf("create sent for a two character name")
	}

	h.typeText("c")
	h.press("enter")
	h.mustSee("abc")
	h.mustNotSee("You don't have a list yet.")
	if page := h.m.(appModel).page.(*homePage); page.lists.name.value() != "" {
		t.Fatalf("expected input cleared after create, got %q", page.lists.name.value())
	}
}

func TestHome_CreateFailureKeepsInput(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.srv.Fail(http.MethodPost, "/lists", http.StatusInternalServerError, "boom")
	h.start("/")

	h.typeText("Chores")
	h.press("enter")

	page := h.m.(appModel).page.(*homePage)
	if page.lists.creating {
		t.Fatalf("create should be enabled again after a failure")
	}
	if page.lists.name.value() != "Chores" {
		t.Fatalf("input should be kept, got %q", page.lists.name.value())
	}
}

func TestHome_LoadFailureShowsEmpty(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.srv.Fail(http.MethodGet, "/lists/user/{userId}", http.StatusInternalServerError, "")
	h.start("/")

	h.mustSee("You don't have a list yet.")
}

func TestHome_OpenList(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	l := h.srv.AddList(jo.ID, "Groceries")
	h.loginAs(jo)
	h.start("/")

	h.press("tab", "tab", "enter")
	if got := h.route(); got.kind != routeList || got.slug != l.URL {
		t.Fatalf("expected list route for %q, got %+v", l.URL, got)
	}
	h.mustSee("Groceries", "You don't have a task yet.")
}

func TestHome_LogoutResetsSession(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)

	changed := 0
	h.env.onSessionChange = func() { changed++ }
	h.start("/")

	h.press("tab", "tab", "tab", "enter")
	h.mustSee("Log In")
	h.mustNotSee("Welcome")
	if changed != 1 {
		t.Fatalf("expected session change callback once, got %d", changed)
	}
	if h.srv.Count(http.MethodGet, "/user") != 2 {
		t.Fatalf("expected the bootstrap to run again")
	}
}

func TestHome_LogoutFailureStillLogsOut(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.srv.Fail(http.MethodPost, "/logout", http.StatusInternalServerError, "down")
	h.start("/")

	h.press("tab", "tab", "tab", "enter")
	h.mustSee("Log In")
	h.mustNotSee("Welcome")
	if len(h.client.Cookies()) != 0 {
		t.Fatalf("expected the session cookie to be gone")
	}
}

type listFixture struct {
	*harness
	list model.List
	milk model.Task
}

func newListFixture(t *testing.T) listFixture {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	l := h.srv.AddList(jo.ID, "Groceries")
	milk := h.srv.AddTask(l.ID, "Milk", "two litres")
	h.loginAs(jo)
	h.start(listPath(l.URL))
	return listFixture{harness: h, list: l, milk: milk}
}

func TestListPage_ShowsTasks(t *testing.T) {
	f := newListFixture(t)
	f.mustSee("Groceries", "Milk - in progress", "two litres", "Mark as DONE", "Delete", "0/1 done")
}

func TestListPage_UnknownSlugGoesHome(t *testing.T) {
	h := newHarness(t)
	jo := h.srv.AddUser("Jo", "j@d.com", "secret")
	h.loginAs(jo)
	h.start("/lists/missing-00000000")

	if h.route().kind != routeRoot {
		t.Fatalf("expected root, got %+v", h.route())
	}
	h.mustSee("Your Lists")
}

func TestListPage_ToggleIsOptimistic(t *testing.T) {
	f := newListFixture(t)

	var cmd tea.Cmd
	f.m, cmd = f.m.Update(keyMsg(" "))
	f.mustSee("Milk - done", "Mark as IN PROGRESS")
	f.drain(cmd)

	f.mustSee("Milk - done")
	if !f.srv.Tasks(f.list.ID)[0].IsDone {
		t.Fatalf("server did not record the toggle")
	}
}

func TestListPage_ToggleFailureRollsBack(t *testing.T) {
	f := newListFixture(t)
	f.srv.Fail(http.MethodPatch, "/tasks/{id}", http.StatusInternalServerError, "boom")

	var cmd tea.Cmd
	f.m, cmd = f.m.Update(keyMsg("t"))
	f.mustSee("Milk - done")
	f.drain(cmd)

	f.mustSee("Milk - in progress", "Its status was reverted.")
}

func TestListPage_TwoFailedTogglesMatchServer(t *testing.T) {
	f := newListFixture(t)
	f.srv.Fail(http.MethodPatch, "/tasks/{id}", http.StatusInternalServerError, "boom")

	var first, second tea.Cmd
	f.m, first = f.m.Update(keyMsg("t"))
	f.m, second = f.m.Update(keyMsg("t"))
	f.mustSee("Milk - in progress")
	f.drain(first)
	f.drain(second)

	if f.srv.Tasks(f.list.ID)[0].IsDone {
		t.Fatalf("server task should still be in progress")
	}
	f.mustSee("Milk - in progress", "0/1 done")
}

func TestListPage_DeleteNeedsConfirmation(t *testing.T) {
	f := newListFixture(t)

	f.press("d")
	f.mustSee("Delete task", `Delete "Milk"?`)
	if n := f.srv.Count(http.MethodDelete, "/tasks/"); n != 0 {
		t.Fatalf("delete sent before confirmation: %d", n)
	}

	f.press("esc")
	f.mustNotSee("Delete task")
	if n := f.srv.Count(http.MethodDelete, "/tasks/"); n != 0 {
		t.Fatalf("delete sent after cancel: %d", n)
	}

	f.press("d", "y")
	if n := f.srv.Count(http.MethodDelete, "/tasks/"); n != 1 {
		t.Fatalf("expected one delete, got %d", n)
	}
	if len(f.srv.Tasks(f.list.ID)) != 0 {
		t.Fatalf("task still on server")
	}
	f.mustSee("You don't have a task yet.")
}

func TestListPage_CreateRefetches(t *testing.T) {
	f := newListFixture(t)
	before := f.srv.Count(http.MethodGet, "/tasks/list/")

	f.press("n")
	f.mustSee("Create a new task")
	f.typeText("Eggs")
	f.press("enter")
	f.typeText("a dozen")
	f.press("enter")

	f.mustNotSee("Create a new task")
	if got := f.srv.Count(http.MethodGet, "/tasks/list/"); got != before+1 {
		t.Fatalf("expected a refetch after create, got %d -> %d", before, got)
	}
	if len(f.srv.Tasks(f.list.ID)) != 2 {
		t.Fatalf("expected two tasks on the server")
	}
	f.mustSee("0/2 done")
}

func TestListPage_CreateFailureShowsNotice(t *testing.T) {
	f := newListFixture(t)
	f.srv.Fail(http.MethodPost, "/tasks", http.StatusInternalServerError, "Failed to create the task.")

	f.press("n")
	f.typeText("Eggs")
	f.press("tab")
	f.typeText("a dozen")
	f.press("tab", "enter")

	f.mustSee("Could not create the task: Failed to create the task.")
}

func TestListPage_CreateFormValidates(t *testing.T) {
	f := newListFixture(t)

	f.press("n")
	f.typeText("ab")
	f.mustSee("The title has to be at least 3 characters long.")
	f.press("tab", "tab", "enter")
	if f.srv.Count(http.MethodPost, "/tasks") != 0 {
		t.Fatalf("create sent with an invalid title")
	}
	f.press("esc")
	f.mustNotSee("Create a new task")

	f.press("n")
	f.typeText("Eggs")
	f.press("tab", "tab", "enter")
	if f.srv.Count(http.MethodPost, "/tasks") != 0 {
		t.Fatalf("create sent without a description")
	}
	f.mustSee("Create a new task")
	f.press("esc")
	f.mustNotSee("Create a new task")
}

func TestListPage_DescriptionPopup(t *testing.T) {
	f := newListFixture(t)

	f.press("enter")
	f.mustSee("Milk", "two litres")
	f.press("esc")
	if f.m.(appModel).page.(*listPage).detail != "" {
		t.Fatalf("expected the popup to close")
	}
}

func TestListPage_EscGoesHome(t *testing.T) {
	f := newListFixture(t)
	f.press("esc")
	if f.route().kind != routeRoot {
		t.Fatalf("expected root, got %+v", f.route())
	}
	f.mustSee("Your Lists", "Groceries")
}

func TestListPage_DropsTasksForOtherList(t *testing.T) {
	f := newListFixture(t)
	p := f.m.(appModel).page.(*listPage)

	p.Update(tasksLoadedMsg{listID: f.list.ID + 100, tasks: []model.Task{{ID: 9, Title: "Other"}}})
	f.mustNotSee("Other")
	f.mustSee("Milk")
}
