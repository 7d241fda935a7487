// Package api is the HTTP client for the lists/tasks server. Every call
// goes through one cookie jar, which carries the session cookie the
// server sets on login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/model"
)

const basePath = "/api/v1"

// Client talks to one server.
type Client struct {
	base *url.URL
	http *http.Client
	log  *logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Jar is replaced with
// a fresh cookie jar when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for server, e.g. "http://localhost:8080".
func New(server string, opts ...Option) (*Client, error) {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http(s): %q", server)
	}
	c := &Client{base: u, http: &http.Client{}, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Server returns the base URL the client was built with.
func (c *Client) Server() string { return c.base.String() }

// Cookies returns the session cookies the jar holds for the API.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.endpoint("/"))
}

// SetCookies seeds the jar, e.g. from a saved session.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	c.http.Jar.SetCookies(c.endpoint("/"), cookies)
}

func (c *Client) endpoint(path string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + basePath + path
	return &u
}

// CurrentUser asks who is logged in.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/login", model.LoginRequest{Email: email, Password: password}, nil)
}

// Logout ends the session on the server. The local session cookies are
// dropped even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	c.dropCookies()
	return err
}

func (c *Client) dropCookies() {
	var expired []*http.Cookie
	for _, ck := range c.Cookies() {
		for _, p := range []string{"/", basePath} {
			expired = append(expired, &http.Cookie{Name: ck.Name, Path: p, MaxAge: -1})
		}
	}
	if len(expired) > 0 {
		c.http.Jar.SetCookies(c.endpoint("/"), expired)
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := model.RegisterRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/register", body, nil)
}

func (c *Client) ListsForUser(ctx context.Context, userID int) ([]model.List, error) {
	var lists []model.List
	if err := c.do(ctx, http.MethodGet, "/lists/user/"+strconv.Itoa(userID), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) CreateList(ctx context.Context, name string) (model.List, error) {
	var l model.List
	err := c.do(ctx, http.MethodPost, "/lists", struct {
		Name string `json:"name"`
	}{Name: name}, &l)
	return l, err
}

// ListByURL resolves a list by its slug.
func (c *Client) ListByURL(ctx context.Context, slug string) (model.List, error) {
	var l model.List
	err := c.do(ctx, http.MethodGet, "/lists/"+slug, nil, &l)
	return l, err
}

func (c *Client) TasksForList(ctx context.Context, listID int) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/list/"+strconv.Itoa(listID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask posts a new task. The server may answer without a body.
func (c *Client) CreateTask(ctx context.Context, t model.NewTask) (model.Task, error) {
	var created model.Task
	err := c.do(ctx, http.MethodPost, "/tasks", t, &created)
	return created, err
}

// ToggleTask flips the done flag server-side.
func (c *Client) ToggleTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodPatch, "/tasks/"+strconv.Itoa(taskID), nil, nil)
}

func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.Itoa(taskID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path).String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorf("%s %s: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Infof("%s %s -> %d", method, path, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		return &Error{Status: status, Message: eb.Error}
	}
	return &Error{Status: status, Message: http.StatusText(status)}
}
