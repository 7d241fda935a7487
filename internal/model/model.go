package model

import "time"

// User is the identity the server reports for the current session.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsEnabled bool   `json:"isEnabled"`
}

// List is a named container of tasks. URL is the slug used to address it.
type List struct {
	ID       int    `json:"id"`
	ImageURL string `json:"imageURL,omitempty"`
	Name     string `json:"name"`
	OwnerID  int    `json:"ownerId"`
	URL      string `json:"url"`
}

// Task belongs to exactly one list.
type Task struct {
	ID          int       `json:"id"`
	CreatedByID int       `json:"createdById"`
	ListID      int       `json:"listId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	IsDone      bool      `json:"isDone"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Status is the human label for the task's done flag.
func (t Task) Status() string {
	if t.IsDone {
		return "done"
	}
	return "in progress"
}

// NewTask is the body of a task creation request.
type NewTask struct {
	ListID      int    `json:"listId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Stats counts done and pending tasks.
func Stats(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.IsDone {
			done++
		} else {
			pending++
		}
	}
	return
}
