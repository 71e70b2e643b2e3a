package task

import (
	"strings"
	"time"
)

// DefaultCategory is stored when a task is created without a category.
const DefaultCategory = "General"

// Task is the core domain entity representing a to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask builds a task from raw user input. Title and category are trimmed;
// an empty category falls back to DefaultCategory. It reports false when the
// trimmed title is empty, in which case no task is built.
func NewTask(id, title, category string, now time.Time) (*Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	return &Task{
		ID:        id,
		Title:     title,
		Category:  category,
		CreatedAt: now,
	}, true
}

// Clone returns a copy of t that shares no memory with it.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// IsOverdue reports whether t is incomplete and due before the start of the
// local calendar day containing now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsCompleted {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// StartOfDay returns midnight of the calendar day containing ts, in ts's location.
func StartOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
