package task

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		title        string
		category     string
		wantOK       bool
		wantTitle    string
		wantCategory string
	}{
		{
			name:         "trims title and category",
			title:        "  Buy milk \n",
			category:     "\tHome ",
			wantOK:       true,
			wantTitle:    "Buy milk",
			wantCategory: "Home",
		},
		{
			name:         "empty category defaults to General",
			title:        "Buy milk",
			category:     "",
			wantOK:       true,
			wantTitle:    "Buy milk",
			wantCategory: DefaultCategory,
		},
		{
			name:         "whitespace category defaults to General",
			title:        "Buy milk",
			category:     "   ",
			wantOK:       true,
			wantTitle:    "Buy milk",
			wantCategory: DefaultCategory,
		},
		{
			name:     "whitespace title is declined",
			title:    "  ",
			category: "Work",
			wantOK:   false,
		},
		{
			name:     "empty title is declined",
			title:    "",
			category: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := NewTask("id-1", tt.title, tt.category, now)
			if ok != tt.wantOK {
				t.Fatalf("NewTask() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if task != nil {
					t.Errorf("expected nil task when declined, got %+v", task)
				}
				return
			}
			if task.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", task.Title, tt.wantTitle)
			}
			if task.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", task.Category, tt.wantCategory)
			}
			if task.IsCompleted {
				t.Error("expected new task to be incomplete")
			}
			if task.DueDate != nil {
				t.Error("expected new task to have no due date")
			}
			if !task.CreatedAt.Equal(now) {
				t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, now)
			}
			if task.ID != "id-1" {
				t.Errorf("ID = %q, want %q", task.ID, "id-1")
			}
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 3, 15, 30, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		dueDate   *time.Time
		completed bool
		want      bool
	}{
		{name: "due yesterday, incomplete", dueDate: &yesterday, want: true},
		{name: "due yesterday, completed", dueDate: &yesterday, completed: true, want: false},
		{name: "due at start of today", dueDate: &earlierToday, want: false},
		{name: "due tomorrow", dueDate: &tomorrow, want: false},
		{name: "no due date, incomplete", dueDate: nil, want: false},
		{name: "no due date, completed", dueDate: nil, completed: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Title: "x", Category: "Test", DueDate: tt.dueDate, IsCompleted: tt.completed}
			if got := task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	original := &Task{ID: "a", Title: "A", Category: "Work", DueDate: &due}

	c := original.Clone()
	c.Title = "changed"
	*c.DueDate = due.AddDate(0, 0, 1)

	if original.Title != "A" {
		t.Errorf("original title mutated: %q", original.Title)
	}
	if !original.DueDate.Equal(due) {
		t.Errorf("original due date mutated: %v", original.DueDate)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2025, 6, 3, 23, 59, 59, 999, loc)

	got := StartOfDay(ts)
	want := time.Date(2025, 6, 3, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("StartOfDay() location = %v, want %v", got.Location(), loc)
	}
}
