package task

import (
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/google/uuid"
)

// SampleTasks returns the demo data set, with times relative to now.
func SampleTasks(now time.Time) []*domain.Task {
	inDays := func(days int) *time.Time {
		d := domain.StartOfDay(now).AddDate(0, 0, days)
		return &d
	}
	ago := func(seconds int) time.Time {
		return now.Add(-time.Duration(seconds) * time.Second)
	}

	samples := []*domain.Task{
		{Title: "Task A (Due +5d, Created -10000s)", Category: "Work", DueDate: inDays(5), CreatedAt: ago(10000)},
		{Title: "Task B (Due +1d, Created -20000s)", Category: "Work", DueDate: inDays(1), CreatedAt: ago(20000)},
		{Title: "Task C (No Due Date, Completed, Created -5000s)", Category: "Personal", IsCompleted: true, CreatedAt: ago(5000)},
		{Title: "Task D (Due -1d, Completed, Created -30000s)", Category: "Personal", IsCompleted: true, DueDate: inDays(-1), CreatedAt: ago(30000)},
		{Title: "Task E (Recent, Incomplete, No Due Date, Created -100s)", Category: "Study", CreatedAt: ago(100)},
		{Title: "Task F (Oldest, Due +2d, Incomplete)", Category: "Project", DueDate: inDays(2), CreatedAt: ago(50000)},
		{Title: "Task G (Recent, Completed, Due +3d)", Category: "Work", IsCompleted: true, DueDate: inDays(3), CreatedAt: ago(50)},
	}
	for _, t := range samples {
		t.ID = uuid.New().String()
	}
	return samples
}
