package listview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// ErrPositionOutOfRange is returned when a position does not address a row of the projection.
var ErrPositionOutOfRange = errors.New("position out of range")

// Source provides the full task collection and permanent deletion.
type Source interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// View keeps a snapshot of the task collection and derives projections from it.
// The snapshot is reloaded in full after Invalidate; projections are always
// recomputed from the current snapshot.
type View struct {
	source Source
	now    func() time.Time

	mu       sync.RWMutex
	snapshot []*domain.Task
	version  uint64 // bumped by Invalidate
	loaded   uint64 // version the snapshot was loaded at
	ready    bool

	group singleflight.Group
}

// NewView creates a view over source. The first read loads the snapshot.
func NewView(source Source) *View {
	return &View{
		source: source,
		now:    time.Now,
	}
}

// Invalidate marks the snapshot stale. It is called on every collection change.
func (v *View) Invalidate() {
	v.mu.Lock()
	v.version++
	v.mu.Unlock()
}

// Tasks returns the current task collection, reloading it if stale. A caller
// never joins a reload that started before its last Invalidate. The returned
// slice is shared and must not be modified.
func (v *View) Tasks(ctx context.Context) ([]*domain.Task, error) {
	v.mu.RLock()
	version := v.version
	if v.ready && v.loaded == version {
		tasks := v.snapshot
		v.mu.RUnlock()
		return tasks, nil
	}
	v.mu.RUnlock()

	res, err, _ := v.group.Do(strconv.FormatUint(version, 10), func() (any, error) {
		return v.reload(ctx, version)
	})
	if err != nil {
		return nil, err
	}
	return res.([]*domain.Task), nil
}

// reload loads the collection on behalf of callers that observed version.
func (v *View) reload(ctx context.Context, version uint64) ([]*domain.Task, error) {
	tasks, err := v.source.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	v.mu.Lock()
	// A newer load may already have landed; never go backwards.
	if !v.ready || version >= v.loaded {
		v.snapshot = tasks
		v.loaded = version
		v.ready = true
	}
	v.mu.Unlock()
	return tasks, nil
}

// Project returns the rows to display for q, each flagged with its overdue state.
func (v *View) Project(ctx context.Context, q domain.Query) (*Projection, error) {
	sort, err := domain.ParseSortOption(string(q.Sort))
	if err != nil {
		return nil, err
	}
	q.Sort = sort
	if q.Category == "" {
		q.Category = domain.AllCategories
	}

	tasks, err := v.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	now := v.now()
	rows := domain.Project(tasks, q)
	items := make([]Item, 0, len(rows))
	for _, t := range rows {
		items = append(items, Item{Task: *t.Clone(), Overdue: t.IsOverdue(now)})
	}

	return &Projection{
		Query:      q,
		Items:      items,
		Total:      len(items),
		Categories: domain.Categories(tasks),
	}, nil
}

// Categories returns the category picker options for the current collection.
func (v *View) Categories(ctx context.Context) ([]string, error) {
	tasks, err := v.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(tasks), nil
}

// DeletePositions deletes the tasks displayed at positions of the projection
// for q. Every position is resolved to a task ID before anything is deleted;
// if any position is out of range nothing is deleted. It returns the deleted IDs.
func (v *View) DeletePositions(ctx context.Context, q domain.Query, positions []int) ([]string, error) {
	projection, err := v.Project(ctx, q)
	if err != nil {
		return nil, err
	}

	positions = lo.Uniq(positions)
	for _, p := range positions {
		if p < 0 || p >= len(projection.Items) {
			return nil, fmt.Errorf("%w: %d (rows: %d)", ErrPositionOutOfRange, p, len(projection.Items))
		}
	}

	ids := lo.Map(positions, func(p int, _ int) string {
		return projection.Items[p].ID
	})

	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err = v.source.DeleteTask(ctx, id); err != nil {
			err = fmt.Errorf("failed to delete task %s: %w", id, err)
			break
		}
		deleted = append(deleted, id)
	}
	if len(deleted) > 0 {
		v.Invalidate()
	}
	return deleted, err
}
