package task

import (
	"context"
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// eventBusNotifier publishes task changes on the mono EventBus.
// Publishing is best-effort: failures are logged and never fail the mutation.
type eventBusNotifier struct {
	bus    mono.EventBus
	logger types.Logger
}

var _ Notifier = (*eventBusNotifier)(nil)

func newEventBusNotifier(bus mono.EventBus, logger types.Logger) *eventBusNotifier {
	return &eventBusNotifier{bus: bus, logger: logger}
}

func (n *eventBusNotifier) TaskCreated(_ context.Context, task *domain.Task) {
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		Category:  task.Category,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(n.bus, event, nil); err != nil {
		n.logger.Warn("Failed to publish TaskCreated event", "taskID", task.ID, "error", err)
	}
}

func (n *eventBusNotifier) TaskUpdated(_ context.Context, taskID string, fields []string) {
	event := events.TaskUpdatedEvent{
		TaskID:    taskID,
		Fields:    fields,
		UpdatedAt: time.Now(),
	}
	if err := events.TaskUpdatedV1.Publish(n.bus, event, nil); err != nil {
		n.logger.Warn("Failed to publish TaskUpdated event", "taskID", taskID, "error", err)
	}
}

func (n *eventBusNotifier) TaskDeleted(_ context.Context, taskID string) {
	event := events.TaskDeletedEvent{
		TaskID:    taskID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(n.bus, event, nil); err != nil {
		n.logger.Warn("Failed to publish TaskDeleted event", "taskID", taskID, "error", err)
	}
}
