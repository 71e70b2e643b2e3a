package listview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/todo-app/events"
	"github.com/example/todo-app/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module serves the task list screen: it follows task change events and
// answers projection queries from a fresh view of the collection.
type Module struct {
	source Source
	view   *View
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
)

// NewModule creates a new listview module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "listview"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.source = task.NewTaskAdapter(container)
	}
}

// RegisterEventConsumers subscribes to every task change event.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskCreated.v1", "TaskUpdated.v1", "TaskDeleted.v1"})
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceProject, json.Unmarshal, json.Marshal, m.project,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceProject, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCategories, json.Unmarshal, json.Marshal, m.categories,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCategories, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeletePositions, json.Unmarshal, json.Marshal, m.deletePositions,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeletePositions, err)
	}

	m.logger.Info("Registered services", "services", []string{ServiceProject, ServiceCategories, ServiceDeletePositions})
	return nil
}

func (m *Module) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.invalidate("TaskCreated", event.TaskID)
	return nil
}

func (m *Module) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.invalidate("TaskUpdated", event.TaskID)
	return nil
}

func (m *Module) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.invalidate("TaskDeleted", event.TaskID)
	return nil
}

func (m *Module) invalidate(event, taskID string) {
	if m.view == nil {
		return
	}
	m.view.Invalidate()
	m.logger.Debug("Task collection changed", "event", event, "taskID", taskID)
}

// Start creates the view. The snapshot is loaded on first use.
func (m *Module) Start(_ context.Context) error {
	if m.source == nil {
		return fmt.Errorf("task dependency not set")
	}
	m.view = NewView(m.source)
	m.logger.Info("List view module started (depends on: task)")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("List view module stopped")
	return nil
}
