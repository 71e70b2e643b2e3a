package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Change kinds carried by ChangeNotice.Type.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ChangeNotice tells subscribers that the task collection changed and any
// displayed list should be fetched again.
type ChangeNotice struct {
	Type   string    `json:"type"`
	TaskID string    `json:"task_id"`
	Fields []string  `json:"fields,omitempty"`
	At     time.Time `json:"at"`
}

type subscriber interface {
	WriteJSON(v any) error
	Close() error
}

// changeFeed fans change notices out to websocket subscribers.
type changeFeed struct {
	mu     sync.Mutex
	subs   map[string]subscriber
	logger types.Logger
}

func newChangeFeed(logger types.Logger) *changeFeed {
	return &changeFeed{
		subs:   make(map[string]subscriber),
		logger: logger,
	}
}

func (f *changeFeed) add(id string, s subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[id] = s
}

func (f *changeFeed) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, id)
}

func (f *changeFeed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// publish writes n to every subscriber. Subscribers that fail are dropped.
// Writes hold the lock since a websocket connection allows one writer at a time.
func (f *changeFeed) publish(n ChangeNotice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, s := range f.subs {
		if err := s.WriteJSON(n); err != nil {
			f.logger.Warn("Dropping change subscriber", "subscriber", id, "error", err)
			_ = s.Close()
			delete(f.subs, id)
		}
	}
}

func (f *changeFeed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, s := range f.subs {
		_ = s.Close()
		delete(f.subs, id)
	}
}

// streamChanges handles GET /ws/changes. The connection only receives; any
// read error ends the subscription.
func (m *APIModule) streamChanges(c *websocket.Conn) {
	id := uuid.New().String()
	m.feed.add(id, c)
	m.logger.Info("Change subscriber connected", "subscriber", id)

	defer func() {
		m.feed.remove(id)
		_ = c.Close()
		m.logger.Info("Change subscriber disconnected", "subscriber", id)
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Warn("Change subscriber error", "subscriber", id, "error", err)
			}
			return
		}
	}
}

// RegisterEventConsumers subscribes to task change events and forwards them
// to websocket subscribers.
func (m *APIModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	return nil
}

func (m *APIModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.feed.publish(ChangeNotice{Type: ChangeCreated, TaskID: event.TaskID, At: event.CreatedAt})
	return nil
}

func (m *APIModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.feed.publish(ChangeNotice{Type: ChangeUpdated, TaskID: event.TaskID, Fields: event.Fields, At: event.UpdatedAt})
	return nil
}

func (m *APIModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.feed.publish(ChangeNotice{Type: ChangeDeleted, TaskID: event.TaskID, At: event.DeletedAt})
	return nil
}
