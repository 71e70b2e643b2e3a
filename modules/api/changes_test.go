package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/example/todo-app/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber records the notices written to it.
type fakeSubscriber struct {
	mu       sync.Mutex
	notices  []ChangeNotice
	writeErr error
	closed   bool
}

func (s *fakeSubscriber) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.notices = append(s.notices, v.(ChangeNotice))
	return nil
}

func (s *fakeSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestChangeFeed_Publish(t *testing.T) {
	feed := newChangeFeed(&mockLogger{})
	first, second := &fakeSubscriber{}, &fakeSubscriber{}
	feed.add("1", first)
	feed.add("2", second)

	feed.publish(ChangeNotice{Type: ChangeCreated, TaskID: "t1"})

	for _, s := range []*fakeSubscriber{first, second} {
		require.Len(t, s.notices, 1)
		assert.Equal(t, "t1", s.notices[0].TaskID)
	}

	feed.remove("2")
	feed.publish(ChangeNotice{Type: ChangeDeleted, TaskID: "t1"})
	assert.Len(t, first.notices, 2)
	assert.Len(t, second.notices, 1)
}

func TestChangeFeed_DropsFailingSubscriber(t *testing.T) {
	feed := newChangeFeed(&mockLogger{})
	healthy := &fakeSubscriber{}
	broken := &fakeSubscriber{writeErr: errors.New("broken pipe")}
	feed.add("healthy", healthy)
	feed.add("broken", broken)

	feed.publish(ChangeNotice{Type: ChangeUpdated, TaskID: "t1"})

	assert.Equal(t, 1, feed.count())
	assert.True(t, broken.closed)
	assert.Len(t, healthy.notices, 1)
}

func TestChangeFeed_CloseAll(t *testing.T) {
	feed := newChangeFeed(&mockLogger{})
	subs := []*fakeSubscriber{{}, {}}
	feed.add("a", subs[0])
	feed.add("b", subs[1])

	feed.closeAll()

	assert.Equal(t, 0, feed.count())
	for _, s := range subs {
		assert.True(t, s.closed)
	}
}

func TestEventHandlersPublishChanges(t *testing.T) {
	m := NewModule(Config{}, &mockLogger{})
	sub := &fakeSubscriber{}
	m.feed.add("sub", sub)
	ctx := context.Background()

	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: "t1", CreatedAt: testNow}, nil))
	require.NoError(t, m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: "t1", Fields: []string{"is_completed"}, UpdatedAt: testNow}, nil))
	require.NoError(t, m.handleTaskDeleted(ctx, events.TaskDeletedEvent{TaskID: "t1", DeletedAt: testNow}, nil))

	require.Len(t, sub.notices, 3)
	assert.Equal(t, ChangeCreated, sub.notices[0].Type)
	assert.Equal(t, ChangeUpdated, sub.notices[1].Type)
	assert.Equal(t, []string{"is_completed"}, sub.notices[1].Fields)
	assert.Equal(t, ChangeDeleted, sub.notices[2].Type)
	assert.True(t, sub.notices[2].At.Equal(testNow))
}

func TestChangesRequiresUpgrade(t *testing.T) {
	s := newTestServer(t, false)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/ws/changes", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
