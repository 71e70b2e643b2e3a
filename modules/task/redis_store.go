package task

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/redis/go-redis/v9"
)

// insertTaskScript writes the task value and its index entry in one step.
// It returns 0 without writing when the task key already exists.
var insertTaskScript = redis.NewScript(`
	if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
		return 0
	end
	redis.call('ZADD', KEYS[2], ARGV[2], ARGV[3])
	return 1
`)

// RedisStore keeps each task as a JSON string under prefix+"task:"+id and
// indexes IDs in a sorted set scored by creation time.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on top of client. prefix namespaces all keys.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) taskKey(taskID string) string {
	return s.prefix + "task:" + taskID
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "tasks"
}

// Insert stores a new task.
func (s *RedisStore) Insert(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	inserted, err := insertTaskScript.Run(ctx, s.client,
		[]string{s.taskKey(task.ID), s.indexKey()},
		string(data), task.CreatedAt.UnixMilli(), task.ID,
	).Int()
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	if inserted == 0 {
		return fmt.Errorf("task already exists: %s", task.ID)
	}
	return nil
}

// Update overwrites an existing task.
func (s *RedisStore) Update(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	ok, err := s.client.SetXX(ctx, s.taskKey(task.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	return nil
}

// Delete removes a task and its index entry.
func (s *RedisStore) Delete(ctx context.Context, taskID string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.taskKey(taskID))
		pipe.ZRem(ctx, s.indexKey(), taskID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return nil
}

// FindByID finds a task by ID.
func (s *RedisStore) FindByID(ctx context.Context, taskID string) (*domain.Task, error) {
	data, err := s.client.Get(ctx, s.taskKey(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return decodeTask(data)
}

// QueryAll returns all tasks ordered by creation time, newest first.
func (s *RedisStore) QueryAll(ctx context.Context) ([]*domain.Task, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Task{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.taskKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a record, skipped.
			continue
		}
		task, err := decodeTask([]byte(raw))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	// The index only has millisecond scores.
	slices.SortStableFunc(tasks, func(a, b *domain.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeTask(data []byte) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	if task.DueDate != nil {
		due := task.DueDate.In(time.Local)
		task.DueDate = &due
	}
	task.CreatedAt = task.CreatedAt.In(time.Local)
	return &task, nil
}
