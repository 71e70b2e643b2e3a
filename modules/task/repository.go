package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-app/domain/task"
	"gorm.io/gorm"
)

// taskRecord is the GORM model for a stored task.
type taskRecord struct {
	ID          string     `gorm:"primarykey;size:36"`
	Title       string     `gorm:"size:500;not null"`
	IsCompleted bool       `gorm:"not null;default:false"`
	DueDate     *time.Time
	Category    string     `gorm:"size:100;not null;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *taskRecord) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		IsCompleted: r.IsCompleted,
		DueDate:     r.DueDate,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

// GormStore provides task storage backed by GORM.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the tasks table.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&taskRecord{}); err != nil {
		return fmt.Errorf("failed to migrate tasks table: %w", err)
	}
	return nil
}

// Insert saves a new task to the database.
func (s *GormStore) Insert(ctx context.Context, task *domain.Task) error {
	if err := s.db.WithContext(ctx).Create(toRecord(task)).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update writes every mutable field of task, including zero values.
func (s *GormStore) Update(ctx context.Context, task *domain.Task) error {
	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":        task.Title,
			"is_completed": task.IsCompleted,
			"due_date":     task.DueDate,
			"category":     task.Category,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	return nil
}

// Delete permanently removes a task by ID.
func (s *GormStore) Delete(ctx context.Context, taskID string) error {
	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", taskID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (s *GormStore) FindByID(ctx context.Context, taskID string) (*domain.Task, error) {
	var record taskRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return record.toDomain(), nil
}

// QueryAll retrieves all tasks, newest first.
func (s *GormStore) QueryAll(ctx context.Context) ([]*domain.Task, error) {
	var records []taskRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, records[i].toDomain())
	}
	return tasks, nil
}

// Ping checks the database connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
