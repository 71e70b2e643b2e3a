package task

import "errors"

// Sentinel errors for task operations.
var (
	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidSortOption is returned for a sort option outside the known set.
	ErrInvalidSortOption = errors.New("invalid sort option")
)
