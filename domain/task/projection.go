package task

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "All"

// SortOption selects the ordering applied by Project.
type SortOption string

const (
	SortCreatedAtDesc SortOption = "created_at_desc"
	SortCreatedAtAsc  SortOption = "created_at_asc"
	SortDueDateAsc    SortOption = "due_date_asc"
	SortCompletion    SortOption = "completion"
)

// SortOptions lists every sort option in picker order.
var SortOptions = []SortOption{
	SortCreatedAtDesc,
	SortCreatedAtAsc,
	SortDueDateAsc,
	SortCompletion,
}

// Label returns the human readable name of the option.
func (o SortOption) Label() string {
	switch o {
	case SortCreatedAtDesc:
		return "Newest First"
	case SortCreatedAtAsc:
		return "Oldest First"
	case SortDueDateAsc:
		return "By Due Date (Earliest)"
	case SortCompletion:
		return "By Completion (Incomplete First)"
	}
	return string(o)
}

// ParseSortOption converts s into a SortOption. The empty string yields the
// default, SortCreatedAtDesc.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return SortCreatedAtDesc, nil
	}
	o := SortOption(s)
	if !slices.Contains(SortOptions, o) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOption, s)
	}
	return o, nil
}

// Query holds the list screen selections a projection is computed from.
type Query struct {
	Category string     `json:"category,omitempty"`
	Search   string     `json:"search,omitempty"`
	Sort     SortOption `json:"sort,omitempty"`
}

// Project filters tasks by q.Category, then by q.Search, and returns the
// survivors ordered by q.Sort. The input slice and its tasks are not modified.
// An empty category is treated as AllCategories and an empty sort as the default.
func Project(tasks []*Task, q Query) []*Task {
	result := slices.Clone(tasks)

	if q.Category != "" && q.Category != AllCategories {
		result = lo.Filter(result, func(t *Task, _ int) bool {
			return t.Category == q.Category
		})
	}

	if q.Search != "" {
		folder := cases.Fold()
		needle := folder.String(q.Search)
		result = lo.Filter(result, func(t *Task, _ int) bool {
			return strings.Contains(folder.String(t.Title), needle)
		})
	}

	slices.SortStableFunc(result, comparator(q.Sort))
	return result
}

func comparator(o SortOption) func(a, b *Task) int {
	switch o {
	case SortCreatedAtAsc:
		return func(a, b *Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case SortDueDateAsc:
		return compareDueDate
	case SortCompletion:
		return func(a, b *Task) int {
			if a.IsCompleted != b.IsCompleted {
				if a.IsCompleted {
					return 1
				}
				return -1
			}
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	default:
		return func(a, b *Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// compareDueDate orders dated tasks first, earliest due date first. Two
// undated tasks compare equal so the stable sort keeps their relative order.
func compareDueDate(a, b *Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}

// Categories returns the distinct categories present in tasks, sorted, with
// AllCategories prepended.
func Categories(tasks []*Task) []string {
	distinct := lo.Uniq(lo.Map(tasks, func(t *Task, _ int) string {
		return t.Category
	}))
	slices.Sort(distinct)
	return append([]string{AllCategories}, distinct...)
}
