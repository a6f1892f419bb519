package graph

import (
	"strconv"
	"time"

	"github.com/hmans/todoql/internal/todo"
)

// todoResolver resolves the fields of the Todo type.
type todoResolver struct {
	t *todo.Todo
}

func (r *todoResolver) ID() int32 {
	return int32(r.t.ID)
}

func (r *todoResolver) Title() string {
	return r.t.Title
}

func (r *todoResolver) Completed() bool {
	return r.t.Completed
}

func (r *todoResolver) CreatedAt() string {
	return FormatTime(r.t.CreatedAt)
}

func (r *todoResolver) UpdatedAt() string {
	return FormatTime(r.t.UpdatedAt)
}

// FormatTime renders a timestamp the way clients of this API expect it:
// Unix epoch milliseconds as a decimal string.
func FormatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
