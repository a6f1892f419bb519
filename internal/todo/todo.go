// Package todo defines the Todo record and the store that persists it.
package todo

import (
	"time"
)

// Todo is the single record type served by the API.
type Todo struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Completed bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update lists the fields to change on an existing Todo.
// A nil field is left untouched; a non-nil field is written even when it
// points at a zero value, so Completed=&false clears the flag.
type Update struct {
	Title     *string
	Completed *bool
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil
}

// Columns returns the column assignments for the set fields.
func (u Update) Columns() map[string]any {
	cols := make(map[string]any, 2)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Completed != nil {
		cols["completed"] = *u.Completed
	}
	return cols
}
