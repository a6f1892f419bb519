package todo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an update or delete targets a missing record.
var ErrNotFound = errors.New("record not found")

// Store is the data access surface used by the resolvers.
// Every call goes to the database; nothing is cached.
type Store interface {
	// List returns all todos, newest first.
	List(ctx context.Context) ([]*Todo, error)
	// Get returns the todo with the given id, or nil if there is none.
	Get(ctx context.Context, id int) (*Todo, error)
	Create(ctx context.Context, title string) (*Todo, error)
	Update(ctx context.Context, id int, u Update) (*Todo, error)
	// Delete removes the todo and returns it as it was before deletion.
	Delete(ctx context.Context, id int) (*Todo, error)
}

// GormStore implements Store on top of a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewStore returns a GormStore using db.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context) ([]*Todo, error) {
	todos := []*Todo{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *GormStore) Get(ctx context.Context, id int) (*Todo, error) {
	var t Todo
	err := s.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	return &t, nil
}

func (s *GormStore) Create(ctx context.Context, title string) (*Todo, error) {
	t := &Todo{Title: title}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

func (s *GormStore) Update(ctx context.Context, id int, u Update) (*Todo, error) {
	var t Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		// An update with no fields still counts as a mutation.
		cols := u.Columns()
		if u.IsEmpty() {
			cols = map[string]any{"updated_at": tx.NowFunc()}
		}
		if err := tx.Model(&t).Updates(cols).Error; err != nil {
			return err
		}
		// Re-read so the returned row carries the stored updated_at.
		return tx.First(&t, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("update todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}
	return &t, nil
}

func (s *GormStore) Delete(ctx context.Context, id int) (*Todo, error) {
	var t Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Todo{}, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("delete todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete todo %d: %w", id, err)
	}
	return &t, nil
}
