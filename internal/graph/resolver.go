package graph

import (
	"context"

	"github.com/hmans/todoql/internal/todo"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds the store every query and mutation reads from or writes to.
type Resolver struct {
	Store todo.Store
}

// NewResolver returns a root resolver backed by store.
func NewResolver(store todo.Store) *Resolver {
	return &Resolver{Store: store}
}

// Todos is the resolver for the todos field.
func (r *Resolver) Todos(ctx context.Context) ([]*todoResolver, error) {
	todos, err := r.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*todoResolver, len(todos))
	for i, t := range todos {
		result[i] = &todoResolver{t}
	}
	return result, nil
}

// Todo is the resolver for the todo field.
func (r *Resolver) Todo(ctx context.Context, args struct{ ID int32 }) (*todoResolver, error) {
	t, err := r.Store.Get(ctx, int(args.ID))
	return wrap(t, err)
}

// CreateTodo is the resolver for the createTodo field.
func (r *Resolver) CreateTodo(ctx context.Context, args struct{ Title string }) (*todoResolver, error) {
	t, err := r.Store.Create(ctx, args.Title)
	return wrap(t, err)
}

// UpdateTodoArgs holds the arguments of updateTodo. Omitted (or null)
// optional arguments arrive as nil and leave the stored value alone.
type UpdateTodoArgs struct {
	ID        int32
	Title     *string
	Completed *bool
}

// UpdateTodo is the resolver for the updateTodo field.
func (r *Resolver) UpdateTodo(ctx context.Context, args UpdateTodoArgs) (*todoResolver, error) {
	t, err := r.Store.Update(ctx, int(args.ID), todo.Update{
		Title:     args.Title,
		Completed: args.Completed,
	})
	return wrap(t, err)
}

// DeleteTodo is the resolver for the deleteTodo field.
func (r *Resolver) DeleteTodo(ctx context.Context, args struct{ ID int32 }) (*todoResolver, error) {
	t, err := r.Store.Delete(ctx, int(args.ID))
	return wrap(t, err)
}

func wrap(t *todo.Todo, err error) (*todoResolver, error) {
	if err != nil || t == nil {
		return nil, err
	}
	return &todoResolver{t}, nil
}
