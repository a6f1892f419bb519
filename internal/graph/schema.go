package graph

import (
	"bytes"
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/hmans/todoql/internal/logging"
	"github.com/hmans/todoql/internal/todo"
)

//go:embed schema.graphqls
var sdl string

// SDL returns the schema source.
func SDL() string {
	return sdl
}

// NewSchema parses the schema and binds it to a resolver backed by store.
// Binding fails if any schema field lacks a matching resolver method.
func NewSchema(store todo.Store, log zerolog.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(sdl, NewResolver(store),
		graphql.Logger(logging.PanicLogger{Logger: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return schema, nil
}

// FormatSchema returns the schema pretty-printed by gqlparser.
func FormatSchema() (string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphqls", Input: sdl})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(schema)

	return buf.String(), nil
}
