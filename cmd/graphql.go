package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/hmans/todoql/internal/graph"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	querySchemaOnly bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation against the configured database.

The argument should be a valid GraphQL query or mutation string.

Examples:
  # List all todos
  todoql graphql '{ todos { id title completed } }'

  # Get a specific todo
  todoql graphql '{ todo(id: 1) { title completed createdAt } }'

  # Create and complete a todo
  todoql graphql 'mutation { createTodo(title: "Buy milk") { id } }'
  todoql graphql 'mutation { updateTodo(id: 1, completed: true) { completed } }'

  # Use variables
  todoql graphql -v '{"id": 1}' 'query GetTodo($id: Int!) { todo(id: $id) { title } }'

  # Read from stdin (useful for complex queries or escaping issues)
  echo '{ todos { id title } }' | todoql graphql
  cat query.graphql | todoql graphql

  # Print the schema
  todoql graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		// Allow 0 args if stdin has data, or exactly 1 arg
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// Schema-only mode
		if querySchemaOnly {
			return printSchema(out)
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			// Try to read from stdin
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		// Parse variables if provided
		var variables map[string]any
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		schema, err := graph.NewSchema(store, logger)
		if err != nil {
			return err
		}

		result, err := executeQuery(cmd.Context(), schema, query, variables, queryOperation)
		if err != nil {
			return err
		}

		// Output
		if queryJSON {
			fmt.Fprintln(out, string(result))
		} else {
			prettyPrint(out, result, isTerminal(out))
		}

		return nil
	},
}

// readFromStdin reads the query from stdin if data is available.
func readFromStdin() (string, error) {
	// Check if stdin has data (is a pipe or file, not a terminal)
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// If stdin is a terminal (no pipe), return empty
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// executeQuery runs a GraphQL document against schema.
// On success, it returns just the data portion of the response.
// Any GraphQL error is returned as an error so the CLI exits non-zero.
func executeQuery(ctx context.Context, schema *graphql.Schema, query string, variables map[string]any, operationName string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	resp := schema.Exec(ctx, query, operationName, variables)
	if len(resp.Errors) > 0 {
		return nil, formatGraphQLErrors(resp.Errors)
	}

	return resp.Data, nil
}

// formatGraphQLErrors formats GraphQL errors into a single error.
func formatGraphQLErrors(errs []*gqlerrors.QueryError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

// prettyPrint outputs the JSON indented, with colors when color is set.
func prettyPrint(w io.Writer, data []byte, color bool) {
	data = pretty.Pretty(data)
	if color {
		data = pretty.Color(data, nil)
	}
	fmt.Fprint(w, string(data))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printSchema outputs the GraphQL schema.
func printSchema(w io.Writer) error {
	s, err := graph.FormatSchema()
	if err != nil {
		return err
	}
	fmt.Fprint(w, s)
	return nil
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	rootCmd.AddCommand(graphqlCmd)
}
