package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/hmans/todoql/internal/graph"
	"github.com/hmans/todoql/internal/todo"
	"github.com/hmans/todoql/internal/ui"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all todos",
	Long:    `Lists all todos, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		todos, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			return writeTodoJSON(out, todos)
		}

		renderTodoTable(out, todos)
		return nil
	},
}

// todoJSON is a todo as the GraphQL API returns it.
type todoJSON struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// writeTodoJSON prints todos with the field names and timestamp format of
// the todos query.
func writeTodoJSON(w io.Writer, todos []*todo.Todo) error {
	items := make([]todoJSON, len(todos))
	for i, t := range todos {
		items[i] = todoJSON{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: graph.FormatTime(t.CreatedAt),
			UpdatedAt: graph.FormatTime(t.UpdatedAt),
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(pretty.Pretty(data)))
	return nil
}

// renderTodoTable prints todos as aligned columns.
func renderTodoTable(w io.Writer, todos []*todo.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No todos found. Create one with: todoql graphql 'mutation { createTodo(title: \"...\") { id } }'"))
		return
	}

	// Calculate max ID width
	maxIDWidth := 2 // minimum for "ID" header
	for _, t := range todos {
		if n := len(strconv.Itoa(t.ID)); n > maxIDWidth {
			maxIDWidth = n
		}
	}
	maxIDWidth += 2 // padding

	idStyle := lipgloss.NewStyle().Width(maxIDWidth)
	stateStyle := lipgloss.NewStyle().Width(10)
	createdStyle := lipgloss.NewStyle().Width(18)
	titleStyle := lipgloss.NewStyle()

	headerCol := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(headerCol.Render("ID")),
		stateStyle.Render(headerCol.Render("STATE")),
		createdStyle.Render(headerCol.Render("CREATED")),
		titleStyle.Render(headerCol.Render("TITLE")),
	)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, ui.Muted.Render(strings.Repeat("─", maxIDWidth+10+18+30)))

	for _, t := range todos {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(ui.ID.Render(strconv.Itoa(t.ID))),
			stateStyle.Render(ui.RenderCompleted(t.Completed)),
			createdStyle.Render(ui.Muted.Render(t.CreatedAt.Local().Format("2006-01-02 15:04"))),
			titleStyle.Render(ui.RenderTitle(truncate(t.Title, 50), t.Completed)),
		)
		fmt.Fprintln(w, row)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
