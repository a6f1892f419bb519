package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hmans/todoql/internal/config"
	"github.com/hmans/todoql/internal/todo"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ünïcödé title", 8, "ünïcö..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRenderTodoTable(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		renderTodoTable(&buf, nil)
		if !strings.Contains(buf.String(), "No todos found") {
			t.Errorf("output = %q, want empty hint", buf.String())
		}
	})

	t.Run("rows", func(t *testing.T) {
		now := time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)
		todos := []*todo.Todo{
			{ID: 12, Title: "Write docs", CreatedAt: now, UpdatedAt: now},
			{ID: 3, Title: "Ship it", Completed: true, CreatedAt: now, UpdatedAt: now},
		}

		var buf bytes.Buffer
		renderTodoTable(&buf, todos)
		out := buf.String()

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("got %d lines, want 4 (header, rule, 2 rows):\n%s", len(lines), out)
		}
		for _, want := range []string{"ID", "STATE", "TITLE", "12", "Write docs", "pending", "Ship it", "done"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestWriteTodoJSON(t *testing.T) {
	created := time.Date(2024, 6, 10, 6, 13, 20, 123000000, time.UTC)
	todos := []*todo.Todo{
		{ID: 7, Title: "Ship it", Completed: true, CreatedAt: created, UpdatedAt: created.Add(time.Second)},
	}

	var buf bytes.Buffer
	if err := writeTodoJSON(&buf, todos); err != nil {
		t.Fatalf("writeTodoJSON() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0]["createdAt"] != "1718000000123" {
		t.Errorf("createdAt = %v, want \"1718000000123\"", got[0]["createdAt"])
	}
	if got[0]["updatedAt"] != "1718000001123" {
		t.Errorf("updatedAt = %v, want \"1718000001123\"", got[0]["updatedAt"])
	}
	if got[0]["id"] != float64(7) || got[0]["completed"] != true {
		t.Errorf("item = %v", got[0])
	}
}

func TestWriteTodoJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTodoJSON(&buf, nil); err != nil {
		t.Fatalf("writeTodoJSON() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("output = %q, want []", got)
	}
}

func TestInitCommand(t *testing.T) {
	oldPath := configPath
	defer func() { configPath = oldPath }()
	configPath = filepath.Join(t.TempDir(), config.ConfigFile)

	var buf bytes.Buffer
	initCmd.SetOut(&buf)
	defer initCmd.SetOut(nil)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != 4000 {
		t.Errorf("Port = %d, want 4000", loaded.Server.Port)
	}

	// A second run must not clobber the file
	if err := initCmd.RunE(initCmd, nil); err == nil {
		t.Error("second init error = nil, want already exists")
	}
}
