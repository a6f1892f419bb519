package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hmans/todoql/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: config.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug().Msg("hidden")
	log.Info().Str("k", "v").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["k"] != "v" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("entry has no timestamp field")
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Format: config.FormatConsole}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q, want message", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("output = %q, want console format", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("New() error = nil, want level error")
	}
}

func TestAdapters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Format: config.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	PanicLogger{Logger: log}.LogPanic(context.Background(), "kaboom")
	out := buf.String()
	if !strings.Contains(out, `"panic":"kaboom"`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("panic output = %q", out)
	}
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM todos", 3 }

	tests := []struct {
		name      string
		level     string
		elapsed   time.Duration
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"statement at debug", "debug", 0, nil, "debug", "sql"},
		{"statement hidden at info", "info", 0, nil, "", ""},
		{"slow statement at info", "info", time.Second, nil, "warn", "slow sql"},
		{"failed statement at info", "info", 0, errors.New("no such table"), "error", "sql failed"},
		{"failed statement at warn", "warn", 0, errors.New("no such table"), "error", "sql failed"},
		{"record not found is not an error", "info", 0, gorm.ErrRecordNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(config.LogConfig{Level: tt.level, Format: config.FormatJSON}, &buf)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			l := GormLogger{Logger: log, SlowThreshold: 200 * time.Millisecond}
			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), query, tt.err)

			if tt.wantLevel == "" {
				if buf.Len() != 0 {
					t.Errorf("output = %q, want nothing", buf.String())
				}
				return
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry["level"] != tt.wantLevel || entry["message"] != tt.wantMsg {
				t.Errorf("entry = %v, want level %q message %q", entry, tt.wantLevel, tt.wantMsg)
			}
			if entry["sql"] != "SELECT * FROM todos" {
				t.Errorf("sql = %v", entry["sql"])
			}
		})
	}
}

func TestGormLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Format: config.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l := GormLogger{Logger: log}.LogMode(gormlogger.Silent)
	l.Error(context.Background(), "boom %d", 1)
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("x"))

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}

	GormLogger{Logger: log}.Warn(context.Background(), "careful %s", "now")
	if !strings.Contains(buf.String(), "careful now") {
		t.Errorf("output = %q, want warning", buf.String())
	}
}
