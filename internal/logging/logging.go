// Package logging builds the process logger and adapts it to the loggers
// expected by the ORM and the GraphQL engine.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hmans/todoql/internal/config"
)

// New returns a logger configured by cfg, writing to w.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log.level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimestampFieldName = "timestamp"

	if cfg.Format != config.FormatJSON {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = w
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// Default returns the logger used before configuration has been read.
func Default() zerolog.Logger {
	l, _ := New(config.Default().Log, os.Stderr)
	return l
}

// GormLogger routes GORM's log output into zerolog. Statements are logged at
// debug, statements slower than SlowThreshold at warn and failed statements
// at error. Missing records are not errors.
type GormLogger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
}

var _ gormlogger.Interface = GormLogger{}

// LogMode only honours Silent; verbosity otherwise follows the zerolog level.
func (l GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	if level == gormlogger.Silent {
		l.Logger = zerolog.Nop()
	}
	return l
}

func (l GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.Logger.Info().Msgf(msg, args...)
}

func (l GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.Logger.Warn().Msgf(msg, args...)
}

func (l GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.Logger.Error().Msgf(msg, args...)
}

func (l GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	var event *zerolog.Event
	msg := "sql"
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.Logger.Error().Err(err)
		msg = "sql failed"
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		event = l.Logger.Warn().Dur("threshold", l.SlowThreshold)
		msg = "slow sql"
	default:
		event = l.Logger.Debug()
	}
	if !event.Enabled() {
		return
	}

	sql, rows := fc()
	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg(msg)
}

// PanicLogger records panics recovered by the GraphQL engine.
type PanicLogger struct {
	Logger zerolog.Logger
}

func (l PanicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.Logger.Error().
		Str("panic", fmt.Sprint(value)).
		Bytes("stack", debug.Stack()).
		Msg("graphql: resolver panic")
}
