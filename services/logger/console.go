package logsvc

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/clubboard/core"
)

type ConsoleLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger writes human readable lines to w; debug lowers the level to Debug and colors the output.
func NewConsoleLogger(w io.Writer, appName string, debug bool) *ConsoleLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !debug}).
		Level(level).
		With().Timestamp().Str("app", appName).
		Logger()
	return &ConsoleLogger{zl: zl}
}

// NewNopLogger discards everything.
func NewNopLogger() *ConsoleLogger {
	return &ConsoleLogger{zl: zerolog.Nop()}
}

// event attaches args to e: errors as the error field, maps as fields, anything else as a detail.
func event(e *zerolog.Event, args []interface{}) *zerolog.Event {
	details := make([]interface{}, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			e = e.Err(a)
		case map[string]interface{}:
			e = e.Fields(a)
		default:
			details = append(details, a)
		}
	}
	if len(details) > 0 {
		e = e.Interface("details", details)
	}
	return e
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) {
	event(l.zl.Debug(), args).Msg(msg)
}

func (l ConsoleLogger) Info(msg string, args ...interface{}) {
	event(l.zl.Info(), args).Msg(msg)
}

func (l ConsoleLogger) Warn(msg string, args ...interface{}) {
	event(l.zl.Warn(), args).Msg(msg)
}

func (l ConsoleLogger) Error(msg string, args ...interface{}) {
	event(l.zl.Error(), args).Msg(msg)
}

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	event(l.zl.Fatal(), args).Msg(msg)
}
