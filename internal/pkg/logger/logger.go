// Package logger configures the process-wide zerolog logger. Output goes to
// stderr so stdout stays free for tables and exported files.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is the logging.level config value
type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

var zerologLevels = map[LogLevel]zerolog.Level{
	DebugLevel:    zerolog.DebugLevel,
	InfoLevel:     zerolog.InfoLevel,
	WarnLevel:     zerolog.WarnLevel,
	ErrorLevel:    zerolog.ErrorLevel,
	DisabledLevel: zerolog.Disabled,
}

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty selects the human-readable console writer over JSON lines.
	Pretty bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var base zerolog.Logger

// ParseLevel turns a config string into a LogLevel, defaulting to warn.
func ParseLevel(s string) LogLevel {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := zerologLevels[level]; ok {
		return level
	}
	return WarnLevel
}

// Configure replaces the global logger and level.
func Configure(config Config) {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	level, ok := zerologLevels[config.Level]
	if !ok {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	base = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = base
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event { return base.Debug() }

func Info() *zerolog.Event { return base.Info() }

func Warn() *zerolog.Event { return base.Warn() }

func Error() *zerolog.Event { return base.Error() }

func init() {
	Configure(Config{Level: WarnLevel, Pretty: true})
}
