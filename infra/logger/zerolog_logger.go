package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Every log line carries the service name so dashboard logs can be told
// apart when several services share a collector.
const serviceName = "co2dash"

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a component-tagged logger. APP_ENV=dev switches to
// the console writer and enables debug output (request traces, chart-cache
// hits); anything else logs JSON at info level.
func NewZerologLogger(component string) Logger {
	return &ZerologLogger{log: build(os.Stdout, component)}
}

func build(w io.Writer, component string) zerolog.Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	var z zerolog.Logger
	if env == "dev" {
		writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		z = zerolog.New(writer).Level(zerolog.DebugLevel)
	} else {
		z = zerolog.New(w).Level(zerolog.InfoLevel)
	}
	return z.With().
		Timestamp().
		Str("service", serviceName).
		Str("component", component).
		Logger()
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
