package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var base zerolog.Logger

func init() {
	Configure(os.Getenv("ENVIRONMENT"))
}

// Configure rebuilds the process logger. Development gets console output at debug level.
func Configure(environment string) {
	if strings.EqualFold(environment, "development") {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}
	base = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// With returns a logger tagged with the given component name.
func With(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

func Info(format string, v ...interface{}) {
	base.Info().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	base.Error().Msgf(format, v...)
}

func Debug(format string, v ...interface{}) {
	base.Debug().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	base.Warn().Msgf(format, v...)
}

func Fatal(format string, v ...interface{}) {
	base.Fatal().Msgf(format, v...)
}
