/*
Package logx wraps zerolog behind a small leveled API.

The global logger is configured once at startup: console output at debug level in
development, JSON at info level otherwise. The helpers accept alternating key-value
field pairs; odd field lists are ignored with a warning instead of panicking.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the process-wide logger for the given environment.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.
			Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger exposes the global zerolog instance for callers that need sub-loggers.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// checkFields drops an odd-length field list, which would otherwise panic zerolog.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("Logx call (%s) received odd number of fields: %v. Fields ignored.", level, fields)
		return nil
	}
	return fields
}

func emit(event *zerolog.Event, level, msg string, fields []any) {
	event.Fields(checkFields(level, fields)).CallerSkipFrame(2).Msg(msg)
}

// Debug records a diagnostic that stays out of production output, such as platform
// detection and payload parsing results.
func Debug(msg string, fields ...any) {
	emit(Logger().Debug(), "Debug", msg, fields)
}

// Info records a message at the Info level.
func Info(msg string, fields ...any) {
	emit(Logger().Info(), "Info", msg, fields)
}

// Warn records a message at the Warn level.
func Warn(msg string, fields ...any) {
	emit(Logger().Warn(), "Warn", msg, fields)
}

// Error records an error with a message and optional fields.
func Error(err error, msg string, fields ...any) {
	emit(Logger().Error().Err(err), "Error", msg, fields)
}

// Fatal records an error and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	emit(Logger().Fatal().Err(err), "Fatal", msg, fields)
}
