// Package log configures structured logging for goeda. Library code logs
// through the standard log/slog facade; this package wires a JSON handler
// that understands cockroachdb/errors stack traces and bridges the
// pkg/errors warning hook into zerolog.
package log

import (
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	goedaErrors "github.com/YuminosukeSato/goeda/pkg/errors"
)

// SetupLogger installs the default JSON slog handler at the given level.
// Unrecognized level names are rejected so callers wiring user input can
// fall back to a default of their choosing.
func SetupLogger(loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
	return nil
}

// supportedLogLevels lists the parseable level names.
var supportedLogLevels = []string{"debug", "info", "warn", "error"}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goedaErrors.NewUnsupportedKindError("log.ToLogLevel", level, supportedLogLevels)
	}
}

const (
	// ErrAttrKey is the slog attribute key carrying an error value.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the slog attribute key carrying a stack trace.
	StacktraceAttrKey = "stacktrace"
)

// InstallWarningBridge routes pkg/errors warnings into a zerolog logger.
// Warning types implementing zerolog.LogObjectMarshaler are logged with
// their structured fields.
func InstallWarningBridge(logger zerolog.Logger) {
	goedaErrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg(warning.Error())
			return
		}
		ev.Err(warning).Msg("goeda warning")
	})
}
