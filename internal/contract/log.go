package contract

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide console logger writing to stderr.
var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// SetLogOutput redirects log output, mainly for tests.
func SetLogOutput(w io.Writer) {
	level := logger.GetLevel()
	logger = newLogger(w).Level(level)
}

// SetVerbose enables debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
		return
	}
	logger = logger.Level(zerolog.InfoLevel)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.Error().Err(err).Msg(msg)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logger.Warn().Err(err).Msg(msg)
}

// LogDebug logs a debug message with key/value pairs.
func LogDebug(msg string, fields map[string]any) {
	logger.Debug().Fields(fields).Msg(msg)
}
