package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type SetupParams struct {
	// Debug routes output somewhere visible. Without it logs are discarded,
	// since the dashboard owns the terminal.
	Debug bool
	// LogFile, when set together with Debug, receives the output instead of
	// stderr.
	LogFile  string
	LogLevel string
	JSON     bool
}

// Setup configures the standard logrus logger. The returned closer releases
// the log file, if any.
func Setup(params SetupParams) (io.Closer, error) {
	if params.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level := GetLevel(params.LogLevel)
	if params.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if !params.Debug {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if params.LogFile == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(params.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, err
	}
	logrus.SetOutput(f)
	return f, nil
}

// DebugFromEnv interprets a debug variable: empty or "0" disables, a value
// ending in ".log" names a log file, anything else enables stderr output.
func DebugFromEnv(value string) (enabled bool, file string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "" || value == "0" || strings.EqualFold(value, "false"):
		return false, ""
	case strings.HasSuffix(strings.ToLower(value), ".log"):
		return true, value
	default:
		return true, ""
	}
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
