package logger

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

const (
	LOG_FORMAT       = "%{time:2006-01-02 15:04:05.000} [%{level:.4s}] %{shortfile} %{message}"
	LOG_COLOR_FORMAT = "%{color}%{time:2006-01-02 15:04:05.000} [%{level:.4s}]%{color:reset} %{shortfile} %{message}"
)

// Rendered records go to stdout, so log output always goes to stderr or a file.
var stderr io.Writer = os.Stderr

func backend(w io.Writer, format string, level logging.Level) logging.LeveledBackend {
	b := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(w, "", 0),
			logging.MustStringFormatter(format),
		),
	)
	b.SetLevel(level, "")
	return b
}

// InitConsoleLog logs messages of at least levelString to stderr.
func InitConsoleLog(levelString string) error {
	level, err := logging.LogLevel(levelString)
	if err != nil {
		return err
	}
	logging.SetBackend(backend(stderr, LOG_COLOR_FORMAT, level))
	return nil
}

// InitLog logs messages of at least levelString to stderr and appends them to filePath.
// The returned closer closes the log file.
func InitLog(filePath string, levelString string) (io.Closer, error) {
	level, err := logging.LogLevel(levelString)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logging.SetBackend(
		backend(stderr, LOG_COLOR_FORMAT, level),
		backend(f, LOG_FORMAT, level),
	)
	return f, nil
}
