// Package iologger sets up the slog default logger of gnobs.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnobs/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnobs.log"

// Init replaces the default slog logger according to cfg. With the "file"
// destination logs go to LogFile in logDir; the file is truncated unless
// append is true. The returned closer releases the file and is a no-op
// for standard streams.
func Init(logDir string, cfg config.LogConfig, append bool) (io.Closer, error) {
	w, closer, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(NewHandler(w, cfg)))
	return closer, nil
}

// NewHandler creates a handler of the configured format and level.
// Unknown formats give JSON.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	switch cfg.Format {
	case "text", "tint":
		// TODO: colored output for "tint" via github.com/lmittmann/tint
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func writer(logDir, dest string, append bool) (io.Writer, io.Closer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "file":
		path := filepath.Join(logDir, LogFile)
		flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(path, flag, 0644)
		if err != nil {
			return nil, nil, CreateLogFileError(path, err)
		}
		return f, f, nil
	default:
		return os.Stderr, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
