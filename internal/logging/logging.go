// Package logging builds the slog logger shared by the terminal apps. Both
// apps own stdout, so records go to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"faqbot/internal/config"
)

// New returns a text logger writing to cfg.File, or to fallbackName inside
// the user config directory when no file is configured. The returned closer
// releases the log file.
func New(cfg config.LogConfig, fallbackName string) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, fallbackName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return NewWithWriter(w, cfg.Level), w, nil
}

// NewWithWriter returns a text logger writing to w at the named level.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps debug/info/warn/error to a slog level; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
