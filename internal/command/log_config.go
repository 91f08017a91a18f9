package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joeycumines/resumebt/internal/config"
)

// logConfig holds resolved logging configuration for tree-executing commands.
type logConfig struct {
	level   slog.Level
	logFile io.WriteCloser // nil logs to stderr
}

// resolveLogConfig resolves log configuration from flags and settings. Flags
// take precedence when non-empty. The caller must call close when done.
func resolveLogConfig(flagLevel, flagPath string, settings config.Settings) (logConfig, error) {
	var lc logConfig

	levelStr := flagLevel
	if levelStr == "" {
		levelStr = settings.LogLevel
	}
	switch strings.ToLower(levelStr) {
	case "debug":
		lc.level = slog.LevelDebug
	case "info", "":
		lc.level = slog.LevelInfo
	case "warn":
		lc.level = slog.LevelWarn
	case "error":
		lc.level = slog.LevelError
	default:
		return lc, fmt.Errorf("invalid log level: %s", levelStr)
	}

	logPath := flagPath
	if logPath == "" {
		logPath = settings.LogFile
	}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return lc, fmt.Errorf("failed to open log file %s: %w", logPath, err)
		}
		lc.logFile = f
	}

	return lc, nil
}

// logger returns a text logger writing to the log file, or stderr.
func (lc logConfig) logger(stderr io.Writer) *slog.Logger {
	w := stderr
	if lc.logFile != nil {
		w = lc.logFile
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lc.level}))
}

func (lc logConfig) close() {
	if lc.logFile != nil {
		_ = lc.logFile.Close()
	}
}
