// Package logging configures the application's slog loggers: a
// human-readable logger on stderr and, when enabled, a structured JSON
// logger written to a rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mothtrap/mothtrap-go/internal/conf"
)

var fileWriter io.WriteCloser

// Init sets up the default slog logger according to settings. Debug
// lowers the stderr level; file logging rotates via lumberjack.
func Init(settings *conf.Settings) {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}

	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	handler := slog.Handler(stderrHandler)

	if settings.Main.Log.Enabled {
		lj := &lumberjack.Logger{
			Filename: settings.Main.Log.Path,
			MaxSize:  settings.Main.Log.MaxSize,
			MaxAge:   settings.Main.Log.MaxAge,
			Compress: true,
		}
		fileWriter = lj
		fileHandler := slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = newTeeHandler(stderrHandler, fileHandler)
	}

	slog.SetDefault(slog.New(handler).With("name", settings.Main.Name))
}

// Close flushes and closes the rotated log file, if one was opened.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}
