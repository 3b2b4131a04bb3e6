// Package logger builds the application logger: rotating file output, with
// stderr mirroring in debug mode. The logger is constructed once in main and
// passed down; nothing in this module reads a package-level instance.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Debug   bool
	DataDir string
}

// New creates the logger, writing to <DataDir>/logs/habitflow.log with
// rotation. Debug mode lowers the level and mirrors to stderr.
func New(cfg Config) (*log.Logger, error) {
	logDir := filepath.Join(cfg.DataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "habitflow.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	return log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitflow",
	}), nil
}
