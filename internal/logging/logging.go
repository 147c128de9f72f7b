// Package logging configures the process-wide logger.
//
// Packages log through the charmbracelet/log package-level functions; Setup
// only adjusts the default logger once at startup.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Setup configures the default logger with the given level and output.
// Unknown levels fall back to info.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	log.SetDefault(logger)
}

// TaskLogger adapts the default logger to the backlite Logger interface.
type TaskLogger struct{}

func (TaskLogger) Info(message string, params ...any) {
	log.Info("[TASK] "+message, params...)
}

func (TaskLogger) Error(message string, params ...any) {
	log.Error("[TASK] "+message, params...)
}
