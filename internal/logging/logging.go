// Package logging builds the charm logger shared by commands and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// ParseLevel maps a settings value to a level; unknown values mean info
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w at the configured level
func New(w io.Writer, cfg models.LogSettings) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "auctionpost",
	})
}

// ForCLI logs to stderr so stdout stays clean for command output
func ForCLI(cfg models.LogSettings) *log.Logger {
	return New(os.Stderr, cfg)
}

// ForTUI logs to cfg.File when set and discards otherwise, since the
// terminal belongs to the alternate screen. The returned closer must be
// called on exit.
func ForTUI(cfg models.LogSettings) (*log.Logger, io.Closer, error) {
	if cfg.File == "" {
		return log.New(io.Discard), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
	}
	logger := New(f, cfg)
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
