// Package logging sets up the rotating JSON log of a session.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB = 10
	DefaultBackups   = 5
)

// Setup creates a logger writing JSON records to a size-rotated file at path.
// Every record carries the id of the session. The returned closer releases
// the file.
func Setup(path string, maxSizeMB, backups int) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if backups < 0 {
		backups = DefaultBackups
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: backups,
	}
	return New(w), w, nil
}

// New returns a JSON logger on w, tagged with a fresh session id.
func New(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if misc.Truthy(os.Getenv("DEBUG")) {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("session", uuid.Must(uuid.NewV7()).String())
}
