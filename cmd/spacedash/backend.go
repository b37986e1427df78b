package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-dash/internal/progress"
	"github.com/vovakirdan/space-dash/internal/storage"
)

// backend is the opened progress store. history is set only for sqlite.
type backend struct {
	kv      progress.KeyValue
	history *storage.Store
	kind    string
}

func (b *backend) Close() {
	if b.history != nil {
		b.history.Close()
	}
}

// openBackend opens the configured store. When it cannot be opened the
// game still runs on a memory store and the failure is logged.
func openBackend(logger *log.Logger) *backend {
	switch flagStore {
	case "sqlite":
		store, err := storage.Open(flagDBPath)
		if err == nil {
			return &backend{kv: store, history: store, kind: flagStore}
		}
		logger.Warn("could not open database, progress will not be saved", "path", flagDBPath, "error", err)
	case "gdata":
		store, err := storage.OpenLocal(appName)
		if err == nil {
			return &backend{kv: store, kind: flagStore}
		}
		logger.Warn("could not open local data, progress will not be saved", "error", err)
	case "memory":
	default:
		logger.Warn("unknown store, using memory", "store", flagStore)
	}
	return &backend{kv: storage.NewMemory(), kind: "memory"}
}

// tracker loads the local player's progress from b.
func (b *backend) tracker(logger *log.Logger) *progress.Tracker {
	var opts []progress.TrackerOption
	if b.history != nil {
		opts = append(opts, progress.WithHistory(b.history, localPlayer()))
	}
	t := progress.NewTracker(b.kv, gameConfig.Gameplay.MaxLevel, opts...)
	if err := t.Load(); err != nil {
		logger.Warn("saved progress unreadable, starting fresh", "error", err)
	}
	return t
}

// localPlayer names the local user in the run history.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// fileLogger logs into ~/.spacedash/<name> so the alt screen stays clean.
// It falls back to stderr when the file cannot be opened.
func fileLogger(name string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(appName), func() {}
	}
	dir := filepath.Join(home, ".spacedash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(appName), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(appName), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
	})
	return logger, func() { f.Close() }
}

func requireSQLite(b *backend) (*storage.Store, error) {
	if b.history == nil {
		return nil, fmt.Errorf("run history needs the sqlite store (--store sqlite), current store is %s", b.kind)
	}
	return b.history, nil
}
