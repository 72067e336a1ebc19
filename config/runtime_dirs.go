package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RuntimeDirs holds the runtime paths of the ipactl daemon.
//
//	{base}/           - runtime root
//	{base}/db/        - endpoint journal
//	{base}/.lock      - attach lock
//	{base}-sock/      - diagnostics socket directory
//
// RuntimeDirs is immutable after construction. Use NewRuntimeDirs to create.
type RuntimeDirs struct {
	base string
	db   string
	sock string
	lock string
}

// DefaultRuntimeDirs returns RuntimeDirs with production defaults.
func DefaultRuntimeDirs() RuntimeDirs {
	dirs, err := NewRuntimeDirs("/run/ipa")
	if err != nil {
		panic(fmt.Sprintf("DefaultRuntimeDirs: %v", err))
	}
	return dirs
}

// NewRuntimeDirs creates RuntimeDirs rooted at the given base path.
// Returns an error if base is empty or not an absolute path.
func NewRuntimeDirs(base string) (RuntimeDirs, error) {
	if base == "" {
		return RuntimeDirs{}, fmt.Errorf("base path cannot be empty")
	}
	if !filepath.IsAbs(base) {
		return RuntimeDirs{}, fmt.Errorf("base path must be absolute, got %q", base)
	}
	base = filepath.Clean(base)
	return RuntimeDirs{
		base: base,
		db:   filepath.Join(base, "db"),
		sock: base + "-sock",
		lock: filepath.Join(base, ".lock"),
	}, nil
}

// Base returns the runtime root.
func (d RuntimeDirs) Base() string { return d.base }

// DB returns the database directory.
func (d RuntimeDirs) DB() string { return d.db }

// Sock returns the diagnostics socket directory.
func (d RuntimeDirs) Sock() string { return d.sock }

// Lock returns the attach lock file path.
func (d RuntimeDirs) Lock() string { return d.lock }

// DBPath returns the full path to the SQLite database file.
func (d RuntimeDirs) DBPath() string {
	return filepath.Join(d.db, "ipa.db")
}

// SocketPath returns the full path to the diagnostics socket.
func (d RuntimeDirs) SocketPath() string {
	return filepath.Join(d.sock, "ipa.sock")
}

// EnsureDirectories creates the runtime directories. Call this at
// startup to fail fast on permission problems.
func (d RuntimeDirs) EnsureDirectories() error {
	for _, dir := range []string{d.base, d.db, d.sock} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
