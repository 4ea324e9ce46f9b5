// Package lockfile guards the database against concurrent instances
// with a pidfile next to the profile database.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

var findProcessFunc = ps.FindProcess

type Lock struct {
	path string
}

// Acquire writes a pidfile at path. It fails when the file already
// names a live process; stale pidfiles left by crashed instances are
// replaced silently.
func Acquire(path string) (*Lock, error) {
	if content, err := os.ReadFile(path); err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
		if err == nil && pid > 0 {
			if proc, err := findProcessFunc(pid); err == nil && proc != nil {
				return nil, fmt.Errorf("another instance is running (pid %d)", pid)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return nil, fmt.Errorf("write pidfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the pidfile. Safe to call once per Acquire.
func (l *Lock) Release() error {
	return os.Remove(l.path)
}

// PathFor returns the pidfile path for a database path, alongside the
// database file itself.
func PathFor(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".lock"
}
