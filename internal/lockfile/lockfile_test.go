package lockfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mitchellh/go-ps"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.lock")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != strconv.Itoa(os.Getpid()) {
		t.Fatalf("pidfile content = %q", content)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("pidfile should be removed after release")
	}
}

func TestAcquireRejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.lock")

	// Our own pid is definitely alive.
	os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)

	if _, err := Acquire(path); err == nil {
		t.Fatal("expected error when pidfile names a live process")
	}
}

func TestAcquireReplacesStalePidfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.lock")
	os.WriteFile(path, []byte("999999"), 0o644)

	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	t.Cleanup(func() { findProcessFunc = orig })

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("stale pidfile should be replaced: %v", err)
	}
	l.Release()
}

func TestAcquireIgnoresMalformedPidfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.lock")
	os.WriteFile(path, []byte("not-a-pid"), 0o644)

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("malformed pidfile should be replaced: %v", err)
	}
	l.Release()
}

func TestPathFor(t *testing.T) {
	got := PathFor("/home/u/.config/dailyflow/default.db")
	want := "/home/u/.config/dailyflow/default.lock"
	if got != want {
		t.Fatalf("PathFor = %q, want %q", got, want)
	}
}
