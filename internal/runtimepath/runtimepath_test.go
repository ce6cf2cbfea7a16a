package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/monitile-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestApplyLockPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	path, err := ApplyLockPath()
	if err != nil {
		t.Fatalf("ApplyLockPath() error: %v", err)
	}
	if !strings.HasSuffix(path, "/monitile-apply.lock") {
		t.Fatalf("ApplyLockPath() = %q, missing suffix", path)
	}
}

func TestLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apply.lock")

	release, err := Lock(path)
	if err != nil {
		t.Fatalf("first Lock() error: %v", err)
	}

	if _, err := Lock(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Lock() = %v, want ErrLocked", err)
	}

	release()
	again, err := Lock(path)
	if err != nil {
		t.Fatalf("Lock() after release error: %v", err)
	}
	again()
}
