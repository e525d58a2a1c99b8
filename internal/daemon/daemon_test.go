package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "hotcorners-test.pid"))
}

func TestWriteReadPID(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error = %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}
}

func TestReadPIDMissingFile(t *testing.T) {
	d := newTestDaemon(t)

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error = %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() = %d, want 0 for missing file", pid)
	}
}

func TestReadPIDGarbage(t *testing.T) {
	d := newTestDaemon(t)

	if err := os.WriteFile(d.PIDFile(), []byte("not-a-pid"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := d.ReadPID(); err == nil {
		t.Error("ReadPID() error = nil for garbage content, want error")
	}
}

func TestIsRunningOwnProcess(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}

	running, pid, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error = %v", err)
	}
	if !running {
		t.Error("IsRunning() = false for the current process")
	}
	if pid != os.Getpid() {
		t.Errorf("IsRunning() pid = %d, want %d", pid, os.Getpid())
	}
}

func TestIsRunningStalePID(t *testing.T) {
	d := newTestDaemon(t)

	// PIDs above the kernel maximum cannot belong to a live process.
	if err := os.WriteFile(d.PIDFile(), []byte("99999999"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	running, _, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error = %v", err)
	}
	if running {
		t.Error("IsRunning() = true for a stale PID")
	}

	if _, err := os.Stat(d.PIDFile()); !os.IsNotExist(err) {
		t.Error("stale PID file was not cleaned up")
	}
}

func TestStopNotRunning(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() error = %v, want ErrNotRunning", err)
	}
}

func TestReloadNotRunning(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.Reload(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Reload() error = %v, want ErrNotRunning", err)
	}
}

func TestRemovePIDIdempotent(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.RemovePID(); err != nil {
		t.Errorf("RemovePID() on missing file error = %v", err)
	}

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}
	if err := d.RemovePID(); err != nil {
		t.Errorf("RemovePID() error = %v", err)
	}
	if err := d.RemovePID(); err != nil {
		t.Errorf("second RemovePID() error = %v", err)
	}
}
