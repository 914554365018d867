package pty

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pkt.systems/phosphor/internal/terminal"
)

func TestSpawnEchoRoundTrip(t *testing.T) {
	s, err := Spawn("/bin/sh", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.Write([]byte("echo phosphor-roundtrip\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var out strings.Builder
	buf := make([]byte, 4096)
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		n, err := s.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if strings.Contains(out.String(), "phosphor-roundtrip") {
			return
		}
		if err != nil {
			break
		}
	}
	t.Fatalf("echo output not seen, got %q", out.String())
}

func TestSpawnMissingBinary(t *testing.T) {
	_, err := Spawn("/nonexistent/shell", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v, want SpawnError", err)
	}
}

func TestSpawnImmediateExit(t *testing.T) {
	_, err := Spawn("/bin/true", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	var exitErr *ExitedError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want ExitedError", err)
	}
	if exitErr.Status != 0 {
		t.Fatalf("status = %d", exitErr.Status)
	}
}

func TestCloseUnblocksRead(t *testing.T) {
	s, err := Spawn("/bin/sh", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			if _, err := s.Read(buf); err != nil {
				return
			}
		}
	}()

	time.Sleep(50 * time.Millisecond)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Read still blocked after Close")
	}
	// Idempotent.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestEOFWhenShellExits(t *testing.T) {
	s, err := Spawn("/bin/sh", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.Write([]byte("exit 0\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 4096)
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		_, err := s.Read(buf)
		if err != nil {
			// EOF on BSDs, EIO on Linux; either ends the session.
			if err == io.EOF || strings.Contains(err.Error(), "input/output error") {
				return
			}
			t.Fatalf("unexpected read error: %v", err)
		}
	}
	t.Fatalf("read did not terminate after shell exit")
}

func TestResize(t *testing.T) {
	s, err := Spawn("/bin/sh", terminal.Size{Cols: 80, Rows: 24}, "", nil)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Resize(terminal.Size{Cols: 132, Rows: 50}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	// Degenerate sizes are clamped rather than rejected.
	if err := s.Resize(terminal.Size{Cols: 0, Rows: -1}); err != nil {
		t.Fatalf("Resize clamped: %v", err)
	}
}

func TestSpawnHonorsCwdAndEnv(t *testing.T) {
	s, err := Spawn("/bin/sh", terminal.Size{Cols: 80, Rows: 24}, "/tmp",
		[]string{"PATH=/bin:/usr/bin", "PHOSPHOR_MARK=yes", "TERM=xterm-256color"})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.Write([]byte("echo $PHOSPHOR_MARK:$PWD\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var out strings.Builder
	buf := make([]byte, 4096)
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		n, err := s.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if strings.Contains(out.String(), "yes:/tmp") {
			return
		}
		if err != nil {
			break
		}
	}
	t.Fatalf("marker not seen, got %q", out.String())
}
