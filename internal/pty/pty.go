// Package pty owns the pseudo-terminal: spawning the shell as session
// leader with the PTY as controlling terminal, and the raw read/write/
// resize surface on the master descriptor.
package pty

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"

	"pkt.systems/phosphor/internal/terminal"
)

// spawnGrace is how long Spawn waits before checking that the shell
// survived startup. A shell that dies faster than this (bad binary,
// missing shared library) fails the spawn instead of producing a
// session that is dead on arrival.
const spawnGrace = 50 * time.Millisecond

// SpawnError wraps a PTY allocation or exec failure.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string { return "spawn shell: " + e.Err.Error() }
func (e *SpawnError) Unwrap() error { return e.Err }

// ExitedError reports a shell that exited within the spawn grace
// period.
type ExitedError struct {
	Status int
}

func (e *ExitedError) Error() string {
	return fmt.Sprintf("shell exited immediately with status %d", e.Status)
}

// Session is a live shell attached to a PTY. Reads block until the
// shell produces output or the master is closed; writes are serialized
// internally. Resize may interleave with both.
type Session struct {
	master *os.File
	cmd    *exec.Cmd

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
	reaped    bool
	reapMu    sync.Mutex
}

// Spawn launches shell on a fresh PTY at the given size. The child
// becomes session leader with the PTY slave as controlling terminal;
// the parent keeps only the master. cwd and env are optional; nil env
// inherits the parent environment.
func Spawn(shell string, size terminal.Size, cwd string, env []string) (*Session, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, &SpawnError{Err: err}
	}
	size = size.Clamped()
	_ = pty.Setsize(master, &pty.Winsize{
		Cols: uint16(size.Cols),
		Rows: uint16(size.Rows),
	})

	cmd := exec.Command(shell)
	cmd.Dir = cwd
	cmd.Env = env
	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}
	if err := cmd.Start(); err != nil {
		_ = master.Close()
		_ = slave.Close()
		return nil, &SpawnError{Err: err}
	}
	// The child owns the slave now. Holding our copy open would mask
	// EOF on the master after the child exits.
	_ = slave.Close()

	s := &Session{master: master, cmd: cmd}

	time.Sleep(spawnGrace)
	if status, exited := s.reap(0); exited {
		_ = master.Close()
		return nil, &ExitedError{Status: status}
	}
	return s, nil
}

// Read performs a blocking read on the master descriptor. A closed
// master or exited child surfaces as io.EOF or EIO depending on the
// platform; both mean the session is over.
func (s *Session) Read(p []byte) (int, error) {
	return s.master.Read(p)
}

// Write sends input to the shell. Concurrent writers are serialized so
// byte sequences are never interleaved mid-escape.
func (s *Session) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.master.Write(p)
}

// Resize updates the PTY window size and delivers SIGWINCH to the
// foreground process group. Non-positive dimensions are clamped.
func (s *Session) Resize(size terminal.Size) error {
	size = size.Clamped()
	return pty.Setsize(s.master, &pty.Winsize{
		Cols: uint16(size.Cols),
		Rows: uint16(size.Rows),
	})
}

// Pid returns the shell's process id.
func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

// Close tears the session down: closes the master (unblocking any
// pending Read), signals the child, and reaps it best-effort without
// blocking. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.master.Close()
		if _, exited := s.reap(0); exited {
			return
		}
		_ = s.cmd.Process.Signal(syscall.SIGHUP)
		if _, exited := s.reap(10 * time.Millisecond); exited {
			return
		}
		_ = s.cmd.Process.Kill()
		_, _ = s.reap(10 * time.Millisecond)
	})
	return s.closeErr
}

// reap polls for child exit with WNOHANG, waiting at most grace. It
// never blocks indefinitely; an unreaped child is left to the OS.
func (s *Session) reap(grace time.Duration) (status int, exited bool) {
	s.reapMu.Lock()
	defer s.reapMu.Unlock()
	if s.reaped {
		return 0, true
	}
	deadline := time.Now().Add(grace)
	for {
		var ws syscall.WaitStatus
		pid, err := syscall.Wait4(s.cmd.Process.Pid, &ws, syscall.WNOHANG, nil)
		if err == nil && pid == s.cmd.Process.Pid {
			s.reaped = true
			return ws.ExitStatus(), true
		}
		if err != nil && err != syscall.EINTR {
			// ECHILD: someone else reaped it.
			s.reaped = true
			return 0, true
		}
		if !time.Now().Before(deadline) {
			return 0, false
		}
		time.Sleep(time.Millisecond)
	}
}
