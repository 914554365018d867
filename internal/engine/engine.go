// Package engine runs the session loop: the single owner of terminal
// state. It bridges the blocking PTY read into a cooperative select
// loop, applies output to the emulator, and publishes events in a
// fixed order: output first, then the state change it produced.
package engine

import (
	"errors"
	"io"
	"sync"
	"syscall"

	"pkt.systems/pslog"

	"pkt.systems/phosphor/internal/bus"
	"pkt.systems/phosphor/internal/pty"
	"pkt.systems/phosphor/internal/terminal"
	"pkt.systems/phosphor/internal/terminal/emu"
)

// readBufferSize is the chunk size for blocking PTY reads.
const readBufferSize = 32 * 1024

// Config describes a session to start.
type Config struct {
	Shell           string
	Size            terminal.Size
	Cwd             string
	Env             []string
	ScrollbackLines int
	Logger          pslog.Logger
}

// Engine owns a live session: the PTY, the emulator, and the bus
// connecting them to collaborators. All state mutation happens on the
// engine loop; collaborators interact through commands and events.
type Engine struct {
	logger  pslog.Logger
	bus     *bus.Bus
	session *pty.Session

	mu  sync.Mutex
	emu *emu.Emulator

	chunks  chan []byte
	readErr error

	done      chan struct{}
	closeOnce sync.Once
}

// Start spawns the shell and launches the reader and loop goroutines.
func Start(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}
	logger = logger.With("component", "engine")

	size := cfg.Size.Clamped()
	session, err := pty.Spawn(cfg.Shell, size, cfg.Cwd, cfg.Env)
	if err != nil {
		return nil, err
	}

	scrollback := cfg.ScrollbackLines
	if scrollback <= 0 {
		scrollback = emu.DefaultScrollbackLines
	}

	e := &Engine{
		logger:  logger,
		bus:     bus.New(logger),
		session: session,
		emu:     emu.NewWithScrollback(size.Cols, size.Rows, scrollback),
		chunks:  make(chan []byte, 1),
		done:    make(chan struct{}),
	}
	logger.Info("session started",
		"shell", cfg.Shell, "pid", session.Pid(),
		"cols", size.Cols, "rows", size.Rows)

	go e.readLoop()
	go e.run()
	return e, nil
}

// Send queues a command for the engine loop, blocking when the queue
// is full. It reports false once the session is closing.
func (e *Engine) Send(cmd terminal.Command) bool {
	return e.bus.Send(cmd)
}

// Subscribe registers an event subscriber.
func (e *Engine) Subscribe(buffer int) *bus.Subscription {
	return e.bus.Subscribe(buffer)
}

// Snapshot returns a copy of the current terminal state.
func (e *Engine) Snapshot() terminal.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap, _ := e.emu.Snapshot()
	return snap
}

// ScrollbackLen reports the number of scrollback rows.
func (e *Engine) ScrollbackLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emu.ScrollbackLen()
}

// ScrollbackRow returns the i-th scrollback row, oldest first.
func (e *Engine) ScrollbackRow(i int) []terminal.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emu.ScrollbackRow(i)
}

// Done is closed when the session has fully shut down.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until the session has shut down.
func (e *Engine) Wait() {
	<-e.done
}

// Close requests shutdown and waits for it to complete. Equivalent to
// sending a CloseCommand.
func (e *Engine) Close() error {
	e.Send(terminal.CloseCommand{})
	// If the loop already exited the send is rejected; either way the
	// session ends.
	e.Wait()
	return nil
}

// readLoop performs blocking reads on the PTY master. This is the one
// goroutine allowed to sit in a blocking OS call; everything it learns
// travels to the engine loop as a message. The descriptor stays in
// blocking mode throughout: a zero-byte read here is genuine EOF, not
// EAGAIN noise.
func (e *Engine) readLoop() {
	defer close(e.chunks)
	buf := make([]byte, readBufferSize)
	for {
		n, err := e.session.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case e.chunks <- chunk:
			case <-e.done:
				return
			}
		}
		if err != nil {
			// Linux reports EIO instead of EOF once the child side
			// is gone; both mean the shell is done.
			if err != io.EOF && !errors.Is(err, syscall.EIO) {
				e.readErr = err
			}
			return
		}
	}
}

// run is the engine loop. It alone touches the emulator.
func (e *Engine) run() {
	for {
		select {
		case cmd := <-e.bus.Commands():
			if !e.handleCommand(cmd) {
				return
			}
		case chunk, ok := <-e.chunks:
			if !ok {
				e.teardown(e.closeReason())
				return
			}
			e.applyOutput(chunk)
		}
	}
}

func (e *Engine) handleCommand(cmd terminal.Command) bool {
	switch c := cmd.(type) {
	case terminal.WriteCommand:
		if _, err := e.session.Write(c.Data); err != nil {
			e.logger.Warn("pty write failed", "err", err)
			e.teardown("write failed: " + err.Error())
			return false
		}
	case terminal.ResizeCommand:
		size := c.Size.Clamped()
		if err := e.session.Resize(size); err != nil {
			e.logger.Warn("pty resize failed", "err", err)
		}
		e.mu.Lock()
		e.emu.Resize(size.Cols, size.Rows)
		e.mu.Unlock()
		e.bus.Publish(terminal.ResizeEvent{Size: size})
		e.bus.Publish(terminal.StateEvent{})
	case terminal.CloseCommand:
		e.teardown("closed")
		return false
	}
	return true
}

// applyOutput feeds a batch into the emulator, then publishes the
// output followed by the state change. Subscribers that see the
// OutputEvent may assume its bytes are already reflected in state.
func (e *Engine) applyOutput(chunk []byte) {
	e.mu.Lock()
	_ = e.emu.Write(chunk)
	e.mu.Unlock()
	e.bus.Publish(terminal.OutputEvent{Data: chunk})
	e.bus.Publish(terminal.StateEvent{})
}

func (e *Engine) closeReason() string {
	if e.readErr != nil {
		return "io error: " + e.readErr.Error()
	}
	return "shell exited"
}

// teardown ends the session: stops command intake, closes the PTY
// (which unblocks any pending read), publishes exactly one Closed
// event, and reaps the child best-effort.
func (e *Engine) teardown(reason string) {
	e.closeOnce.Do(func() {
		e.bus.CloseIntake()
		_ = e.session.Close()
		e.bus.Publish(terminal.ClosedEvent{Reason: reason})
		e.bus.Shutdown()
		e.logger.Info("session closed", "reason", reason)
		close(e.done)
	})
}
