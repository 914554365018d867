// Package phosphor is the embeddable terminal engine SDK: spawn a
// shell on a PTY, feed it input, and observe decoded terminal state
// and raw output through an event stream.
package phosphor

import (
	"context"

	"pkt.systems/pslog"

	"pkt.systems/phosphor/internal/console"
	"pkt.systems/phosphor/internal/engine"
	"pkt.systems/phosphor/internal/terminal"
)

// Command and event types exchanged with a session.
type (
	Command       = terminal.Command
	WriteCommand  = terminal.WriteCommand
	ResizeCommand = terminal.ResizeCommand
	CloseCommand  = terminal.CloseCommand

	Event       = terminal.Event
	OutputEvent = terminal.OutputEvent
	StateEvent  = terminal.StateEvent
	ResizeEvent = terminal.ResizeEvent
	ClosedEvent = terminal.ClosedEvent
)

// Terminal state types exposed by snapshots.
type (
	Size     = terminal.Size
	Cursor   = terminal.Cursor
	Cell     = terminal.Cell
	Snapshot = terminal.Snapshot
)

// Session is a running shell attached to a PTY plus the engine that
// models its screen.
type Session = engine.Engine

// SessionOptions configures an embedded session.
type SessionOptions struct {
	Shell           string
	Cols            int
	Rows            int
	Cwd             string
	Env             []string
	ScrollbackLines int
	Logger          pslog.Logger
}

// StartSession spawns a shell and returns the running session. The
// caller interacts through Send, Subscribe, and Snapshot, and ends the
// session with Close.
func StartSession(opts SessionOptions) (*Session, error) {
	return engine.Start(engine.Config{
		Shell:           console.ResolveShell(opts.Shell),
		Size:            terminal.Size{Cols: opts.Cols, Rows: opts.Rows},
		Cwd:             opts.Cwd,
		Env:             opts.Env,
		ScrollbackLines: opts.ScrollbackLines,
		Logger:          opts.Logger,
	})
}

// InteractiveOptions configures a local interactive Phosphor session.
type InteractiveOptions struct {
	Cols            int
	Rows            int
	Shell           string
	Term            string
	Cwd             string
	ScrollbackLines int
	Logger          pslog.Logger
}

// Interactive runs a session attached to the local terminal and blocks
// until the shell exits or the context is cancelled.
func Interactive(ctx context.Context, opts InteractiveOptions) error {
	return console.New(console.Options{
		Cols:            opts.Cols,
		Rows:            opts.Rows,
		Shell:           opts.Shell,
		Term:            opts.Term,
		Cwd:             opts.Cwd,
		ScrollbackLines: opts.ScrollbackLines,
		Logger:          opts.Logger,
	}).Run(ctx)
}
