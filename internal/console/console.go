// Package console attaches a session to the local terminal: raw-mode
// stdin feeds the shell, shell output feeds stdout, and window size
// changes follow the hosting terminal.
package console

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
	"pkt.systems/pslog"

	"pkt.systems/phosphor/internal/config"
	"pkt.systems/phosphor/internal/engine"
	"pkt.systems/phosphor/internal/terminal"
)

// Options configures a local interactive session.
type Options struct {
	Cols            int
	Rows            int
	Shell           string
	Term            string
	Cwd             string
	ScrollbackLines int
	Stdin           *os.File
	Stdout          *os.File
	DisableRaw      bool
	Logger          pslog.Logger
}

// Runner executes a local interactive session.
type Runner struct {
	opts   Options
	logger pslog.Logger
}

// New constructs a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run starts the session and blocks until the shell exits, the context
// is cancelled, or an interrupt arrives.
func (r *Runner) Run(ctx context.Context) error {
	if r.opts.Logger == nil {
		r.opts.Logger = pslog.LoggerFromEnv()
	}
	r.logger = r.opts.Logger.With("component", "console")

	stdin := r.stdin()
	stdout := r.stdout()

	if r.opts.Cols <= 0 || r.opts.Rows <= 0 {
		cols, rows := termSizeAny(stdout, stdin)
		if cols > 0 && rows > 0 {
			r.opts.Cols, r.opts.Rows = cols, rows
		}
	}
	if r.opts.Cols <= 0 {
		r.opts.Cols = config.DefaultTerminalCols
	}
	if r.opts.Rows <= 0 {
		r.opts.Rows = config.DefaultTerminalRows
	}
	termName := r.opts.Term
	if termName == "" {
		termName = config.DefaultTerminalTerm
	}

	eng, err := engine.Start(engine.Config{
		Shell:           ResolveShell(r.opts.Shell),
		Size:            terminal.Size{Cols: r.opts.Cols, Rows: r.opts.Rows},
		Cwd:             r.opts.Cwd,
		Env:             append(os.Environ(), "TERM="+termName),
		ScrollbackLines: r.opts.ScrollbackLines,
		Logger:          r.opts.Logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = eng.Close()
	}()

	if !r.opts.DisableRaw {
		state, err := term.MakeRaw(int(stdin.Fd()))
		if err != nil {
			return errors.New("stdin is not a terminal")
		}
		defer func() {
			_ = term.Restore(int(stdin.Fd()), state)
		}()
	}
	_ = setNonblock(stdin, true)
	defer func() {
		_ = setNonblock(stdin, false)
	}()

	sigCtx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	defer signal.Stop(sigwinch)

	var wg sync.WaitGroup

	// Local input -> engine.
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]byte, 4096)
		for {
			select {
			case <-sigCtx.Done():
				return
			case <-eng.Done():
				return
			default:
			}
			n, err := stdin.Read(buf)
			if err != nil {
				if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) {
					time.Sleep(10 * time.Millisecond)
					continue
				}
				if !errors.Is(err, io.EOF) {
					r.logger.Debug("stdin read error", "err", err)
				}
				return
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			if !eng.Send(terminal.WriteCommand{Data: data}) {
				return
			}
		}
	}()

	// Window size changes -> engine.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-sigCtx.Done():
				return
			case <-eng.Done():
				return
			case <-sigwinch:
				cols, rows := termSizeAny(stdout, stdin)
				if cols <= 0 || rows <= 0 {
					continue
				}
				eng.Send(terminal.ResizeCommand{Size: terminal.Size{Cols: cols, Rows: rows}})
			}
		}
	}()

	sub := eng.Subscribe(0)
	sigDone := sigCtx.Done()
	for {
		select {
		case <-sigDone:
			sigDone = nil
			go func() { _ = eng.Close() }()
		case ev, ok := <-sub.Events():
			if !ok {
				stopSignals()
				wg.Wait()
				return nil
			}
			switch ev := ev.(type) {
			case terminal.OutputEvent:
				if err := writeAll(sigCtx, stdout, ev.Data); err != nil {
					r.logger.Debug("stdout write error", "err", err)
				}
			case terminal.ClosedEvent:
				r.logger.Debug("session closed", "reason", ev.Reason)
			}
		}
	}
}

func (r *Runner) stdin() *os.File {
	if r.opts.Stdin != nil {
		return r.opts.Stdin
	}
	return os.Stdin
}

func (r *Runner) stdout() *os.File {
	if r.opts.Stdout != nil {
		return r.opts.Stdout
	}
	return os.Stdout
}

func termSize(file *os.File) (int, int) {
	if file == nil {
		return 0, 0
	}
	cols, rows, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0, 0
	}
	return cols, rows
}

func termSizeAny(files ...*os.File) (int, int) {
	for _, file := range files {
		if file == nil {
			continue
		}
		cols, rows := termSize(file)
		if cols > 0 && rows > 0 {
			return cols, rows
		}
	}
	if tty, err := os.Open("/dev/tty"); err == nil {
		defer func() {
			_ = tty.Close()
		}()
		if cols, rows := termSize(tty); cols > 0 && rows > 0 {
			return cols, rows
		}
	}
	return 0, 0
}

func setNonblock(file *os.File, on bool) error {
	if file == nil {
		return nil
	}
	return syscall.SetNonblock(int(file.Fd()), on)
}

func writeAll(ctx context.Context, w io.Writer, data []byte) error {
	for len(data) > 0 {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := w.Write(data)
		if n > 0 {
			data = data[n:]
		}
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			return err
		}
	}
	return nil
}
