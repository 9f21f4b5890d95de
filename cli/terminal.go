// Package cli provides a terminal-in-a-terminal adapter: it runs a shell
// behind a PTY, interprets its output with the contra board/interpreter,
// and differentially renders the result back onto the host's own
// terminal (spec.md §6 "CLI surface").
package cli

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/contra-emu/contra"
	"github.com/contra-emu/contra/ptysession"
	"github.com/contra-emu/contra/render"
)

// Options configures a Terminal.
type Options struct {
	Cols, Rows int
	Shell      string
	WorkingDir string
	AutoSize   bool
	Debug      bool
}

// Terminal wires a Board, a Term interpreter, a PTY session, and a
// differential Renderer into one runnable unit.
type Terminal struct {
	mu sync.Mutex

	Board   *contra.Board
	term    *contra.Term
	decoder *contra.SequenceDecoder
	utf8    contra.UTF8Decoder
	session *ptysession.Session
	render  *render.Renderer
	input   *InputHandler
	winch   *ptysession.WinchWatcher

	options  Options
	oldState *term_State
	hostCols, hostRows int

	stopInput  chan struct{}
	stopRender chan struct{}

	OnExit func(int)
}

// term_State avoids a naming collision between the golang.org/x/term
// package import and a field named State.
type term_State = term.State

// New creates a Terminal from opts, applying defaults (shell from
// $SHELL, host-detected size).
func New(opts Options) (*Terminal, error) {
	if opts.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
		if opts.Shell == "" {
			opts.Shell = "/bin/sh"
		}
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir, _ = os.Getwd()
	}
	hostCols, hostRows := hostSize()
	if opts.Cols <= 0 {
		opts.Cols = hostCols
	}
	if opts.Rows <= 0 {
		opts.Rows = hostRows
	}

	board := contra.NewBoard(opts.Cols, opts.Rows)
	t := &Terminal{
		Board:      board,
		options:    opts,
		hostCols:   hostCols,
		hostRows:   hostRows,
		stopInput:  make(chan struct{}),
		stopRender: make(chan struct{}),
	}
	t.term = contra.NewTerm(board)
	if opts.Debug {
		t.term.Debug = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	t.decoder = contra.NewSequenceDecoder(contra.DefaultDecoderConfig(), t.term)
	t.render = render.NewRenderer(os.Stdout)
	t.input = NewInputHandler(t)
	return t, nil
}

func hostSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// Start enters raw mode, switches to the alternate screen, spawns the
// shell, and starts the input/render loops.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("cli: enter raw mode: %w", err)
	}
	t.oldState = oldState

	fmt.Print("\x1b[?25l\x1b[?1049h\x1b[2J\x1b[H")

	session := ptysession.New()
	t.session = session
	t.term.SetOutput(func(p []byte) { session.Write(p) })

	env := append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	ws := ptysession.Winsize{Rows: uint16(t.options.Rows), Cols: uint16(t.options.Cols)}
	if err := session.Start(t.options.Shell, nil, env, ws); err != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
		return fmt.Errorf("cli: start shell: %w", err)
	}

	session.Sink().Subscribe(ptysession.ByteSinkFunc(func(p []byte) {
		t.mu.Lock()
		runes := t.utf8.Decode(make([]rune, 0, len(p)), p)
		t.decoder.ProcessString(runes)
		t.render.Update(t.Board)
		t.mu.Unlock()
	}))

	t.winch = ptysession.NewWinchWatcher(t.handleResize)

	go t.input.InputLoop()
	go t.renderLoop()
	go t.waitExit()

	return nil
}

func (t *Terminal) waitExit() {
	t.session.Wait()
	if t.OnExit != nil {
		t.OnExit(0)
	}
}

func (t *Terminal) sendToPTY(b []byte) {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()
	if session != nil {
		session.Write(b)
	}
}

func (t *Terminal) requestRender() {
	select {
	case <-t.stopRender:
	default:
		t.mu.Lock()
		t.render.Update(t.Board)
		t.mu.Unlock()
	}
}

// renderLoop only blocks until Stop; it does not render. Renders happen
// when PTY output arrives and after a resize, not on a timer.
func (t *Terminal) renderLoop() {
	<-t.stopRender
}

func (t *Terminal) handleResize() {
	cols, rows := hostSize()
	t.mu.Lock()
	if cols == t.hostCols && rows == t.hostRows {
		t.mu.Unlock()
		return
	}
	t.hostCols, t.hostRows = cols, rows
	if t.options.AutoSize {
		t.Board.Resize(cols, rows)
		t.options.Cols, t.options.Rows = cols, rows
		if t.session != nil {
			t.session.SetWinsize(ptysession.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		}
	}
	t.mu.Unlock()
	t.requestRender()
}

// Stop restores the host terminal and terminates the child shell.
func (t *Terminal) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	close(t.stopInput)
	close(t.stopRender)
	if t.winch != nil {
		t.winch.Stop()
	}
	if t.session != nil {
		t.session.Terminate()
	}
	fmt.Print("\x1b[?1049l\x1b[?25h")
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
}
