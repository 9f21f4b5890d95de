//go:build !windows

package ptysession

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// QueryWinsize reads the current size of the tty backing fd via
// TIOCGWINSZ (spec.md §6; SPEC_FULL.md DOMAIN STACK: golang.org/x/sys
// wired here for the SIGWINCH-driven resize path, mirroring
// javanhut-RavenTerminal's winsize plumbing).
func QueryWinsize(fd uintptr) (Winsize, error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Winsize{}, err
	}
	return Winsize{Rows: ws.Row, Cols: ws.Col, X: ws.Xpixel, Y: ws.Ypixel}, nil
}

// WinchWatcher delivers a callback on SIGWINCH, coalescing any signals
// that arrive while a previous callback is still running (spec.md §6
// "SIGWINCH handling (async-signal-safe flag + safe-point dispatch)": the
// signal handler itself only sets a flag; dispatch happens on an
// ordinary goroutine at a safe point, here the receive from the channel
// os/signal already serializes for us).
type WinchWatcher struct {
	ch      chan os.Signal
	done    chan struct{}
	pending int32
}

// NewWinchWatcher installs the SIGWINCH handler and starts dispatching
// onResize (called with no arguments; the callback re-reads the current
// terminal size itself) on a dedicated goroutine.
func NewWinchWatcher(onResize func()) *WinchWatcher {
	w := &WinchWatcher{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(w.ch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-w.ch:
				if atomic.CompareAndSwapInt32(&w.pending, 0, 1) {
					onResize()
					atomic.StoreInt32(&w.pending, 0)
				}
			case <-w.done:
				return
			}
		}
	}()
	return w
}

// Stop removes the signal handler and terminates the dispatch goroutine.
func (w *WinchWatcher) Stop() {
	signal.Stop(w.ch)
	close(w.done)
}
