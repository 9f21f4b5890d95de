// Package ptysession implements the PTY session lifecycle of spec.md §6:
// opening a pseudo-terminal, forking/spawning a shell, forwarding window
// size, and multicast fan-out of the bytes the shell produces.
package ptysession

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Winsize mirrors pty.Winsize without exposing the dependency in the
// public API.
type Winsize struct {
	Rows, Cols, X, Y uint16
}

// Session is a running PTY-backed shell (spec.md §6 "PTY session"). The
// public surface matches spec.md's start/read/write/set_winsize/
// terminate/is_alive contract.
type Session struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	ptmx   *os.File
	sink   *Multicast
	alive  bool
	waitCh chan struct{}

	// OnExecFailure, if set, is called when the child process could not
	// be started at all (spec.md §6 "exec-failure error-handler callback").
	OnExecFailure func(error)
}

// New creates an unstarted session. Call Start to spawn shell.
func New() *Session {
	return &Session{sink: NewMulticast()}
}

// Sink returns the session's multicast fan-out, so callers can Subscribe
// before Start to avoid racing the first bytes produced by the shell.
func (s *Session) Sink() *Multicast { return s.sink }

// Start forks/spawns shell with the given argv, environment, and initial
// winsize, and begins the background read pump that feeds s.sink
// (spec.md §6 start(shell, winsize, termios) -> bool).
func (s *Session) Start(shell string, args []string, env []string, ws Winsize) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil {
		return errors.New("ptysession: already started")
	}

	cmd := exec.Command(shell, args...)
	cmd.Env = env

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: ws.Rows, Cols: ws.Cols, X: ws.X, Y: ws.Y,
	})
	if err != nil {
		if s.OnExecFailure != nil {
			s.OnExecFailure(err)
		}
		return err
	}

	s.cmd = cmd
	s.ptmx = ptmx
	s.alive = true
	s.waitCh = make(chan struct{})

	go s.waitLoop()
	go s.readLoop()
	return nil
}

func (s *Session) waitLoop() {
	s.cmd.Wait()
	s.mu.Lock()
	s.alive = false
	s.mu.Unlock()
	close(s.waitCh)
}

// readLoop pumps PTY output into the multicast sink until the PTY
// closes, retrying transient read errors (EAGAIN/EWOULDBLOCK/EINTR are
// handled internally by the os.File read path on Unix; what surfaces
// here is EOF on shell exit).
func (s *Session) readLoop() {
	buf := make([]byte, 65536)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.sink.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// Read reads directly from the PTY into p, blocking until data or EOF
// arrives. It competes with the background read pump: bytes returned here
// are not delivered to Sink() subscribers, and bytes the pump reads are
// not returned here.
func (s *Session) Read(p []byte) (int, error) {
	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()
	if ptmx == nil {
		return 0, errors.New("ptysession: not started")
	}
	return ptmx.Read(p)
}

// Write sends bytes to the shell's stdin (spec.md §6 write(bytes)).
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()
	if ptmx == nil {
		return 0, errors.New("ptysession: not started")
	}
	return ptmx.Write(p)
}

// SetWinsize forwards a new size via TIOCSWINSZ (spec.md §6 set_winsize(ws)).
func (s *Session) SetWinsize(ws Winsize) error {
	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()
	if ptmx == nil {
		return errors.New("ptysession: not started")
	}
	return pty.Setsize(ptmx, &pty.Winsize{
		Rows: ws.Rows, Cols: ws.Cols, X: ws.X, Y: ws.Y,
	})
}

// Terminate signals the child process with SIGTERM and closes the PTY
// (spec.md §5 "the child is sent SIGTERM").
func (s *Session) Terminate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Signal(syscall.SIGTERM)
	}
	if s.ptmx != nil {
		return s.ptmx.Close()
	}
	return nil
}

// IsAlive reports whether the child process is still running (spec.md
// §6 is_alive() -> bool).
func (s *Session) IsAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// Wait blocks until the child process exits.
func (s *Session) Wait() {
	s.mu.Lock()
	ch := s.waitCh
	s.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

var _ io.ReadWriter = (*Session)(nil)
