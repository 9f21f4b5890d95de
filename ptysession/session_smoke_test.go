//go:build smoke

// This test forks a real shell via a real PTY, so it is kept behind the
// "smoke" build tag (go test -tags smoke ./...) rather than running in
// the default unit-test pass.
package ptysession

import (
	"strings"
	"testing"
	"time"
)

func TestSessionEchoRoundTrip(t *testing.T) {
	s := New()
	var got strings.Builder
	done := make(chan struct{})
	s.Sink().Subscribe(ByteSinkFunc(func(p []byte) {
		got.Write(p)
		if strings.Contains(got.String(), "ptysession-smoke") {
			close(done)
		}
	}))

	if err := s.Start("/bin/sh", nil, []string{"PS1="}, Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Terminate()

	if _, err := s.Write([]byte("echo ptysession-smoke\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for echo; got so far: %q", got.String())
	}

	if !s.IsAlive() {
		t.Errorf("expected shell still alive before Terminate")
	}
}

func TestSessionSetWinsize(t *testing.T) {
	s := New()
	if err := s.Start("/bin/sh", nil, nil, Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Terminate()

	if err := s.SetWinsize(Winsize{Rows: 40, Cols: 100}); err != nil {
		t.Errorf("SetWinsize: %v", err)
	}
}
