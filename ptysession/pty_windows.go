//go:build windows

package ptysession

// WinchWatcher is a no-op on Windows: conpty does not deliver SIGWINCH,
// and no other mechanism detects window-size changes there, so onResize
// is never called.
type WinchWatcher struct{}

// NewWinchWatcher returns a no-op watcher on Windows.
func NewWinchWatcher(onResize func()) *WinchWatcher {
	return &WinchWatcher{}
}

// Stop is a no-op on Windows.
func (w *WinchWatcher) Stop() {}
