package ptysession

import "sync"

// ByteSink receives bytes forwarded by a Multicast (spec.md §6 "multicast
// ByteSink fan-out").
type ByteSink interface {
	WriteBytes(p []byte)
}

// ByteSinkFunc adapts a plain function to ByteSink.
type ByteSinkFunc func(p []byte)

// WriteBytes implements ByteSink.
func (f ByteSinkFunc) WriteBytes(p []byte) { f(p) }

// Multicast fans out every Write to all currently subscribed sinks. A
// slow or blocking sink delays delivery to the others only for the
// duration of its own WriteBytes call, matching the session's
// single-producer read loop driving it.
type Multicast struct {
	mu    sync.Mutex
	sinks map[int]ByteSink
	next  int
}

// NewMulticast creates an empty fan-out.
func NewMulticast() *Multicast {
	return &Multicast{sinks: make(map[int]ByteSink)}
}

// Subscribe registers sink to receive future writes, returning a token
// to pass to Unsubscribe.
func (m *Multicast) Subscribe(sink ByteSink) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.sinks[id] = sink
	return id
}

// Unsubscribe removes a previously subscribed sink.
func (m *Multicast) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sinks, id)
}

// Write fans p out to every current subscriber.
func (m *Multicast) Write(p []byte) {
	m.mu.Lock()
	sinks := make([]ByteSink, 0, len(m.sinks))
	for _, s := range m.sinks {
		sinks = append(sinks, s)
	}
	m.mu.Unlock()
	for _, s := range sinks {
		s.WriteBytes(p)
	}
}
