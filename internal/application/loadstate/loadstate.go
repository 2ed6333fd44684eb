package loadstate

import (
	"log/slog"
	"sync"
)

// Page load states. Every page starts Idle, moves to Loading on its first
// fetch, then settles in Ready or Failed; a mutation drives Ready back
// through Loading.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

// Snapshot is an immutable view of a loader's current state.
type Snapshot[T any] struct {
	State      string
	Generation uint64
	Data       T
	Err        error
}

// Loader makes the fetch-then-render cycle of one page explicit. Each load
// carries a generation number; a completion for a superseded generation is
// discarded, so a re-fetch triggered by a mutation can never be overwritten
// by a slow earlier load arriving late.
type Loader[T any] struct {
	mu    sync.Mutex
	state string
	gen   uint64
	data  T
	err   error
}

// NewLoader creates an idle loader.
func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{state: StateIdle}
}

// Begin starts a new load and supersedes any load still in flight.
// POST: state is Loading; the returned generation must be passed to Complete
func (l *Loader[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = StateLoading
	return l.gen
}

// Complete settles the load for the given generation.
// POST: returns false and changes nothing if the generation was superseded;
// otherwise state becomes Ready (err == nil) or Failed, keeping the previous
// data on failure so a mutation error does not blank an already-loaded page
func (l *Loader[T]) Complete(gen uint64, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		slog.Debug("load_result_discarded", "generation", gen, "current", l.gen)
		return false
	}
	if err != nil {
		l.state = StateFailed
		l.err = err
		return true
	}
	l.state = StateReady
	l.data = data
	l.err = nil
	return true
}

// Snapshot returns the current state for rendering.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{State: l.state, Generation: l.gen, Data: l.data, Err: l.err}
}
