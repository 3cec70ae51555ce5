package model

// LoadState is the lifecycle of a view's fetch.
//
// Design decision: an explicit state replaces the "empty sequence means not
// loaded yet" convention, so an empty catalog and a pending request render
// differently.
type LoadState int

const (
	// StateNotStarted means the view has not been activated yet.
	StateNotStarted LoadState = iota

	// StateLoading means a fetch is in flight and nothing is held.
	StateLoading

	// StateLoaded means the last fetch succeeded and its data is held.
	StateLoaded

	// StateFailed means the last fetch failed and its error is held.
	StateFailed
)

// String returns a lowercase name for the state.
func (s LoadState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition happens without a new
// activation or parameter change.
func (s LoadState) Terminal() bool {
	return s == StateLoaded || s == StateFailed
}
