package view

import (
	"context"
	"sync"

	"github.com/nao1215/countryflags/internal/model"
)

// lifecycle holds a view's load state and wakes waiters on every change.
// Views embed it and guard their own fields with the same mutex. The zero
// value is in StateNotStarted.
type lifecycle struct {
	mu    sync.Mutex
	state model.LoadState

	// changed is closed on the next transition. Created lazily by waiters.
	changed chan struct{}
}

// transition sets the state and wakes waiters. The caller holds l.mu.
func (l *lifecycle) transition(s model.LoadState) {
	l.state = s
	if l.changed != nil {
		close(l.changed)
		l.changed = nil
	}
}

// State returns the current load state.
func (l *lifecycle) State() model.LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Wait blocks until the state is terminal or ctx is done.
func (l *lifecycle) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.state.Terminal() {
			l.mu.Unlock()
			return nil
		}
		if l.changed == nil {
			l.changed = make(chan struct{})
		}
		changed := l.changed
		l.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
