// AngelaMos | 2026
// gate.go

package client

import (
	"context"
	"sync"

	"github.com/rossoverde/supporters/internal/guard"
)

// Gate applies the route guard rules to the client's session and profile.
type Gate struct {
	sessions *SessionProvider
	profiles *ProfileLoader
	req      guard.Requirement

	mu         sync.Mutex
	last       guard.State
	watchers   []func(guard.State)
	pending    []guard.State
	delivering bool
}

func NewGate(sessions *SessionProvider, profiles *ProfileLoader, req guard.Requirement) *Gate {
	g := &Gate{sessions: sessions, profiles: profiles, req: req}
	g.last = g.State()

	sessions.Subscribe(func(*Session) { g.changed() })
	profiles.Subscribe(g.changed)
	return g
}

func (g *Gate) snapshot() guard.Snapshot {
	return guard.Snapshot{
		UserID:         g.sessions.UserID(),
		ProfileLoading: g.profiles.Loading(),
		Profile:        g.profiles.Profile(),
		ProfileErr:     g.profiles.Err(),
	}
}

// State is the current decision without any I/O. Until the profile has been
// loaded an admin gate reports Checking.
func (g *Gate) State() guard.State {
	return guard.Evaluate(g.snapshot(), g.req)
}

// Resolve loads the profile when the decision depends on it and returns the
// settled state.
func (g *Gate) Resolve(ctx context.Context) guard.State {
	if g.State() == guard.Checking && !g.profiles.Loading() {
		// The error is kept by the loader and folded into the state.
		_, _ = g.profiles.Load(ctx)
	}
	return g.State()
}

// Watch calls fn with every new state.
func (g *Gate) Watch(fn func(guard.State)) {
	g.mu.Lock()
	g.watchers = append(g.watchers, fn)
	g.mu.Unlock()
}

// changed decides under the lock and queues the new state. Whichever caller
// finds no delivery running drains the queue, so watchers see states in the
// order they were decided even when notifications race or a watcher triggers
// another change.
func (g *Gate) changed() {
	g.mu.Lock()
	state := g.State()
	if state == g.last {
		g.mu.Unlock()
		return
	}
	g.last = state
	g.pending = append(g.pending, state)
	if g.delivering {
		g.mu.Unlock()
		return
	}
	g.delivering = true

	for len(g.pending) > 0 {
		next := g.pending[0]
		g.pending = g.pending[1:]
		watchers := append([]func(guard.State){}, g.watchers...)
		g.mu.Unlock()

		for _, fn := range watchers {
			fn(next)
		}

		g.mu.Lock()
	}
	g.delivering = false
	g.mu.Unlock()
}
