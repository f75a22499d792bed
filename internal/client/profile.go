// AngelaMos | 2026
// profile.go

package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rossoverde/supporters/internal/profile"
)

// ErrSessionChanged is returned when the signed-in user changed while a
// profile request was in flight. The answer belongs to the previous user and
// is dropped.
var ErrSessionChanged = errors.New("session changed during profile request")

// ProfileLoader caches the signed-in member's profile. Update replaces the
// cached copy with the server's answer, so Profile reflects the change
// without another request.
type ProfileLoader struct {
	mu      sync.RWMutex
	client  *Client
	userID  string
	profile *profile.Profile
	loading bool
	err     error
	subs    []func()
}

// NewProfileLoader resets the cache whenever the session's user changes.
func NewProfileLoader(c *Client, sessions *SessionProvider) *ProfileLoader {
	l := &ProfileLoader{client: c, userID: sessions.UserID()}
	sessions.Subscribe(func(s *Session) {
		id := ""
		if s != nil {
			id = s.User.ID
		}
		l.mu.Lock()
		changed := id != l.userID
		if changed {
			l.userID = id
			l.profile = nil
			l.err = nil
			l.loading = false
		}
		l.mu.Unlock()
		if changed {
			l.notify()
		}
	})
	return l
}

func (l *ProfileLoader) Profile() *profile.Profile {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.profile
}

func (l *ProfileLoader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *ProfileLoader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *ProfileLoader) Subscribe(fn func()) {
	l.mu.Lock()
	l.subs = append(l.subs, fn)
	l.mu.Unlock()
}

// Load fetches the profile. A missing profile matches core.ErrNotFound and a
// server or network failure matches core.ErrUnavailable.
func (l *ProfileLoader) Load(ctx context.Context) (*profile.Profile, error) {
	l.mu.Lock()
	owner := l.userID
	l.loading = true
	l.mu.Unlock()
	l.notify()

	var p profile.Profile
	err := l.client.Do(ctx, http.MethodGet, "/v1/profile", nil, &p)

	l.mu.Lock()
	if l.userID != owner {
		l.mu.Unlock()
		return nil, ErrSessionChanged
	}
	l.loading = false
	if err != nil {
		l.profile = nil
		l.err = err
	} else {
		l.profile = &p
		l.err = nil
	}
	l.mu.Unlock()
	l.notify()

	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *ProfileLoader) Update(ctx context.Context, req profile.UpdateRequest) (*profile.Profile, error) {
	owner := l.owner()
	var p profile.Profile
	if err := l.client.Do(ctx, http.MethodPut, "/v1/profile", req, &p); err != nil {
		return nil, err
	}
	if err := l.replace(owner, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *ProfileLoader) AcceptCharter(ctx context.Context, charterID string) (*profile.Profile, error) {
	owner := l.owner()
	var p profile.Profile
	err := l.client.Do(ctx, http.MethodPost, "/v1/profile/charter", profile.AcceptCharterRequest{
		CharterID: charterID,
	}, &p)
	if err != nil {
		return nil, err
	}
	if err := l.replace(owner, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *ProfileLoader) owner() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userID
}

func (l *ProfileLoader) replace(owner string, p *profile.Profile) error {
	l.mu.Lock()
	if l.userID != owner {
		l.mu.Unlock()
		return ErrSessionChanged
	}
	l.profile = p
	l.err = nil
	l.mu.Unlock()
	l.notify()
	return nil
}

func (l *ProfileLoader) notify() {
	l.mu.RLock()
	subs := append([]func(){}, l.subs...)
	l.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
