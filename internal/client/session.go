// AngelaMos | 2026
// session.go

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rossoverde/supporters/internal/auth"
)

// SessionKey is where the session is kept in Storage.
const SessionKey = "rossoverde-session"

var (
	ErrPasswordTooShort = auth.ErrPasswordTooShort
	ErrPasswordMismatch = auth.ErrPasswordMismatch
)

type Session struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    time.Time        `json:"expires_at"`
	User         auth.SessionUser `json:"user"`
}

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// SessionProvider owns the current session. It restores the stored session
// on construction and tells subscribers about every change.
type SessionProvider struct {
	mu      sync.RWMutex
	client  *Client
	store   Storage
	session *Session
	subs    map[int]func(*Session)
	nextSub int
}

func NewSessionProvider(c *Client, store Storage) (*SessionProvider, error) {
	p := &SessionProvider{
		client: c,
		store:  store,
		subs:   map[int]func(*Session){},
	}

	raw, ok, err := store.Load(SessionKey)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		var s Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			slog.Warn("discarding unreadable stored session", "error", err)
			_ = store.Remove(SessionKey)
		} else {
			p.session = &s
		}
	}

	c.SetTokenSource(p.AccessToken)
	return p, nil
}

func (p *SessionProvider) Session() *Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return nil
	}
	s := *p.session
	return &s
}

func (p *SessionProvider) UserID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return ""
	}
	return p.session.User.ID
}

func (p *SessionProvider) AccessToken() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return ""
	}
	return p.session.AccessToken
}

// Subscribe registers fn for session changes; fn receives nil on sign-out.
// Subscribers run in registration order, so the profile cache created by
// Open resets before any gate re-evaluates. The returned func removes it.
func (p *SessionProvider) Subscribe(fn func(*Session)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *SessionProvider) SignIn(ctx context.Context, email, password string) error {
	var resp auth.SessionResponse
	err := p.client.Do(ctx, http.MethodPost, "/v1/auth/signin", auth.SignInRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	return p.set(fromResponse(resp))
}

// SignUp checks the password locally first; a password that fails the rules
// never reaches the server.
func (p *SessionProvider) SignUp(ctx context.Context, email, password, confirm, lang string) error {
	if err := auth.CheckPassword(password, confirm); err != nil {
		return err
	}

	var resp auth.SessionResponse
	err := p.client.Do(ctx, http.MethodPost, "/v1/auth/signup", auth.SignUpRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Language:        lang,
	}, &resp)
	if err != nil {
		return err
	}
	return p.set(fromResponse(resp))
}

func (p *SessionProvider) Refresh(ctx context.Context) error {
	current := p.Session()
	if current == nil || current.RefreshToken == "" {
		return fmt.Errorf("refresh: no session")
	}

	var resp auth.SessionResponse
	err := p.client.Do(ctx, http.MethodPost, "/v1/auth/refresh", auth.RefreshRequest{
		RefreshToken: current.RefreshToken,
	}, &resp)
	if err != nil {
		return err
	}
	return p.set(fromResponse(resp))
}

// SignOut forgets the local session even when the server call fails.
func (p *SessionProvider) SignOut(ctx context.Context) error {
	current := p.Session()
	if current == nil {
		return nil
	}

	remoteErr := p.client.Do(ctx, http.MethodPost, "/v1/auth/signout", auth.SignOutRequest{
		RefreshToken: current.RefreshToken,
	}, nil)

	if err := p.set(nil); err != nil {
		return err
	}
	return remoteErr
}

func (p *SessionProvider) set(s *Session) error {
	var storeErr error
	if s == nil {
		storeErr = p.store.Remove(SessionKey)
	} else {
		raw, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		storeErr = p.store.Save(SessionKey, string(raw))
	}

	p.mu.Lock()
	p.session = s
	subs := make([]func(*Session), 0, len(p.subs))
	for _, id := range slices.Sorted(maps.Keys(p.subs)) {
		subs = append(subs, p.subs[id])
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}

	if storeErr != nil {
		return fmt.Errorf("persist session: %w", storeErr)
	}
	return nil
}

func fromResponse(resp auth.SessionResponse) *Session {
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
		User:         resp.User,
	}
}
