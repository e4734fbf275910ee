package session

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/glowmart/storefront/core/remote"
	"github.com/glowmart/storefront/pkg/logger"
)

// defaultStaleAfter is how long a fetched profile stays trustworthy before
// the next read goes to the server.
const defaultStaleAfter = 5 * time.Minute

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthAPI is the remote auth surface the store depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, user User, err error)
	FetchUser(ctx context.Context) (User, error)
}

// TokenStore persists the token across restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Store owns the process-wide session and exposes its lifecycle as atomic
// transitions. It outlives any single screen.
type Store struct {
	mu         sync.RWMutex
	sess       Session
	api        AuthAPI
	tokens     TokenStore
	staleAfter time.Duration
	flight     singleflight.Group
	log        *slog.Logger
	now        func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStaleAfter overrides the staleness window. Primarily for tests.
func WithStaleAfter(d time.Duration) StoreOption {
	return func(s *Store) { s.staleAfter = d }
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the time source. Primarily for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a session store. The session starts empty; call Restore
// to adopt a previously persisted token.
func NewStore(api AuthAPI, tokens TokenStore, opts ...StoreOption) *Store {
	s := &Store{
		api:        api,
		tokens:     tokens,
		staleAfter: defaultStaleAfter,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("session"))
	return s
}

// Restore adopts a persisted token, if any. The profile is left unset so
// the first read fetches it fresh. Returns whether a token was found.
func (s *Store) Restore() (bool, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return false, fmt.Errorf("restoring session: %w", err)
	}
	if token == "" {
		return false, nil
	}

	s.mu.Lock()
	s.sess = Session{Token: token}
	s.mu.Unlock()
	return true, nil
}

// Current returns a copy of the session without touching the network.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.clone()
}

// Token returns the current bearer token, empty when anonymous. It is read
// fresh on every remote call so a logout invalidates all subsequent calls
// immediately.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

// Login authenticates with the backend and replaces the session. Client-side
// validation failures (ErrInvalidEmail, ErrMissingPassword) never reach the
// network.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	if !emailRegex.MatchString(email) {
		return s.Current(), ErrInvalidEmail
	}
	if password == "" {
		return s.Current(), ErrMissingPassword
	}

	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.Current(), fmt.Errorf("login: %w", err)
	}

	if err := s.tokens.Save(token); err != nil {
		// The in-memory session still works for this process; only the
		// restart path is degraded.
		s.log.ErrorContext(ctx, "failed to persist token", logger.Error(err))
	}

	s.mu.Lock()
	s.sess = Session{
		Token:        token,
		User:         &user,
		LastSyncedAt: s.now(),
	}
	out := s.sess.clone()
	s.mu.Unlock()
	return out, nil
}

// Logout clears the session and the persisted token. Safe to call with no
// active session.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Error("failed to clear persisted token", logger.Error(err))
	}

	s.mu.Lock()
	s.sess = Session{}
	s.mu.Unlock()
}

// Invalidate drops the session in response to a 401 from any authenticated
// call. Registered as the facade's unauthorized hook.
func (s *Store) Invalidate() {
	s.log.Warn("session invalidated by authentication failure")
	s.Logout()
}

// MarkNeedsRefresh forces the next read to refetch regardless of the
// staleness window. Called after out-of-band mutations of server-side user
// state.
func (s *Store) MarkNeedsRefresh() {
	s.mu.Lock()
	s.sess.NeedsRefresh = true
	s.mu.Unlock()
}

// MarkAvatarUpdated patches the cached avatar for immediate display and
// flags the profile for a full refetch.
func (s *Store) MarkAvatarUpdated(url string) {
	s.mu.Lock()
	if s.sess.User != nil {
		u := *s.sess.User
		u.AvatarURL = url
		s.sess.User = &u
	}
	s.sess.NeedsRefresh = true
	s.mu.Unlock()
}

// RefreshIfStale returns the session, refetching the profile only when it
// is stale, flagged, never synced, or force is set. Concurrent callers
// within the staleness window share at most one in-flight fetch.
//
// A network failure leaves the cached profile intact and the token in
// place; the stale session is returned alongside the error. Only a 401
// clears the session.
func (s *Store) RefreshIfStale(ctx context.Context, force bool) (Session, error) {
	s.mu.RLock()
	sess := s.sess.clone()
	stale := s.isStaleLocked(force)
	s.mu.RUnlock()

	if !sess.IsAuthenticated() {
		return sess, ErrNoSession
	}
	if !stale {
		return sess, nil
	}

	_, err, _ := s.flight.Do("refresh", func() (any, error) {
		// Re-check under the flight: a caller that raced with a refresh
		// completing a moment ago must not trigger a second fetch.
		s.mu.RLock()
		stale := s.isStaleLocked(force)
		s.mu.RUnlock()
		if !stale {
			return nil, nil
		}
		return nil, s.refresh(ctx)
	})
	if err != nil {
		return s.Current(), err
	}
	return s.Current(), nil
}

// isStaleLocked must be called with at least a read lock held.
func (s *Store) isStaleLocked(force bool) bool {
	return force ||
		s.sess.NeedsRefresh ||
		s.sess.LastSyncedAt.IsZero() ||
		s.now().Sub(s.sess.LastSyncedAt) > s.staleAfter
}

func (s *Store) refresh(ctx context.Context) error {
	user, err := s.api.FetchUser(ctx)
	if err != nil {
		if remote.IsAuthentication(err) {
			s.Invalidate()
			return fmt.Errorf("refreshing profile: %w", err)
		}
		// Transient failure: keep the stale-but-available profile and the
		// token. The caller may retry manually.
		s.log.WarnContext(ctx, "profile refresh failed, serving cached session",
			logger.Error(err))
		return fmt.Errorf("refreshing profile: %w", err)
	}

	s.mu.Lock()
	if s.sess.IsAuthenticated() {
		s.sess.User = &user
		s.sess.LastSyncedAt = s.now()
		s.sess.NeedsRefresh = false
	}
	s.mu.Unlock()
	return nil
}
