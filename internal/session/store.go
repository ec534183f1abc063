// Package session owns the logged-in identity. The Store is the only writer;
// guards and views read it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "loanos-client/internal/common/errors"
	"loanos-client/internal/common/logger"
	"loanos-client/internal/common/storage"
)

const deleteTimeout = 3 * time.Second

// Store holds the current session state backed by a persisted token.
type Store struct {
	tokens storage.TokenStore
	logger logger.Logger
	now    func() time.Time

	mu          sync.RWMutex
	state       State
	token       string
	subscribers map[int]chan State
	nextSubID   int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(tokens storage.TokenStore, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		tokens:      tokens,
		logger:      log.WithFields(map[string]interface{}{"component": "session"}),
		now:         time.Now,
		state:       Unknown(),
		subscribers: make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted token once at startup. Any load, decode or
// expiry problem discards the token and leaves the state Absent.
func (s *Store) Restore(ctx context.Context) State {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("token load failed", map[string]interface{}{"error": err.Error()})
		}
		return s.set(Absent(), "")
	}

	sess, err := Decode(token)
	if err == nil && !sess.Valid(s.now()) {
		s.logger.Info("persisted token expired", map[string]interface{}{"expiresAt": sess.ExpiresAt})
		err = apperrors.NewSessionInvalidError("token expired")
	}
	if err != nil {
		s.logger.Warn("discarding persisted token", map[string]interface{}{"error": err.Error()})
		if delErr := s.tokens.Delete(ctx); delErr != nil {
			s.logger.Warn("token delete failed", map[string]interface{}{"error": delErr.Error()})
		}
		return s.set(Absent(), "")
	}

	s.logger.Info("session restored", map[string]interface{}{"userId": sess.UserID, "isAdmin": sess.IsAdmin})
	return s.set(Present(sess), token)
}

// Login adopts a freshly issued token and returns where the UI should go.
// Tokens that cannot be decoded or are already expired are refused and not
// persisted.
func (s *Store) Login(ctx context.Context, token string) (Session, Destination, error) {
	sess, err := Decode(token)
	if err != nil {
		return Session{}, DestinationNone, err
	}
	if !sess.Valid(s.now()) {
		return Session{}, DestinationNone, apperrors.NewSessionInvalidError("token expired")
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		// The session still works for this run; it just won't survive a restart.
		s.logger.Warn("token persist failed", map[string]interface{}{"error": err.Error()})
	}

	s.set(Present(sess), token)
	s.logger.Info("logged in", map[string]interface{}{"userId": sess.UserID, "isAdmin": sess.IsAdmin})
	return sess, HomeFor(sess), nil
}

// Logout clears the token and the session.
func (s *Store) Logout(ctx context.Context) Destination {
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.Warn("token delete failed", map[string]interface{}{"error": err.Error()})
	}
	s.set(Absent(), "")
	s.logger.Info("logged out", nil)
	return DestinationLanding
}

// Current returns the session state. A Present session whose expiry has
// passed is dropped here and reads back as Absent.
//
// Expiry is only evaluated on read; no timer runs. Subscribers hear about an
// expired session when something next calls Current or Token, so an idle
// console keeps showing the signed-in navbar until the next key press or
// request.
func (s *Store) Current() State {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()

	if sess, ok := st.Session(); ok && !sess.Valid(s.now()) {
		s.expire(sess)
		return Absent()
	}
	return st
}

// Token returns the bearer token of a valid session.
func (s *Store) Token() (string, bool) {
	if !s.Current().IsPresent() {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Subscribe returns a channel carrying the latest state after every change.
// Slow readers only ever see the newest state. Call cancel to unsubscribe.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan State, 1)
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(c)
		}
	}
}

func (s *Store) expire(sess Session) {
	s.mu.Lock()
	cur, ok := s.state.Session()
	if !ok || cur != sess {
		s.mu.Unlock()
		return
	}
	s.state = Absent()
	s.token = ""
	s.notifyLocked()
	s.mu.Unlock()

	s.logger.Info("session expired", map[string]interface{}{"userId": sess.UserID})
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.Warn("token delete failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Store) set(st State, token string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.token = token
	s.notifyLocked()
	return st
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- s.state
	}
}
