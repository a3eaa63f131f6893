// Package session holds the credentials of the signed in user.
//
// The auth token and the CSRF token are persisted to a session scoped
// Storage so that a new process can resume the session without prompting for
// the password again. Expiry is never tracked here: the backend answers 401
// and the caller clears the Store.
package session

import (
	"fmt"
	"sync"
)

// Storage keys.
const (
	TokenKey = "authToken"
	CSRFKey  = "csrfToken"
)

// Store is the session credential store. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	token    string
	csrf     string
	hydrated bool
}

// New returns an unauthenticated Store persisting to storage.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Hydrate loads the persisted credentials. Only the first call reads the
// storage, later calls are no-ops.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return nil
	}
	s.hydrated = true
	token, ok, err := s.storage.Get(TokenKey)
	if err != nil {
		return fmt.Errorf("cannot hydrate session: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	s.token = token
	if csrf, ok, err := s.storage.Get(CSRFKey); err == nil && ok {
		s.csrf = csrf
	}
	return nil
}

// SetToken sets the auth token. A non-empty token is persisted and makes the
// session authenticated. An empty token clears the storage and the session.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a session set explicitly must not be overwritten by a late Hydrate.
	s.hydrated = true
	if token == "" {
		return s.clear()
	}
	s.token = token
	return s.storage.Set(TokenKey, token)
}

// Token returns the current auth token, empty when not authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// SetCSRFToken replaces the anti-forgery token.
func (s *Store) SetCSRFToken(csrf string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrf = csrf
	if csrf == "" {
		return s.storage.Delete(CSRFKey)
	}
	return s.storage.Set(CSRFKey, csrf)
}

// CSRFToken returns the current anti-forgery token, if any.
func (s *Store) CSRFToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrf
}

// Clear forgets both tokens, in memory and in storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear()
}

func (s *Store) clear() error {
	s.token, s.csrf = "", ""
	errToken := s.storage.Delete(TokenKey)
	errCSRF := s.storage.Delete(CSRFKey)
	if errToken != nil {
		return errToken
	}
	return errCSRF
}
