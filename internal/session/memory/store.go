package memory

import (
	"context"
	"sync"

	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/session"
)

// Store is an in-memory implementation of the session store
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// New creates a new in-memory session store
func New() *Store {
	return &Store{
		sessions: make(map[string]*session.Session),
	}
}

// Ensure Store implements the interface
var _ session.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(sess), nil
}

func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = copySession(sess)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// copySession deep-copies so callers never share cart maps with the store
func copySession(sess *session.Session) *session.Session {
	cp := *sess
	if sess.User != nil {
		user := *sess.User
		cp.User = &user
	}
	if sess.Cart != nil {
		cp.Cart = make(map[model.ProductID]int, len(sess.Cart))
		for id, qty := range sess.Cart {
			cp.Cart[id] = qty
		}
	}
	return &cp
}
