// Package memory provides an in-memory implementation of the storage
// interfaces for testing and lightweight deployments. Data is lost when the
// process restarts. A single mutex serializes writes, which also gives each
// person document the per-document write atomicity the storage contract
// requires.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage"
)

// Store is an in-memory user and person store.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*api.User
	usersByEmail map[string]string // normalized email -> user id
	people       map[string]*api.Person
	personOrder  []string // creation order for stable listings
}

// Ensure Store implements the storage contract at compile time.
var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:        make(map[string]*api.User),
		usersByEmail: make(map[string]string),
		people:       make(map[string]*api.Person),
	}
}

// CreateUser inserts a new user, enforcing email uniqueness.
func (s *Store) CreateUser(_ context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[u.Email]; taken {
		return storage.ErrConflict
	}
	if _, exists := s.users[u.ID]; exists {
		return storage.ErrConflict
	}

	cp := *u
	s.users[u.ID] = &cp
	s.usersByEmail[u.Email] = u.ID
	return nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(_ context.Context, id string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail retrieves a user by its normalized email address.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// UpdateUser overwrites an existing user record.
func (s *Store) UpdateUser(_ context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[u.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if u.Email != old.Email {
		if _, taken := s.usersByEmail[u.Email]; taken {
			return storage.ErrConflict
		}
		delete(s.usersByEmail, old.Email)
		s.usersByEmail[u.Email] = u.ID
	}

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// CreatePerson inserts a new person document.
func (s *Store) CreatePerson(_ context.Context, p *api.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.people[p.ID]; exists {
		return storage.ErrConflict
	}
	s.people[p.ID] = copyPerson(p)
	s.personOrder = append(s.personOrder, p.ID)
	return nil
}

// GetPerson retrieves a person document by id.
func (s *Store) GetPerson(_ context.Context, id string) (*api.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyPerson(p), nil
}

// ListPeopleFor returns every person the user owns or is shared on, in
// creation order.
func (s *Store) ListPeopleFor(_ context.Context, userID string) ([]*api.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*api.Person
	for _, id := range s.personOrder {
		p, ok := s.people[id]
		if !ok {
			continue
		}
		if p.Owner == userID || slices.Contains(p.SharedWith, userID) {
			out = append(out, copyPerson(p))
		}
	}
	return out, nil
}

// UpdatePerson overwrites an existing person document in one write.
func (s *Store) UpdatePerson(_ context.Context, p *api.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[p.ID]; !ok {
		return storage.ErrNotFound
	}
	s.people[p.ID] = copyPerson(p)
	return nil
}

// DeletePerson removes a person document.
func (s *Store) DeletePerson(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.people, id)
	s.personOrder = slices.DeleteFunc(s.personOrder, func(pid string) bool {
		return pid == id
	})
	return nil
}

// copyPerson deep-copies a person so callers never share slices with the
// stored document.
func copyPerson(p *api.Person) *api.Person {
	cp := *p
	cp.SharedWith = slices.Clone(p.SharedWith)
	cp.Gifts = slices.Clone(p.Gifts)
	return &cp
}
