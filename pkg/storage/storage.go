package storage

import (
	"context"

	"github.com/giftwish/giftwish/pkg/api"
)

// UserStore persists registered users. Emails are stored case-normalized
// and their uniqueness is enforced at this layer.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrConflict when the email is
	// already registered.
	CreateUser(ctx context.Context, u *api.User) error

	// GetUser retrieves a user by id. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*api.User, error)

	// GetUserByEmail retrieves a user by its normalized email address.
	// Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)

	// UpdateUser overwrites an existing user record. Returns ErrNotFound if
	// absent and ErrConflict when the new email collides with another user.
	UpdateUser(ctx context.Context, u *api.User) error
}

// PersonStore persists people and their nested gifts as whole documents.
type PersonStore interface {
	// CreatePerson inserts a new person document.
	CreatePerson(ctx context.Context, p *api.Person) error

	// GetPerson retrieves a person by id. Returns ErrNotFound if absent.
	GetPerson(ctx context.Context, id string) (*api.Person, error)

	// ListPeopleFor returns every person the given user owns or is shared
	// on, in creation order.
	ListPeopleFor(ctx context.Context, userID string) ([]*api.Person, error)

	// UpdatePerson overwrites an existing person document in a single
	// write. Returns ErrNotFound if absent.
	UpdatePerson(ctx context.Context, p *api.Person) error

	// DeletePerson removes a person document. Returns ErrNotFound if absent.
	DeletePerson(ctx context.Context, id string) error
}

// Store bundles the two collections a running server needs.
type Store interface {
	UserStore
	PersonStore
}
