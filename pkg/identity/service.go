// Package identity manages registered users: registration, email/password
// authentication, and profile updates. Credential hashing is an explicit
// service step before persistence, never a storage-layer hook.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage"
)

// dummyHash is compared against when a login names an unknown email, so a
// failed lookup costs the same as a failed password check.
const dummyHash = "$2a$10$invalidusernameaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// Service implements user account operations on top of a UserStore.
type Service struct {
	users storage.UserStore
	cost  int
}

// New creates an identity service. cost is the bcrypt work factor; values
// below the bcrypt minimum fall back to the library default.
func New(users storage.UserStore, cost int) *Service {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost}
}

// Register validates and creates a new user. The email is trimmed and
// lowercased before the uniqueness check; the password is hashed before the
// record is persisted. A duplicate email surfaces as a Conflict error.
func (s *Service) Register(ctx context.Context, params *api.UserParams) (*api.User, error) {
	params.Normalize()
	if err := api.ValidateNewUser(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &api.User{
		ID:           api.NewID(),
		Email:        *params.Email,
		PasswordHash: string(hash),
		FirstName:    *params.FirstName,
		LastName:     *params.LastName,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewConflictError(
				fmt.Sprintf("The email address '%s' is already registered.", user.Email))
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks an email/password pair. It always performs exactly
// one bcrypt comparison, against a dummy hash when the email is unknown.
// A bad pair yields the bad-credentials error regardless of which half was
// wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*api.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil || user == nil {
		return nil, api.NewBadCredentialsError()
	}

	return user, nil
}

// Get retrieves a user by id.
func (s *Service) Get(ctx context.Context, id string) (*api.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewNotFoundError(fmt.Sprintf("We could not find a user with id: %s", id))
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// Patch applies a partial update to a user. Omitted fields are left
// unchanged, so an empty-equivalent body is a no-op; a provided password is
// re-hashed before persistence.
func (s *Service) Patch(ctx context.Context, id string, params *api.UserParams) (*api.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Empty() {
		return user, nil
	}

	params.Normalize()
	if err := api.ValidateUserPatch(params); err != nil {
		return nil, err
	}

	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewConflictError(
				fmt.Sprintf("The email address '%s' is already registered.", user.Email))
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	p := api.UserParams{Email: &email}
	p.Normalize()
	return *p.Email
}
