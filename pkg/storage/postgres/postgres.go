// Package postgres provides a PostgreSQL implementation of the storage
// interfaces. It uses pgx/v5 for connection pooling and stores a person's
// shared-with set and gift list as JSONB, so each person mutation is a
// single-row write and keeps the per-document atomicity the storage
// contract requires.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage"
)

// Store is a PostgreSQL-backed user and person store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements the storage contract at compile time.
var _ storage.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// CreateUser inserts a new user. The unique index on email surfaces
// duplicate registrations as ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *api.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*api.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

// GetUserByEmail retrieves a user by its normalized email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	return s.getUser(ctx, "email = $1", email)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*api.User, error) {
	var u api.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name
		FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// UpdateUser overwrites an existing user record.
func (s *Store) UpdateUser(ctx context.Context, u *api.User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5
		WHERE id = $1
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreatePerson inserts a new person document.
func (s *Store) CreatePerson(ctx context.Context, p *api.Person) error {
	sharedJSON, giftsJSON, err := marshalPersonDocs(p)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO people (id, name, birth_date, owner, shared_with, gifts, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Name, p.BirthDate, p.Owner, sharedJSON, giftsJSON, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

// GetPerson retrieves a person document by id.
func (s *Store) GetPerson(ctx context.Context, id string) (*api.Person, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, birth_date, owner, shared_with, gifts, image_url, created_at, updated_at
		FROM people WHERE id = $1
	`, id)

	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying person: %w", err)
	}
	return p, nil
}

// ListPeopleFor returns every person the user owns or is shared on, in
// creation order. The shared_with JSONB containment check uses the GIN
// index created by the schema migration.
func (s *Store) ListPeopleFor(ctx context.Context, userID string) ([]*api.Person, error) {
	memberJSON, err := json.Marshal([]string{userID})
	if err != nil {
		return nil, fmt.Errorf("marshaling member filter: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, birth_date, owner, shared_with, gifts, image_url, created_at, updated_at
		FROM people
		WHERE owner = $1 OR shared_with @> $2
		ORDER BY created_at
	`, userID, memberJSON)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	var out []*api.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return out, nil
}

// UpdatePerson overwrites an existing person document in a single row
// write.
func (s *Store) UpdatePerson(ctx context.Context, p *api.Person) error {
	sharedJSON, giftsJSON, err := marshalPersonDocs(p)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE people
		SET name = $2, birth_date = $3, owner = $4, shared_with = $5,
		    gifts = $6, image_url = $7, updated_at = $8
		WHERE id = $1
	`, p.ID, p.Name, p.BirthDate, p.Owner, sharedJSON, giftsJSON, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePerson removes a person document.
func (s *Store) DeletePerson(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// storedGift is the JSONB shape of a gift inside a person document.
type storedGift struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    int           `json:"price"`
	ImageUrl string        `json:"imageUrl,omitempty"`
	Store    api.GiftStore `json:"store"`
}

func marshalPersonDocs(p *api.Person) (shared, gifts []byte, err error) {
	sw := p.SharedWith
	if sw == nil {
		sw = []string{}
	}
	shared, err = json.Marshal(sw)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling shared_with: %w", err)
	}

	sg := make([]storedGift, 0, len(p.Gifts))
	for _, g := range p.Gifts {
		sg = append(sg, storedGift(g))
	}
	gifts, err = json.Marshal(sg)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling gifts: %w", err)
	}
	return shared, gifts, nil
}

// scanPerson reads one person row, decoding the JSONB document columns.
func scanPerson(row pgx.Row) (*api.Person, error) {
	var (
		p          api.Person
		sharedJSON []byte
		giftsJSON  []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.BirthDate, &p.Owner,
		&sharedJSON, &giftsJSON, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sharedJSON, &p.SharedWith); err != nil {
		return nil, fmt.Errorf("decoding shared_with: %w", err)
	}
	var sg []storedGift
	if err := json.Unmarshal(giftsJSON, &sg); err != nil {
		return nil, fmt.Errorf("decoding gifts: %w", err)
	}
	p.Gifts = make([]api.Gift, 0, len(sg))
	for _, g := range sg {
		p.Gifts = append(p.Gifts, api.Gift(g))
	}
	return &p, nil
}

// isUniqueViolation checks for a PostgreSQL unique violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}
