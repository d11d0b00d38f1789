package identity

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage/memory"
)

func strptr(s string) *string { return &s }

func registration(email string) *api.UserParams {
	return &api.UserParams{
		Email:     strptr(email),
		Password:  strptr("hunter22"),
		FirstName: strptr("Ada"),
		LastName:  strptr("Lovelace"),
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	// MinCost keeps the bcrypt work negligible in tests.
	return New(memory.New(), bcrypt.MinCost)
}

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	user, err := svc.Register(ctx, registration("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == "" || !api.ValidateID(user.ID) {
		t.Errorf("user id = %q, want a generated id", user.ID)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	user, err := svc.Register(ctx, registration("  Ada@Example.COM "))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}

	// The normalized form is what collides.
	_, err = svc.Register(ctx, registration("ADA@example.com"))
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeConflict {
		t.Fatalf("second Register = %v, want a conflict", err)
	}
	if apiErr.Description != "The email address 'ada@example.com' is already registered." {
		t.Errorf("description = %q", apiErr.Description)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	p := registration("ada@example.com")
	p.Password = nil
	_, err := svc.Register(ctx, p)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeValidation {
		t.Fatalf("Register without password = %v, want a validation error", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Register(ctx, registration("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("authenticated id = %q, want %q", user.ID, created.ID)
	}

	// Email lookup uses the same normalization as registration.
	if _, err := svc.Authenticate(ctx, " ADA@Example.com ", "hunter22"); err != nil {
		t.Errorf("Authenticate with unnormalized email: %v", err)
	}
}

// Wrong password and unknown email are indistinguishable to the caller.
func TestAuthenticateBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.Register(ctx, registration("ada@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, tt := range []struct{ email, password string }{
		{"ada@example.com", "wrong-password"},
		{"nobody@example.com", "hunter22"},
	} {
		_, err := svc.Authenticate(ctx, tt.email, tt.password)
		var apiErr *api.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Authenticate(%s) = %v, want an APIError", tt.email, err)
		}
		if apiErr.Title != "Incorrect username or password." {
			t.Errorf("Authenticate(%s) title = %q", tt.email, apiErr.Title)
		}
		if apiErr.Type != api.ErrorTypeUnauthenticated {
			t.Errorf("Authenticate(%s) type = %s", tt.email, apiErr.Type)
		}
	}
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Register(ctx, registration("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := svc.Patch(ctx, created.ID, &api.UserParams{FirstName: strptr("Augusta")})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if updated.FirstName != "Augusta" {
		t.Errorf("firstName = %q, want Augusta", updated.FirstName)
	}
	if updated.LastName != "Lovelace" || updated.Email != "ada@example.com" {
		t.Error("patch touched omitted fields")
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Error("patch without a password re-hashed the credential")
	}
}

func TestPatchEmptyIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Register(ctx, registration("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Patch(ctx, created.ID, &api.UserParams{})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if *got != *created {
		t.Errorf("empty patch changed the record: %+v", got)
	}
}

func TestPatchPasswordRehashes(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Register(ctx, registration("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Patch(ctx, created.ID, &api.UserParams{Password: strptr("new-password")}); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "hunter22"); err == nil {
		t.Error("old password still authenticates")
	}
	if _, err := svc.Authenticate(ctx, "ada@example.com", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	id := api.NewID()
	_, err := svc.Get(ctx, id)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != api.ErrorTypeNotFound {
		t.Fatalf("Get = %v, want a not-found error", err)
	}
	if apiErr.Description != "We could not find a user with id: "+id {
		t.Errorf("description = %q", apiErr.Description)
	}
}
