package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/storage"
)

// PersonFetcher looks up the person a gated route targets.
type PersonFetcher interface {
	GetPerson(ctx context.Context, id string) (*api.Person, error)
}

// fetchPerson resolves the {id} route parameter to a person. A malformed id
// and an absent one produce the same NotFound error, so probing for valid
// ids leaks nothing.
func fetchPerson(r *http.Request, people PersonFetcher) (*api.Person, error) {
	id := chi.URLParam(r, "id")
	if !api.ValidateID(id) {
		return nil, api.NewPersonNotFoundError(id)
	}
	person, err := people.GetPerson(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, api.NewPersonNotFoundError(id)
		}
		return nil, err
	}
	return person, nil
}

// PersonAccess returns middleware authorizing access to the person named by
// the {id} route parameter. The caller must be the person's owner or a
// member of its shared-with set; anyone else gets 403. The fetched person
// is stored in the request context for downstream handlers.
func PersonAccess(people PersonFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			person, err := fetchPerson(r, people)
			if err != nil {
				api.WriteError(w, err)
				return
			}

			userID := UserIDFromContext(r.Context())
			if person.Owner != userID && !slices.Contains(person.SharedWith, userID) {
				api.WriteError(w, api.NewForbiddenError("You do not have permission to perform this action."))
				return
			}

			next.ServeHTTP(w, r.WithContext(SetPerson(r.Context(), person)))
		})
	}
}

// OwnerOnly returns middleware for the narrower deletion check: only the
// exact owner may proceed. Shared users are forbidden.
func OwnerOnly(people PersonFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			person, err := fetchPerson(r, people)
			if err != nil {
				api.WriteError(w, err)
				return
			}

			if person.Owner != UserIDFromContext(r.Context()) {
				api.WriteError(w, api.NewForbiddenError("You do not have permission to delete."))
				return
			}

			next.ServeHTTP(w, r.WithContext(SetPerson(r.Context(), person)))
		})
	}
}
