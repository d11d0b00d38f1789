package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftwish/giftwish/pkg/auth"
	"github.com/giftwish/giftwish/pkg/auth/token"
	"github.com/giftwish/giftwish/pkg/identity"
	"github.com/giftwish/giftwish/pkg/observability"
	"github.com/giftwish/giftwish/pkg/people"
	"github.com/giftwish/giftwish/pkg/storage"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Identity *identity.Service
	People   *people.Service
	Tokens   *token.Service
	Store    storage.Store

	// APIKey upgrades the x-api-key gate to a shared-secret comparison
	// when non-empty; empty keeps the presence-only contract.
	APIKey string

	// MetricsHandler, when non-nil, is mounted at MetricsPath.
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter builds the full route table with its gate composition.
//
// The health and metrics endpoints sit outside every gate. Authenticated
// routes compose the bearer gate, the API-key gate, and (where a route
// targets an existing person) the ownership gate, in the same order the
// API contract documents: person creation takes no API key, deletion runs
// the owner-only variant.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, Logging, Recovery, observability.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, deps.MetricsPath, deps.MetricsHandler)
	}

	authHandler := NewAuthHandler(deps.Identity, deps.Tokens)
	peopleHandler := NewPeopleHandler(deps.People)
	giftHandler := NewGiftHandler(deps.People)

	bearer := auth.Bearer(deps.Tokens)
	apiKey := auth.APIKey(deps.APIKey)
	access := auth.PersonAccess(deps.Store)
	ownerOnly := auth.OwnerOnly(deps.Store)

	r.Route("/auth", func(r chi.Router) {
		r.With(apiKey).Post("/users", authHandler.Register)
		r.With(apiKey).Post("/tokens", authHandler.Login)
		r.With(bearer, apiKey).Get("/users/me", authHandler.Me)
		r.With(bearer, apiKey).Patch("/users/me", authHandler.PatchMe)
	})

	r.Route("/api/people", func(r chi.Router) {
		r.With(bearer, apiKey).Get("/", peopleHandler.List)
		r.With(bearer).Post("/", peopleHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(bearer, apiKey, access).Get("/", peopleHandler.Get)
			r.With(bearer, apiKey, access).Put("/", peopleHandler.Replace)
			r.With(bearer, apiKey, access).Patch("/", peopleHandler.Patch)
			r.With(bearer, apiKey, ownerOnly).Delete("/", peopleHandler.Delete)

			r.Route("/gifts", func(r chi.Router) {
				r.Use(bearer, apiKey, access)
				r.Post("/", giftHandler.Append)
				r.Patch("/{giftID}", giftHandler.Patch)
				r.Delete("/{giftID}", giftHandler.Remove)
			})
		})
	})

	return r
}
