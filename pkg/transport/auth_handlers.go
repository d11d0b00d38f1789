package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/auth"
	"github.com/giftwish/giftwish/pkg/auth/token"
	"github.com/giftwish/giftwish/pkg/identity"
)

// decodeJSON parses a request body, rejecting malformed JSON. Unknown
// fields are dropped silently, which doubles as body sanitation: clients
// cannot smuggle fields the resource model does not declare.
func decodeJSON(r *http.Request, dst any) *api.APIError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return api.NewValidationError("The request body is not valid JSON.")
	}
	return nil
}

// AuthHandler serves the /auth routes: registration, login, and the
// caller's own profile.
type AuthHandler struct {
	identity *identity.Service
	tokens   *token.Service
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(identitySvc *identity.Service, tokens *token.Service) *AuthHandler {
	return &AuthHandler{identity: identitySvc, tokens: tokens}
}

// Register handles POST /auth/users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var params api.UserParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	user, err := h.identity.Register(r.Context(), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusCreated, api.NewDocument(user))
}

// loginParams is the POST /auth/tokens request body.
type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/tokens. A bad email/password pair is 401; a
// good one yields a 201 with the access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var params loginParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	user, err := h.identity.Authenticate(r.Context(), params.Email, params.Password)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		api.WriteError(w, fmt.Errorf("issuing token: %w", err))
		return
	}

	api.WriteDocument(w, http.StatusCreated, api.NewDocument(&api.TokenGrant{AccessToken: accessToken}))
}

// Me handles GET /auth/users/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.Get(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(user))
}

// PatchMe handles PATCH /auth/users/me.
func (h *AuthHandler) PatchMe(w http.ResponseWriter, r *http.Request) {
	var params api.UserParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	user, err := h.identity.Patch(r.Context(), auth.UserIDFromContext(r.Context()), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(user))
}
