package transport

import (
	"net/http"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/auth"
	"github.com/giftwish/giftwish/pkg/people"
)

// PeopleHandler serves the /api/people routes. Routes that target an
// existing person run behind the ownership gate, which puts the fetched
// person in the request context.
type PeopleHandler struct {
	people *people.Service
}

// NewPeopleHandler creates a PeopleHandler.
func NewPeopleHandler(peopleSvc *people.Service) *PeopleHandler {
	return &PeopleHandler{people: peopleSvc}
}

// List handles GET /api/people: every person the caller owns or is shared
// on, gifts omitted.
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.people.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	summaries := make([]api.PersonSummary, 0, len(records))
	for _, p := range records {
		summaries = append(summaries, api.PersonSummary{Person: p})
	}
	api.WriteDocument(w, http.StatusOK, api.NewCollection(summaries))
}

// Create handles POST /api/people. The owner is the authenticated caller.
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params api.PersonParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	person, err := h.people.Create(r.Context(), auth.UserIDFromContext(r.Context()), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusCreated, api.NewDocument(person))
}

// Get handles GET /api/people/{id}, with owner and shared users resolved
// to full user records.
func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.people.Detail(r.Context(), auth.PersonFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(detail))
}

// Replace handles PUT /api/people/{id}.
func (h *PeopleHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var params api.PersonParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	person, err := h.people.Replace(r.Context(), auth.PersonFromContext(r.Context()), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(person))
}

// Patch handles PATCH /api/people/{id}.
func (h *PeopleHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var params api.PersonParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	person, err := h.people.Patch(r.Context(), auth.PersonFromContext(r.Context()), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(person))
}

// Delete handles DELETE /api/people/{id}. The route runs behind the
// owner-only gate; shared users cannot delete. Responds with the deleted
// record.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	person, err := h.people.Delete(r.Context(), auth.PersonFromContext(r.Context()))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(person))
}
