package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giftwish/giftwish/pkg/api"
	"github.com/giftwish/giftwish/pkg/auth"
	"github.com/giftwish/giftwish/pkg/people"
)

// GiftHandler serves the gift sub-collection under /api/people/{id}/gifts.
// All routes run behind the ownership gate.
type GiftHandler struct {
	people *people.Service
}

// NewGiftHandler creates a GiftHandler.
func NewGiftHandler(peopleSvc *people.Service) *GiftHandler {
	return &GiftHandler{people: peopleSvc}
}

// Append handles POST /api/people/{id}/gifts.
func (h *GiftHandler) Append(w http.ResponseWriter, r *http.Request) {
	var params api.GiftParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	gift, err := h.people.AppendGift(r.Context(), auth.PersonFromContext(r.Context()), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusCreated, api.NewDocument(gift))
}

// Patch handles PATCH /api/people/{id}/gifts/{giftID}.
func (h *GiftHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var params api.GiftParams
	if err := decodeJSON(r, &params); err != nil {
		api.WriteError(w, err)
		return
	}

	gift, err := h.people.PatchGift(r.Context(),
		auth.PersonFromContext(r.Context()), chi.URLParam(r, "giftID"), &params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(gift))
}

// Remove handles DELETE /api/people/{id}/gifts/{giftID}. Responds with the
// removed gift.
func (h *GiftHandler) Remove(w http.ResponseWriter, r *http.Request) {
	gift, err := h.people.RemoveGift(r.Context(),
		auth.PersonFromContext(r.Context()), chi.URLParam(r, "giftID"))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteDocument(w, http.StatusOK, api.NewDocument(gift))
}
