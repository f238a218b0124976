package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/offer"
)

type OfferHandler struct {
	Svc   *offer.Service
	Users *auth.Directory
}

type offerDTO struct {
	CleaningID uint64    `json:"cleaning_id"`
	UserID     uint64    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *OfferHandler) dto(r *http.Request, o *offer.Offer) offerDTO {
	d := offerDTO{
		CleaningID: o.CleaningID,
		UserID:     o.UserID,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if u, err := h.Users.ByID(r.Context(), o.UserID); err == nil {
		d.Username = u.Username
	}
	return d
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}

	o, err := h.Svc.Create(r.Context(), uid, cleaningID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.dto(r, o))
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.List(r.Context(), uid, cleaningID)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]offerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, h.dto(r, &rows[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OfferHandler) GetFromUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}
	bidder, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	o, err := h.Svc.Get(r.Context(), uid, cleaningID, bidder.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.dto(r, o))
}

// Accept is the owner accepting a bidder's offer; every other pending
// offer on the cleaning gets rejected in the same transaction.
func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}
	bidder, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	o, err := h.Svc.Accept(r.Context(), uid, cleaningID, bidder.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.dto(r, o))
}

func (h *OfferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}

	o, err := h.Svc.Cancel(r.Context(), uid, cleaningID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.dto(r, o))
}

func (h *OfferHandler) Rescind(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Rescind(r.Context(), uid, cleaningID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
