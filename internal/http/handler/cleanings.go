package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/cleaning"
)

type CleaningHandler struct {
	Svc   *cleaning.Service
	Users *auth.Directory
}

type cleaningDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CleaningType  string    `json:"cleaning_type"`
	OwnerID       uint64    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	TotalOffers   int64     `json:"total_offers"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (h *CleaningHandler) dto(r *http.Request, c *cleaning.Cleaning) cleaningDTO {
	d := cleaningDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		CleaningType: string(c.Type),
		OwnerID:      c.OwnerID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if owner, err := h.Users.ByID(r.Context(), c.OwnerID); err == nil {
		d.OwnerUsername = owner.Username
	}
	if n, err := h.Svc.CountOffers(r.Context(), c.ID); err == nil {
		d.TotalOffers = n
	}
	return d
}

type createCleaningReq struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CleaningType string  `json:"cleaning_type"`
}

func (h *CleaningHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createCleaningReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	c, err := h.Svc.Create(r.Context(), uid, cleaning.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        cleaning.Type(req.CleaningType),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.dto(r, c))
}

func (h *CleaningHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.dto(r, c))
}

func (h *CleaningHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.ListOwned(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]cleaningDTO, 0, len(rows))
	for i := range rows {
		out = append(out, h.dto(r, &rows[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateCleaningReq struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	CleaningType *string  `json:"cleaning_type"`
}

func (h *CleaningHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req updateCleaningReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	in := cleaning.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.CleaningType != nil {
		t := cleaning.Type(*req.CleaningType)
		in.Type = &t
	}

	c, err := h.Svc.Update(r.Context(), uid, id, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.dto(r, c))
}

func (h *CleaningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
