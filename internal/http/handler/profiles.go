package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/profile"
)

type ProfileHandler struct {
	Svc   *profile.Service
	Users *auth.Directory
}

type profileDTO struct {
	UserID      uint64    `json:"user_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Bio         string    `json:"bio"`
	Image       string    `json:"image"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}
	p, err := h.Svc.GetByUserID(r.Context(), u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileDTO{
		UserID:      p.UserID,
		Username:    u.Username,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		Bio:         p.Bio,
		Image:       p.Image,
		UpdatedAt:   p.UpdatedAt,
	})
}

type updateProfileReq struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Bio         *string `json:"bio"`
	Image       *string `json:"image"`
}

func (h *ProfileHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	p, err := h.Svc.UpdateOwn(r.Context(), uid, profile.UpdateInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Image:       req.Image,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	u, err := h.Users.ByID(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileDTO{
		UserID:      p.UserID,
		Username:    u.Username,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		Bio:         p.Bio,
		Image:       p.Image,
		UpdatedAt:   p.UpdatedAt,
	})
}
