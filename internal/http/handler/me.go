package handler

import (
	"net/http"

	"github.com/nifadyev/phresh/internal/auth"
)

type MeHandler struct {
	Users *auth.Directory
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	u, err := h.Users.ByID(r.Context(), uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}
