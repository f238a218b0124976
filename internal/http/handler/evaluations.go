package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/evaluation"
)

type EvaluationHandler struct {
	Svc   *evaluation.Service
	Users *auth.Directory
}

type evaluationDTO struct {
	CleaningID      uint64    `json:"cleaning_id"`
	CleanerID       uint64    `json:"cleaner_id"`
	NoShow          bool      `json:"no_show"`
	Headline        *string   `json:"headline"`
	Comment         *string   `json:"comment"`
	Professionalism *int      `json:"professionalism"`
	Completeness    *int      `json:"completeness"`
	Efficiency      *int      `json:"efficiency"`
	OverallRating   int       `json:"overall_rating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func evalDTO(e *evaluation.Evaluation) evaluationDTO {
	return evaluationDTO{
		CleaningID:      e.CleaningID,
		CleanerID:       e.CleanerID,
		NoShow:          e.NoShow,
		Headline:        e.Headline,
		Comment:         e.Comment,
		Professionalism: e.Professionalism,
		Completeness:    e.Completeness,
		Efficiency:      e.Efficiency,
		OverallRating:   e.OverallRating,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

type createEvaluationReq struct {
	NoShow          bool    `json:"no_show"`
	Headline        *string `json:"headline"`
	Comment         *string `json:"comment"`
	Professionalism *int    `json:"professionalism"`
	Completeness    *int    `json:"completeness"`
	Efficiency      *int    `json:"efficiency"`
	OverallRating   int     `json:"overall_rating"`
}

func (h *EvaluationHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}
	cleaner, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	var req createEvaluationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	ev, err := h.Svc.Create(r.Context(), uid, cleaningID, cleaner.ID, evaluation.CreateInput{
		NoShow:          req.NoShow,
		Headline:        req.Headline,
		Comment:         req.Comment,
		Professionalism: req.Professionalism,
		Completeness:    req.Completeness,
		Efficiency:      req.Efficiency,
		OverallRating:   req.OverallRating,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, evalDTO(ev))
}

func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	cleaningID, ok := idParam(w, r)
	if !ok {
		return
	}
	cleaner, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	ev, err := h.Svc.Get(r.Context(), cleaningID, cleaner.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evalDTO(ev))
}

func (h *EvaluationHandler) ListForCleaner(w http.ResponseWriter, r *http.Request) {
	cleaner, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	rows, err := h.Svc.ListForCleaner(r.Context(), cleaner.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]evaluationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, evalDTO(&rows[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *EvaluationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	cleaner, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}

	stats, err := h.Svc.StatsForCleaner(r.Context(), cleaner.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
