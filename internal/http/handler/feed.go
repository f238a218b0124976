package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nifadyev/phresh/internal/feed"
)

type FeedHandler struct {
	Svc *feed.Service
}

type feedItemDTO struct {
	cleaningDTO
	EventType      string    `json:"event_type"`
	EventTimestamp time.Time `json:"event_timestamp"`
}

// Cleanings serves the activity feed. The client pages by passing the
// event_timestamp of the last item it saw as the next starting_date.
func (h *FeedHandler) Cleanings(w http.ResponseWriter, r *http.Request) {
	pageSize := 0
	if v := strings.TrimSpace(r.URL.Query().Get("page_chunk_size")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > feed.MaxPageSize {
			http.Error(w, "page_chunk_size must be 1..50", http.StatusBadRequest)
			return
		}
		pageSize = n
	}

	var startingDate time.Time
	if v := strings.TrimSpace(r.URL.Query().Get("starting_date")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid starting_date (RFC3339)", http.StatusBadRequest)
			return
		}
		startingDate = t
	}

	items, err := h.Svc.Fetch(r.Context(), startingDate, pageSize)
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]feedItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, feedItemDTO{
			cleaningDTO: cleaningDTO{
				ID:           it.Cleaning.ID,
				Name:         it.Cleaning.Name,
				Description:  it.Cleaning.Description,
				Price:        it.Cleaning.Price,
				CleaningType: string(it.Cleaning.Type),
				OwnerID:      it.Cleaning.OwnerID,
				CreatedAt:    it.Cleaning.CreatedAt,
				UpdatedAt:    it.Cleaning.UpdatedAt,
			},
			EventType:      it.EventType,
			EventTimestamp: it.EventTimestamp,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
