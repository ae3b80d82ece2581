package status

import (
	"net/http"

	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/saulo-duarte/quizsolver/internal/history"
)

type Handler struct {
	tracker *Tracker
	history history.Repository
}

// NewHandler serves tracker snapshots. historyRepo may be nil.
func NewHandler(tracker *Tracker, historyRepo history.Repository) *Handler {
	return &Handler{tracker: tracker, history: historyRepo}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.tracker.Snapshot())
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if h.history == nil {
		http.Error(w, "attempt history is not enabled", http.StatusNotFound)
		return
	}

	entries, err := h.history.ListByQuiz(r.Context(), h.tracker.Snapshot().QuizID)
	if err != nil {
		log.WithError(err).Error("Failed to list attempt history")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, entries)
}
