package rsvp

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the body returned for an accepted RSVP.
type Response struct {
	ID         string     `json:"rsvp_id"`
	Submission Submission `json:"submission"`
}

// Handler answers accepted RSVP submissions with their normalised form. It is
// meant to run behind httpform.Guard, which has already parsed the body.
type Handler struct {
	Logger *zap.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	submission, err := Decode(r.PostForm)
	if err != nil {
		logger.Info("rsvp decode failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	resp := Response{ID: submission.ID(), Submission: submission.WithDefaults()}
	logger.Info("rsvp accepted", zap.String("rsvp_id", resp.ID))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
