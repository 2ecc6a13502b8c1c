package gateway

import (
	"encoding/json"
	"net/http"
)

type bidRequest struct {
	ParticipantID string `json:"participant_id"`
	// ObservedBid echoes the current bid the participant saw when acting.
	// Omitted means "no guard": the bid lands on whatever is current.
	ObservedBid *int64 `json:"observed_bid,omitempty"`
}

func (h *Handler) querySession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.session.Query())
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Start()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	var req bidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	participantID := req.ParticipantID
	if participantID == "" {
		participantID = actor(r)
	}
	if participantID == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "participant_id is required", Kind: "invalid_request"})
		return
	}

	observed := int64(-1)
	if req.ObservedBid != nil {
		observed = *req.ObservedBid
	}

	snap, err := h.session.PlaceBid(participantID, observed)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) skip(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Skip(actor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) finalizeSale(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.FinalizeSale(actor(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
