package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

type createTeamRequest struct {
	Name     string `json:"name"`
	OwnerID  string `json:"owner_id"`
	Capacity int    `json:"capacity"`
	Purse    int64  `json:"purse"`
}

type rosterRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

type tradeRequest struct {
	FromTeamID uuid.UUID `json:"from_team_id"`
	ToTeamID   uuid.UUID `json:"to_team_id"`
	ItemID     uuid.UUID `json:"item_id"`
}

type purseRequest struct {
	Amount int64 `json:"amount"`
}

type addItemRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice int64  `json:"base_price"`
}

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = actor(r)
	}

	team, err := h.ledger.CreateTeam(req.Name, ownerID, req.Capacity, req.Purse)
	if err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusCreated, team)
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ledger.Teams())
}

func (h *Handler) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	team, err := h.ledger.Team(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *Handler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthorized(actor(r)) {
		respondError(w, fmt.Errorf("actor %q: %w", actor(r), model.ErrUnauthorized))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.ledger.DeleteTeam(id); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) addToRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req rosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	if err := h.ledger.AddToRoster(teamID, req.ItemID); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *Handler) removeFromRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.ledger.RemoveFromRoster(teamID, itemID); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) trade(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthorized(actor(r)) {
		respondError(w, fmt.Errorf("actor %q: %w", actor(r), model.ErrUnauthorized))
		return
	}

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	if err := h.ledger.Trade(req.FromTeamID, req.ToTeamID, req.ItemID); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]string{"status": "traded"})
}

func (h *Handler) setPurse(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthorized(actor(r)) {
		respondError(w, fmt.Errorf("actor %q: %w", actor(r), model.ErrUnauthorized))
		return
	}

	participantID := mux.Vars(r)["id"]
	if participantID == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "participant id is required", Kind: "invalid_request"})
		return
	}

	var req purseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	if err := h.ledger.SetPurse(participantID, req.Amount); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]any{"participant_id": participantID, "purse": req.Amount})
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"pending": h.catalog.Pending(),
		"unsold":  h.catalog.Unsold(),
	})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "invalid_request"})
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "name is required", Kind: "invalid_request"})
		return
	}
	if req.BasePrice < 0 {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "base_price must be >= 0", Kind: "invalid_request"})
		return
	}

	item := model.Item{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  category,
		BasePrice: req.BasePrice,
	}
	h.catalog.Add(item)
	h.session.Checkpoint()
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.catalog.RemovePending(id); err != nil {
		respondError(w, err)
		return
	}
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) clearCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthorized(actor(r)) {
		respondError(w, fmt.Errorf("actor %q: %w", actor(r), model.ErrUnauthorized))
		return
	}

	n := h.catalog.Clear()
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (h *Handler) requeueUnsold(w http.ResponseWriter, r *http.Request) {
	if !h.auth.IsAuthorized(actor(r)) {
		respondError(w, fmt.Errorf("actor %q: %w", actor(r), model.ErrUnauthorized))
		return
	}

	n := h.catalog.RequeueUnsold()
	h.session.Checkpoint()
	respondJSON(w, http.StatusOK, map[string]int{"requeued": n})
}

// pathID parses a UUID path variable.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, model.ErrNotFound)
	}
	return id, nil
}
