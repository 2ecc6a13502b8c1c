package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Jay-Patell/AuctionBotLeague/internal/auction"
	"github.com/Jay-Patell/AuctionBotLeague/internal/catalog"
	"github.com/Jay-Patell/AuctionBotLeague/internal/ledger"
	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
	"github.com/Jay-Patell/AuctionBotLeague/internal/version"
)

// actorHeader carries the identity resolved by the platform connector.
const actorHeader = "X-Actor-ID"

// Handler is the HTTP presentation adapter: it turns inbound platform
// actions into session/ledger/catalog calls and renders typed failures as
// status codes.
type Handler struct {
	session *auction.Session
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	auth    auction.Authorizer
	ws      http.HandlerFunc
	logger  *slog.Logger
}

// New creates a handler. ws serves the live snapshot stream and may be nil.
func New(
	session *auction.Session,
	l *ledger.Ledger,
	c *catalog.Catalog,
	auth auction.Authorizer,
	ws http.HandlerFunc,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		session: session,
		ledger:  l,
		catalog: c,
		auth:    auth,
		ws:      ws,
		logger:  logger,
	}
}

// SetupRoutes configures all HTTP routes.
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", h.health).Methods("GET")

	router.HandleFunc("/session", h.querySession).Methods("GET")
	router.HandleFunc("/session/start", h.startSession).Methods("POST")
	router.HandleFunc("/session/bid", h.placeBid).Methods("POST")
	router.HandleFunc("/session/skip", h.skip).Methods("POST")
	router.HandleFunc("/session/finalize", h.finalizeSale).Methods("POST")

	router.HandleFunc("/teams", h.createTeam).Methods("POST")
	router.HandleFunc("/teams", h.listTeams).Methods("GET")
	router.HandleFunc("/teams/{id}", h.getTeam).Methods("GET")
	router.HandleFunc("/teams/{id}", h.deleteTeam).Methods("DELETE")
	router.HandleFunc("/teams/{id}/roster", h.addToRoster).Methods("POST")
	router.HandleFunc("/teams/{id}/roster/{itemID}", h.removeFromRoster).Methods("DELETE")
	router.HandleFunc("/trade", h.trade).Methods("POST")

	router.HandleFunc("/participants/{id}/purse", h.setPurse).Methods("POST")

	router.HandleFunc("/catalog", h.listCatalog).Methods("GET")
	router.HandleFunc("/catalog", h.clearCatalog).Methods("DELETE")
	router.HandleFunc("/catalog/items", h.addItem).Methods("POST")
	router.HandleFunc("/catalog/items/{id}", h.removeItem).Methods("DELETE")
	router.HandleFunc("/catalog/requeue", h.requeueUnsold).Methods("POST")

	if h.ws != nil {
		router.HandleFunc("/ws", h.ws).Methods("GET")
	}

	router.Use(h.loggingMiddleware)

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": version.String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// actor extracts the caller's identity header.
func actor(r *http.Request) string {
	return r.Header.Get(actorHeader)
}

// loggingMiddleware logs each request with its outcome status.
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// errorBody is the JSON failure payload: a message plus a stable kind the
// platform connector can key its rendering on.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps a typed failure to a status code and kind.
func respondError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	respondJSON(w, status, errorBody{Error: err.Error(), Kind: kind})
}

func classify(err error) (status int, kind string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, model.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient_funds"
	case errors.Is(err, model.ErrCapacityExceeded):
		return http.StatusConflict, "capacity_exceeded"
	case errors.Is(err, model.ErrNotEmpty):
		return http.StatusConflict, "not_empty"
	case errors.Is(err, model.ErrNoActiveItem):
		return http.StatusConflict, "no_active_item"
	case errors.Is(err, model.ErrNoBidder):
		return http.StatusConflict, "no_bidder"
	case errors.Is(err, model.ErrNoTeamForBidder):
		return http.StatusUnprocessableEntity, "no_team_for_bidder"
	case errors.Is(err, model.ErrSessionClosed):
		return http.StatusGone, "session_closed"
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, model.ErrStaleBid):
		return http.StatusConflict, "stale_bid"
	default:
		return http.StatusBadRequest, "invalid_request"
	}
}
