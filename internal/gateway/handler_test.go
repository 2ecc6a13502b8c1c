package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/auction"
	"github.com/Jay-Patell/AuctionBotLeague/internal/authz"
	"github.com/Jay-Patell/AuctionBotLeague/internal/catalog"
	"github.com/Jay-Patell/AuctionBotLeague/internal/ledger"
	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

type fixture struct {
	handler *Handler
	router  http.Handler
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	book := ledger.New(nil)
	pool := catalog.New(nil)
	allowList := authz.New([]string{"admin"})
	session := auction.New(book, pool, auction.WithAuthorizer(allowList))

	h := New(session, book, pool, allowList, nil, nil)
	return &fixture{
		handler: h,
		router:  h.SetupRoutes(),
		ledger:  book,
		catalog: pool,
	}
}

func (f *fixture) do(t *testing.T, method, path, actorID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if actorID != "" {
		req.Header.Set(actorHeader, actorID)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "GET", "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestTeamLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/teams", "", createTeamRequest{
		Name: "Falcons", OwnerID: "owner-1", Capacity: 18, Purse: 20_000_000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var team model.Team
	if err := json.NewDecoder(rec.Body).Decode(&team); err != nil {
		t.Fatalf("decode team: %v", err)
	}
	if team.Name != "Falcons" || team.ID == uuid.Nil {
		t.Errorf("created team = %+v", team)
	}

	rec = f.do(t, "POST", "/teams", "", createTeamRequest{
		Name: "Falcons", OwnerID: "owner-2", Capacity: 18, Purse: 1,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
	if body := decodeError(t, rec); body.Kind != "duplicate" {
		t.Errorf("duplicate kind = %q, want %q", body.Kind, "duplicate")
	}

	rec = f.do(t, "GET", "/teams/"+team.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}

	rec = f.do(t, "GET", "/teams/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get missing status = %d, want 404", rec.Code)
	}

	rec = f.do(t, "DELETE", "/teams/"+team.ID.String(), "owner-1", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by non-admin status = %d, want 403", rec.Code)
	}

	rec = f.do(t, "DELETE", "/teams/"+team.ID.String(), "admin", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete by admin status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestSetPurse(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/participants/bidder-1/purse", "someone", purseRequest{Amount: 5_000_000})
	if rec.Code != http.StatusForbidden {
		t.Errorf("set purse by non-admin status = %d, want 403", rec.Code)
	}

	rec = f.do(t, "POST", "/participants/bidder-1/purse", "admin", purseRequest{Amount: 5_000_000})
	if rec.Code != http.StatusOK {
		t.Fatalf("set purse status = %d, want 200: %s", rec.Code, rec.Body)
	}

	if purse, err := f.ledger.GetPurse("bidder-1"); err != nil || purse != 5_000_000 {
		t.Errorf("purse = %d, %v; want 5000000, nil", purse, err)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/catalog/items", "", addItemRequest{
		Name: "J. Smith", Category: "offense", BasePrice: 100_000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var item model.Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	rec = f.do(t, "POST", "/catalog/items", "", addItemRequest{
		Name: "K. Jones", Category: "goalie", BasePrice: 100_000,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad category status = %d, want 400", rec.Code)
	}

	rec = f.do(t, "GET", "/catalog", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listing struct {
		Pending []model.Item `json:"pending"`
		Unsold  []model.Item `json:"unsold"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Pending) != 1 || listing.Pending[0].ID != item.ID {
		t.Errorf("pending = %+v, want the added item", listing.Pending)
	}

	rec = f.do(t, "DELETE", "/catalog/items/"+item.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("remove item status = %d, want 200", rec.Code)
	}
	rec = f.do(t, "DELETE", "/catalog/items/"+item.ID.String(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("remove missing item status = %d, want 404", rec.Code)
	}
}

func TestBiddingFlow(t *testing.T) {
	f := newFixture(t)

	f.do(t, "POST", "/teams", "", createTeamRequest{
		Name: "Falcons", OwnerID: "owner-1", Capacity: 18, Purse: 20_000_000,
	})
	f.do(t, "POST", "/catalog/items", "", addItemRequest{
		Name: "J. Smith", Category: "offense", BasePrice: 100_000,
	})

	// Bidding before the session opens
	rec := f.do(t, "POST", "/session/bid", "owner-1", bidRequest{})
	if rec.Code != http.StatusConflict {
		t.Errorf("bid before start status = %d, want 409", rec.Code)
	}
	if body := decodeError(t, rec); body.Kind != "no_active_item" {
		t.Errorf("kind = %q, want %q", body.Kind, "no_active_item")
	}

	rec = f.do(t, "POST", "/session/start", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, want 200: %s", rec.Code, rec.Body)
	}

	// Identity falls back to the actor header when the body omits it
	rec = f.do(t, "POST", "/session/bid", "owner-1", bidRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("bid status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var snap model.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.CurrentBid != 120_000 || snap.HighestBidderID != "owner-1" {
		t.Errorf("snapshot = %+v, want bid 120000 by owner-1", snap)
	}

	// A stale observed bid is turned away
	stale := int64(100_000)
	f.do(t, "POST", "/participants/rival/purse", "admin", purseRequest{Amount: 10_000_000})
	rec = f.do(t, "POST", "/session/bid", "rival", bidRequest{ObservedBid: &stale})
	if rec.Code != http.StatusConflict {
		t.Errorf("stale bid status = %d, want 409", rec.Code)
	}
	if body := decodeError(t, rec); body.Kind != "stale_bid" {
		t.Errorf("kind = %q, want %q", body.Kind, "stale_bid")
	}

	rec = f.do(t, "POST", "/session/finalize", "rival", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("finalize by non-admin status = %d, want 403", rec.Code)
	}

	rec = f.do(t, "POST", "/session/finalize", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("finalize status = %d, want 200: %s", rec.Code, rec.Body)
	}

	team, err := f.ledger.TeamByOwner("owner-1")
	if err != nil {
		t.Fatalf("TeamByOwner failed: %v", err)
	}
	if team.Purse != 19_880_000 || len(team.Roster) != 1 {
		t.Errorf("team after sale = %+v", team)
	}
}

func TestPrivilegedCatalogOps(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, path string }{
		{"POST", "/trade"},
		{"POST", "/catalog/requeue"},
		{"DELETE", "/catalog"},
	} {
		rec := f.do(t, tc.method, tc.path, "someone", tradeRequest{})
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s by non-admin status = %d, want 403", tc.method, tc.path, rec.Code)
		}
	}

	rec := f.do(t, "POST", "/catalog/requeue", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("requeue by admin status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{model.ErrNotFound, http.StatusNotFound, "not_found"},
		{model.ErrDuplicate, http.StatusConflict, "duplicate"},
		{model.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},
		{model.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
		{model.ErrNotEmpty, http.StatusConflict, "not_empty"},
		{model.ErrNoActiveItem, http.StatusConflict, "no_active_item"},
		{model.ErrNoBidder, http.StatusConflict, "no_bidder"},
		{model.ErrNoTeamForBidder, http.StatusUnprocessableEntity, "no_team_for_bidder"},
		{model.ErrSessionClosed, http.StatusGone, "session_closed"},
		{model.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
		{model.ErrStaleBid, http.StatusConflict, "stale_bid"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind, func(t *testing.T) {
			// Wrapped errors classify the same as bare sentinels
			status, kind := classify(fmt.Errorf("context: %w", tt.err))
			if status != tt.wantStatus || kind != tt.wantKind {
				t.Errorf("classify() = %d, %q; want %d, %q", status, kind, tt.wantStatus, tt.wantKind)
			}
		})
	}
}
