package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category classifies an auctionable item.
type Category string

const (
	CategoryOffense    Category = "offense"
	CategoryAllrounder Category = "allrounder"
	CategoryDefense    Category = "defense"
)

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryOffense, CategoryAllrounder, CategoryDefense:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Item is an auctionable unit. Immutable once created; it leaves the catalog
// when sold or removed and is never mutated.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	BasePrice int64     `json:"base_price"` // minor units, >= 0
}

// Team accumulates items through winning bids. Purse and roster are mutated
// only through ledger transactions.
type Team struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	OwnerID  string      `json:"owner_id"`
	Capacity int         `json:"capacity"` // > 0
	Purse    int64       `json:"purse"`    // minor units, >= 0
	Roster   []uuid.UUID `json:"roster"`   // item IDs, len <= Capacity
}

// Participant is an identity that can place bids and/or own a team. Its purse
// is independent of any team purse.
type Participant struct {
	ID    string `json:"id"`
	Purse int64  `json:"purse"` // minor units, >= 0
}

// Phase is the lifecycle stage of an auction session.
type Phase string

const (
	// PhaseIdle is the state before the first item is drawn.
	PhaseIdle Phase = "idle"
	// PhaseAwaitingBids is the active bidding window for the current item.
	PhaseAwaitingBids Phase = "awaiting_bids"
	// PhaseSold is the transient state emitted when a sale commits, before
	// the session advances to the next item.
	PhaseSold Phase = "sold"
	// PhaseExhausted is the terminal state once the pending queue is empty.
	PhaseExhausted Phase = "exhausted"
)

// Snapshot is a consistent view of the session for display. Item is nil
// outside an active bidding window; HighestBidderID is empty until the first
// admitted bid.
type Snapshot struct {
	Phase           Phase  `json:"phase"`
	Item            *Item  `json:"item,omitempty"`
	CurrentBid      int64  `json:"current_bid"`
	NextBid         int64  `json:"next_bid,omitempty"` // required amount for the next admitted bid
	HighestBidderID string `json:"highest_bidder_id,omitempty"`
	PendingCount    int    `json:"pending_count"`
	UnsoldCount     int    `json:"unsold_count"`

	// PersistError reports a failed snapshot save for the mutation that
	// produced this view. The in-memory commit stands regardless.
	PersistError string `json:"persist_error,omitempty"`
}

// Event kinds recorded by the archive writer.
const (
	EventSessionStart = "session_start"
	EventBid          = "bid"
	EventSkip         = "skip"
	EventSale         = "sale"
	EventExhausted    = "exhausted"
)

// Event is a single auction occurrence for archival.
type Event struct {
	EventID    uuid.UUID `json:"event_id"`
	Kind       string    `json:"kind"`
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Actor      string    `json:"actor"` // participant or privileged actor ID
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// State is the durable form of the ledger and catalog: the authoritative
// recovery format written after every committed mutation.
type State struct {
	Pending      []Item        `json:"pending"` // ordered, head auctioned first
	Unsold       []Item        `json:"unsold"`
	Teams        []Team        `json:"teams"`
	Participants []Participant `json:"participants"`
}
