package model

import "errors"

// Failure kinds shared by the ledger, catalog and session. Every legality
// check surfaces one of these; callers match with errors.Is and render a
// user-visible message. None of them is ever silently applied.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCapacityExceeded  = errors.New("team at capacity")
	ErrNotEmpty          = errors.New("roster not empty")
	ErrNoActiveItem      = errors.New("no item under auction")
	ErrNoBidder          = errors.New("no bids placed")
	ErrNoTeamForBidder   = errors.New("bidder owns no team")
	ErrSessionClosed     = errors.New("session exhausted")
	ErrUnauthorized      = errors.New("not authorized")
	ErrStaleBid          = errors.New("bid state has moved on")
)
