// Package ledger owns team and participant records: purses, rosters and team
// lifecycle.
//
// The ledger is the only writer of funds and roster membership. Mutations are
// atomic under one lock with every legality check performed before the first
// write, so callers never observe partial application. Purses never go
// negative and an item appears on at most one roster.
package ledger
