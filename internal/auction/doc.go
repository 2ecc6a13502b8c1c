// Package auction implements the live bidding state machine.
//
// One session runs per auction. Phases:
//
//	Idle → AwaitingBids ⇄ (Sold → AwaitingBids | Exhausted)
//
// Bids are pure legality checks against the bidder's purse; funds and item
// ownership move only when a privileged actor finalizes the sale, as one
// all-or-nothing transaction across the ledger and catalog. Every committed
// mutation is persisted synchronously and broadcast to the notifier.
package auction
