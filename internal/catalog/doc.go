// Package catalog manages the auction item pools.
//
// Two pools: the FIFO pending queue items are drawn from, and the unsold pool
// for items skipped without a buyer. An item is pending, currently held,
// unsold, or gone; never two of those at once.
package catalog
