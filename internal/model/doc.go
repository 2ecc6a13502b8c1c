// Package model defines shared data types used across the auction platform.
//
// Conventions:
//   - Money: int64 currency minor units, never negative
//   - IDs: uuid.UUID for items, teams and events; participant IDs are the
//     opaque identity strings handed to us by the presentation layer
//   - Display names are attributes, not keys
package model
