package auction

// Tier increments: the minimum bid step grows with the current bid's price
// band and never decreases within a band.
const (
	tierMid  = 100_000
	tierHigh = 150_000
	tierTop  = 200_000

	stepBase = 10_000
	stepMid  = 20_000
	stepHigh = 30_000
	stepTop  = 50_000
)

// Increment returns the minimum step above the given current bid.
func Increment(currentBid int64) int64 {
	switch {
	case currentBid >= tierTop:
		return stepTop
	case currentBid >= tierHigh:
		return stepHigh
	case currentBid >= tierMid:
		return stepMid
	default:
		return stepBase
	}
}

// NextRequiredBid returns the amount the next admitted bid must reach.
func NextRequiredBid(currentBid int64) int64 {
	return currentBid + Increment(currentBid)
}
