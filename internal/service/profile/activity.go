package profile

import "time"

// Activity freshness windows.
const (
	activeWindow1 = 5 * time.Minute
	activeDays2   = 1
	activeDays3   = 7
	activeDays4   = 30

	// DefaultActiveState is the neutral value for suppressed cases (admin
	// subjects). Note the bucket order: 1 is the most recent, 0 means stale —
	// the scale is not monotonic with recency.
	DefaultActiveState = 5
)

// LastActiveState buckets "time since last seen" into the first matching
// window: within 5 minutes → 1, a day → 2, a week → 3, 30 days → 4, else 0.
func LastActiveState(lastActive, now time.Time) int {
	switch {
	case lastActive.After(now.Add(-activeWindow1)):
		return 1
	case lastActive.After(now.AddDate(0, 0, -activeDays2)):
		return 2
	case lastActive.After(now.AddDate(0, 0, -activeDays3)):
		return 3
	case lastActive.After(now.AddDate(0, 0, -activeDays4)):
		return 4
	default:
		return 0
	}
}
