package store

import "time"

// IsExpired decides whether a queried result set must be refreshed from the
// origin. An empty set is always expired. A non-empty set only expires when
// the caller passes an explicit override interval and the newest retrieval
// date falls outside it: staleness here is detected by absence, not by age.
func IsExpired[PT Entity](items []PT, override *time.Duration) bool {
	if len(items) == 0 {
		return true
	}
	if override == nil {
		return false
	}

	var newest time.Time
	for _, item := range items {
		if at := item.RetrievedAt(); at.After(newest) {
			newest = at
		}
	}
	return time.Since(newest) > *override
}
