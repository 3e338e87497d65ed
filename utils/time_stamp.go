package utils

import (
	"fmt"
	"time"
)

// CoveredSeconds returns every whole-second key k with
// t-interval/2 <= k <= t+interval/2, in ascending order.
func CoveredSeconds(t time.Time, interval time.Duration) []time.Time {
	half := interval / 2
	start := t.UTC().Add(-half)
	end := t.UTC().Add(half)

	first := start.Truncate(time.Second)
	if first.Before(start) {
		first = first.Add(time.Second)
	}
	var keys []time.Time
	for k := first; !k.After(end); k = k.Add(time.Second) {
		keys = append(keys, k)
	}
	return keys
}

// FlightLogName returns the output file name for a flight starting at start:
//
//	log_YYYYMMDD_HHMMSS_<placeholder>.csv
func FlightLogName(start time.Time, placeholder string) string {
	return fmt.Sprintf("log_%s_%s.csv", start.UTC().Format("20060102_150405"), placeholder)
}
