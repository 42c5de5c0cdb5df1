package stats

import "time"

// GenerateBuckets returns the start instants of every unit-sized bucket from start
// (rounded up) through end inclusive.
//
// An unsupported unit is not an error here: rounding is skipped and generation stops at the
// first failed Advance, so the result holds at most the unrounded start.
func GenerateBuckets(unit Unit, start, end time.Time) []time.Time {
	current, err := RoundUp(unit, start)
	if err != nil {
		current = start
	}

	buckets := []time.Time{}
	for !current.After(end) {
		buckets = append(buckets, current)
		next, err := Advance(unit, current)
		if err != nil {
			return buckets
		}
		current = next
	}
	return buckets
}
