// Package age computes display durations from optional timestamps.
package age

import "time"

// AgeData returns how long ago then was, and whether then is set.
// Future timestamps clamp to zero.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	age := now.Sub(then)
	if age < 0 {
		age = 0
	}
	return age, true
}
