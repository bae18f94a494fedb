package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses a day-granular YYYY-MM-DD value in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// Nights returns the number of nights covered by the half-open range
// [checkin, checkout).  Partial days round up, so any range crossing a
// calendar day boundary counts that day as a night.
func Nights(checkin, checkout time.Time) int {
	d := checkout.Sub(checkin)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

// Overlaps reports whether the half-open date ranges [aIn, aOut) and
// [bIn, bOut) intersect.  Back-to-back stays where one checkout equals the
// other checkin do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}
