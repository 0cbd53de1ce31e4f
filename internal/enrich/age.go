package enrich

import "time"

// AgeAt returns the whole-year age at the given instant: the number of
// completed years between birth and at, floored. One day short of a
// birthday still rounds down. A negative result means the instant
// precedes the birth date; callers keep such rows so the data-quality
// problem stays visible.
func AgeAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	// Not yet reached this year's birthday: month/day pair comparison.
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}
