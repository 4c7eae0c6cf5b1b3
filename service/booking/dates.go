package bookingsvc

import "time"

// Rentals are whole-day: the time-of-day component of incoming dates is
// noise from the client and must never leak into day counting, so every
// date is truncated to midnight UTC before any arithmetic.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps is the closed-interval conflict test: a booking ending on
// day D and another starting on day D collide, because the item is out
// for the whole of D.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// RentalDays counts billable days between two normalized dates.
func RentalDays(start, end time.Time) int64 {
	return int64(end.Sub(start) / (24 * time.Hour))
}

// Quote prices a validated range. Pure; callers guarantee days > 0.
func Quote(pricePerDay float64, days int64) float64 {
	return float64(days) * pricePerDay
}
