package billing

import "math"

// RoundUpToQuarterHour rounds an hours value up to the next 15-minute
// increment. Hourly billing is never fractioned below a quarter hour and
// partial increments always round in the biller's favor: the value is
// converted to whole minutes with a ceiling, then pushed up to the next
// multiple of 15. Rounding an already-rounded value is a no-op.
func RoundUpToQuarterHour(hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	minutes := int(math.Ceil(hours * 60))
	if rem := minutes % 15; rem != 0 {
		minutes += 15 - rem
	}
	return float64(minutes) / 60
}
