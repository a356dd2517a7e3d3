package bond

import (
	"time"

	"github.com/yaokonan/umoalib/utils"
)

// Coupon schedules are anchored on the maturity-date anniversary: dates are
// generated by stepping backward from maturity in 12/frequency month periods.
// Day-of-month overflow (e.g. a 31st anniversary landing in a 30-day month)
// rolls back to the last valid day, per utils.AddMonth.

// CouponDates returns all coupon dates strictly after settlement up to and
// including maturity, in chronological order. The slice is empty when the
// instrument has matured (settlement on or after maturity).
func CouponDates(settlement, maturity time.Time, frequency int) []time.Time {
	periodMonths := 12 / frequency

	var dates []time.Time
	for current := maturity; current.After(settlement); current = utils.AddMonth(current, -periodMonths) {
		dates = append(dates, current)
	}

	// Collected maturity-first; callers expect oldest-first.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

// PreviousCouponDate returns the coupon date immediately preceding settlement
// (the last anniversary at or before it). When settlement is on or after
// maturity, maturity itself is returned.
func PreviousCouponDate(settlement, maturity time.Time, frequency int) time.Time {
	periodMonths := 12 / frequency

	current := maturity
	for current.After(settlement) {
		current = utils.AddMonth(current, -periodMonths)
	}
	return current
}
