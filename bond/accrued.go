package bond

import (
	"fmt"
	"time"

	"github.com/yaokonan/umoalib/utils"
)

// AccruedInterestResult carries the accrued coupon together with the period
// boundaries it was computed from.
type AccruedInterestResult struct {
	// Accrued is the coupon interest earned since the previous coupon date,
	// in percent of nominal. Zero exactly on a coupon date, bounded above by
	// CouponRate / Frequency.
	Accrued float64
	// PrevCoupon and NextCoupon bound the current coupon period.
	PrevCoupon time.Time
	NextCoupon time.Time
	// DaysSinceCoupon and DaysInPeriod are actual calendar day counts
	// (Actual/Actual in-period).
	DaysSinceCoupon int
	DaysInPeriod    int
}

// AccruedInterest computes accrued interest at settlement under the
// Actual/Actual-in-period convention:
//
//	accrued = couponRate × daysSinceCoupon / daysInPeriod
//
// couponRate is the annual coupon in percent; frequency is coupons per year
// (1 = annual, 2 = semi-annual).
func AccruedInterest(settlement, maturity time.Time, couponRate float64, frequency int) (AccruedInterestResult, error) {
	if settlement.IsZero() || maturity.IsZero() {
		return AccruedInterestResult{}, fmt.Errorf("AccruedInterest: settlement and maturity dates are required")
	}
	if frequency <= 0 || 12%frequency != 0 {
		return AccruedInterestResult{}, fmt.Errorf("AccruedInterest: frequency must divide 12, got %d", frequency)
	}

	prev := PreviousCouponDate(settlement, maturity, frequency)
	next := utils.AddMonth(prev, 12/frequency)

	daysSince := daysBetween(prev, settlement)
	daysPeriod := daysBetween(prev, next)

	return AccruedInterestResult{
		Accrued:         couponRate * float64(daysSince) / float64(daysPeriod),
		PrevCoupon:      prev,
		NextCoupon:      next,
		DaysSinceCoupon: daysSince,
		DaysInPeriod:    daysPeriod,
	}, nil
}
