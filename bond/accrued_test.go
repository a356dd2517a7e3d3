package bond_test

import (
	"math"
	"testing"

	"github.com/yaokonan/umoalib/bond"
)

func TestAccruedInterest_ZeroOnCouponDate(t *testing.T) {
	t.Parallel()

	res, err := bond.AccruedInterest(date(2026, 3, 15), date(2028, 3, 15), 6.5, 1)
	if err != nil {
		t.Fatalf("AccruedInterest error: %v", err)
	}
	if res.Accrued != 0 {
		t.Fatalf("expected zero accrued on coupon date, got %.6f", res.Accrued)
	}
	if res.DaysSinceCoupon != 0 {
		t.Fatalf("expected zero days since coupon, got %d", res.DaysSinceCoupon)
	}
}

func TestAccruedInterest_MidPeriod(t *testing.T) {
	t.Parallel()

	// Prior anniversary 2025-03-15, next 2026-03-15: 317 of 365 days elapsed.
	res, err := bond.AccruedInterest(date(2026, 1, 26), date(2027, 3, 15), 6.5, 1)
	if err != nil {
		t.Fatalf("AccruedInterest error: %v", err)
	}

	if !res.PrevCoupon.Equal(date(2025, 3, 15)) {
		t.Fatalf("PrevCoupon mismatch: got %s", res.PrevCoupon.Format("2006-01-02"))
	}
	if !res.NextCoupon.Equal(date(2026, 3, 15)) {
		t.Fatalf("NextCoupon mismatch: got %s", res.NextCoupon.Format("2006-01-02"))
	}
	if res.DaysSinceCoupon != 317 || res.DaysInPeriod != 365 {
		t.Fatalf("day counts mismatch: got %d/%d want 317/365", res.DaysSinceCoupon, res.DaysInPeriod)
	}

	want := 6.5 * 317.0 / 365.0
	if math.Abs(res.Accrued-want) > 1e-12 {
		t.Fatalf("accrued mismatch: got %.10f want %.10f", res.Accrued, want)
	}
	if res.Accrued <= 0 || res.Accrued >= 6.5 {
		t.Fatalf("accrued %.6f not strictly between 0 and the full coupon", res.Accrued)
	}
}

func TestAccruedInterest_ApproachesFullCoupon(t *testing.T) {
	t.Parallel()

	// One day before the next coupon the accrued is one day short of the
	// full period coupon.
	res, err := bond.AccruedInterest(date(2026, 3, 14), date(2027, 3, 15), 6.5, 1)
	if err != nil {
		t.Fatalf("AccruedInterest error: %v", err)
	}

	want := 6.5 * 364.0 / 365.0
	if math.Abs(res.Accrued-want) > 1e-12 {
		t.Fatalf("accrued mismatch: got %.10f want %.10f", res.Accrued, want)
	}
	if res.Accrued >= 6.5 {
		t.Fatalf("accrued %.6f must stay below the full coupon", res.Accrued)
	}
}

func TestAccruedInterest_SemiannualBoundedByHalfCoupon(t *testing.T) {
	t.Parallel()

	res, err := bond.AccruedInterest(date(2026, 2, 1), date(2028, 5, 31), 5.0, 2)
	if err != nil {
		t.Fatalf("AccruedInterest error: %v", err)
	}

	if res.Accrued < 0 || res.Accrued > 2.5 {
		t.Fatalf("accrued %.6f outside [0, couponRate/frequency]", res.Accrued)
	}
}

func TestAccruedInterest_InvalidFrequency(t *testing.T) {
	t.Parallel()

	if _, err := bond.AccruedInterest(date(2026, 1, 26), date(2027, 3, 15), 6.5, 0); err == nil {
		t.Fatalf("expected error for zero frequency")
	}
}
