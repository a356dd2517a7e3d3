package valuation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/curve"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rate(v float64) *float64 { return &v }

func testFeed() curve.Feed {
	return curve.NewMapFeed(curve.Snapshot{
		Country: "CI",
		AsOf:    date(2026, 1, 20),
		Points: []curve.Point{
			{MaturityYears: 0.25, ZeroCouponRate: rate(7.0)},
			{MaturityYears: 1, OATRate: rate(7.1)},
		},
	})
}

func TestCalculate_BAT(t *testing.T) {
	t.Parallel()

	svc := NewService(testFeed(), nil)

	got, err := svc.Calculate(Instrument{
		ISIN:         "SN0000067890",
		CountryCode:  "CI",
		SecurityType: bond.SecurityBAT,
		MaturityDate: date(2026, 4, 26),
	}, Request{
		Price:          98.2,
		SettlementDate: date(2026, 1, 26),
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	if got.YieldType != YieldTypeDiscount {
		t.Fatalf("YieldType mismatch: got %q", got.YieldType)
	}
	if math.Abs(got.Yield-7.3320) > 1e-9 {
		t.Fatalf("Yield mismatch: got %.4f want 7.3320", got.Yield)
	}
	if got.AccruedInterest != 0 {
		t.Fatalf("BAT must carry no accrued interest, got %.4f", got.AccruedInterest)
	}
	if got.DaysToMaturity != 90 || math.Abs(got.TimeToMaturityYears-0.25) > 1e-9 {
		t.Fatalf("tenor mismatch: %d days, %.2f years", got.DaysToMaturity, got.TimeToMaturityYears)
	}

	cmp := got.MarketComparison
	if cmp == nil {
		t.Fatalf("expected a market comparison")
	}
	if cmp.MatchedBucket != 0.25 {
		t.Fatalf("MatchedBucket mismatch: got %v want 0.25", cmp.MatchedBucket)
	}
	if math.Abs(cmp.Spread-0.33) > 1e-9 || cmp.Rating != curve.RatingFair {
		t.Fatalf("comparison mismatch: spread %.2f rating %s", cmp.Spread, cmp.Rating)
	}
}

func TestCalculate_OAT(t *testing.T) {
	t.Parallel()

	svc := NewService(testFeed(), nil)

	got, err := svc.Calculate(Instrument{
		ISIN:         "CI0000012345",
		CountryCode:  "CI",
		SecurityType: bond.SecurityOAT,
		CouponRate:   rate(6.5),
		MaturityDate: date(2027, 3, 15),
		Periodicity:  "A",
	}, Request{
		Price:          97.5,
		SettlementDate: date(2026, 1, 26),
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	if got.YieldType != YieldTypeYTM {
		t.Fatalf("YieldType mismatch: got %q", got.YieldType)
	}
	// Yield is quantized to 2 decimals at the service boundary.
	if got.Yield != math.Round(got.Yield*100)/100 {
		t.Fatalf("Yield %.6f not rounded to 2 decimals", got.Yield)
	}
	if got.Yield < 8.0 || got.Yield > 9.5 {
		t.Fatalf("Yield %.2f outside plausible range", got.Yield)
	}
	if math.Abs(got.AccruedInterest-5.6452) > 1e-9 {
		t.Fatalf("AccruedInterest mismatch: got %.4f want 5.6452", got.AccruedInterest)
	}
	if math.Abs(got.TimeToMaturityYears-1.13) > 1e-9 {
		t.Fatalf("TimeToMaturityYears mismatch: got %.2f want 1.13", got.TimeToMaturityYears)
	}

	cmp := got.MarketComparison
	if cmp == nil {
		t.Fatalf("expected a market comparison")
	}
	if cmp.MatchedBucket != 1 {
		t.Fatalf("MatchedBucket mismatch: got %v want 1", cmp.MatchedBucket)
	}
	if cmp.Rating != curve.RatingPremium {
		t.Fatalf("Rating mismatch: got %s want premium", cmp.Rating)
	}
}

func TestCalculate_NoFeedNoComparison(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil)

	got, err := svc.Calculate(Instrument{
		ISIN:         "SN0000067890",
		CountryCode:  "SN",
		SecurityType: bond.SecurityBAT,
		MaturityDate: date(2026, 4, 26),
	}, Request{
		Price:          98.2,
		SettlementDate: date(2026, 1, 26),
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got.MarketComparison != nil {
		t.Fatalf("expected no market comparison without a feed")
	}
}

func TestCalculate_UnknownCountryNoComparison(t *testing.T) {
	t.Parallel()

	svc := NewService(testFeed(), nil)

	got, err := svc.Calculate(Instrument{
		ISIN:         "BF0000011111",
		CountryCode:  "BF",
		SecurityType: bond.SecurityBAT,
		MaturityDate: date(2026, 4, 26),
	}, Request{
		Price:          98.2,
		SettlementDate: date(2026, 1, 26),
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got.MarketComparison != nil {
		t.Fatalf("expected no market comparison for a country without a curve")
	}
}

func TestCalculate_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil)
	oat := Instrument{
		ISIN:         "CI0000012345",
		SecurityType: bond.SecurityOAT,
		CouponRate:   rate(6.5),
		MaturityDate: date(2027, 3, 15),
		Periodicity:  "A",
	}

	if _, err := svc.Calculate(oat, Request{Price: 0, SettlementDate: date(2026, 1, 26)}); err == nil {
		t.Fatalf("expected error for zero price")
	}
	if _, err := svc.Calculate(oat, Request{Price: 250, SettlementDate: date(2026, 1, 26)}); err == nil {
		t.Fatalf("expected error for price above 200")
	}

	missingCoupon := oat
	missingCoupon.CouponRate = nil
	if _, err := svc.Calculate(missingCoupon, Request{Price: 97.5, SettlementDate: date(2026, 1, 26)}); err == nil {
		t.Fatalf("expected error for OAT without coupon rate")
	}

	couponedBill := Instrument{
		ISIN:         "SN0000067890",
		SecurityType: bond.SecurityBAT,
		CouponRate:   rate(5.0),
		MaturityDate: date(2026, 4, 26),
	}
	if _, err := svc.Calculate(couponedBill, Request{Price: 98.2, SettlementDate: date(2026, 1, 26)}); err == nil {
		t.Fatalf("expected error for BAT carrying a coupon rate")
	}

	noMaturity := oat
	noMaturity.MaturityDate = time.Time{}
	if _, err := svc.Calculate(noMaturity, Request{Price: 97.5, SettlementDate: date(2026, 1, 26)}); err == nil {
		t.Fatalf("expected error for missing maturity date")
	}
}

func TestCalculate_Matured(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil)

	instruments := []Instrument{
		{ISIN: "CI0000012345", SecurityType: bond.SecurityOAT, CouponRate: rate(6.5), MaturityDate: date(2026, 1, 26), Periodicity: "A"},
		{ISIN: "SN0000067890", SecurityType: bond.SecurityBAT, MaturityDate: date(2026, 1, 26)},
	}
	for _, instr := range instruments {
		_, err := svc.Calculate(instr, Request{Price: 98.0, SettlementDate: date(2026, 1, 26)})
		if !errors.Is(err, bond.ErrMatured) {
			t.Fatalf("%s: expected ErrMatured, got %v", instr.ISIN, err)
		}
	}
}

func TestFrequencyFromPeriodicity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want int
	}{
		{"A", 1},
		{"", 1},
		{"S", 2},
		{"B", 2},
	}
	for _, tc := range cases {
		if got := frequencyFromPeriodicity(tc.code); got != tc.want {
			t.Errorf("frequencyFromPeriodicity(%q) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestCalculate_SemiannualPeriodicityChangesResult(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil)
	base := Instrument{
		ISIN:         "CI0000012345",
		SecurityType: bond.SecurityOAT,
		CouponRate:   rate(6.0),
		MaturityDate: date(2028, 5, 31),
	}
	req := Request{Price: 98.0, SettlementDate: date(2026, 1, 15)}

	annual := base
	annual.Periodicity = "A"
	resA, err := svc.Calculate(annual, req)
	if err != nil {
		t.Fatalf("annual Calculate error: %v", err)
	}

	semi := base
	semi.Periodicity = "S"
	resS, err := svc.Calculate(semi, req)
	if err != nil {
		t.Fatalf("semiannual Calculate error: %v", err)
	}

	if resA.Yield == resS.Yield && resA.AccruedInterest == resS.AccruedInterest {
		t.Fatalf("periodicity must affect the result: annual %+v vs semiannual %+v", resA, resS)
	}
}
