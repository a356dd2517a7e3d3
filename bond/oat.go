package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/yaokonan/umoalib/bond/config"
	"github.com/yaokonan/umoalib/utils"
)

// OATYieldInput holds the parameters needed to compute the yield to maturity
// of a coupon-bearing bond from its quoted (clean) price.
type OATYieldInput struct {
	// CleanPrice is the quoted price per 100 nominal, excluding accrued
	// interest (e.g. 97.5).
	CleanPrice float64
	// CouponRate is the annual coupon in percent (e.g. 6.5 for 6.5%).
	CouponRate float64
	// SettlementDate is the value date of the trade.
	SettlementDate time.Time
	// MaturityDate is the final redemption date; coupon anniversaries are
	// derived from it.
	MaturityDate time.Time
	// Frequency is coupons per year (1 = annual, 2 = semi-annual).
	Frequency int
	// NominalValue is the principal redeemed at maturity. Zero means 100.
	NominalValue float64
}

// OATYieldResult is the output of ComputeOATYield.
type OATYieldResult struct {
	// YieldToMaturity is the annualised yield in percent, rounded to
	// 4 decimal places.
	YieldToMaturity float64
	// AccruedInterest is the accrued coupon at settlement in percent of
	// nominal, rounded to 4 decimal places.
	AccruedInterest float64
	// DirtyPrice is CleanPrice + accrued interest, the price the solver
	// discounts the cash flows against.
	DirtyPrice float64
	// Cashflows are the remaining coupon and principal payments the yield
	// was solved over, oldest first.
	Cashflows []Cashflow
	// DaysToMaturity is the actual day count from settlement to maturity.
	DaysToMaturity int
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
	// Converged reports whether the solver met the price tolerance. When
	// false the yield is the last clamped iterate; callers should treat it
	// as a computational anomaly worth logging.
	Converged bool
}

// ComputeOATYield solves for the yield y such that the present value of the
// remaining cash flows (ACT/365 discounting) equals the DIRTY price:
//
//	clean_price + accrued = Σ cf_i × (1+y)^(-t_i)
//
// The solver uses Newton-Raphson with analytic first derivative, seeded from
// the standard closed-form approximation and clamped after every step to the
// bounds in bond/config.
func ComputeOATYield(in OATYieldInput) (OATYieldResult, error) {
	if in.SettlementDate.IsZero() || in.MaturityDate.IsZero() {
		return OATYieldResult{}, fmt.Errorf("ComputeOATYield: settlement and maturity dates are required")
	}
	if in.Frequency <= 0 || 12%in.Frequency != 0 {
		return OATYieldResult{}, fmt.Errorf("ComputeOATYield: Frequency must divide 12, got %d", in.Frequency)
	}

	days := daysBetween(in.SettlementDate, in.MaturityDate)
	if days <= 0 {
		return OATYieldResult{}, ErrMatured
	}
	if in.CleanPrice <= 0 {
		return OATYieldResult{}, ErrInvalidPrice
	}

	nominal := in.NominalValue
	if nominal == 0 {
		nominal = 100.0
	}

	accrued, err := AccruedInterest(in.SettlementDate, in.MaturityDate, in.CouponRate, in.Frequency)
	if err != nil {
		return OATYieldResult{}, err
	}

	dirtyPrice := in.CleanPrice + accrued.Accrued

	couponDates := CouponDates(in.SettlementDate, in.MaturityDate, in.Frequency)
	if len(couponDates) == 0 {
		return OATYieldResult{}, ErrNoCoupons
	}

	couponPayment := in.CouponRate / float64(in.Frequency)
	cfs := make([]Cashflow, 0, len(couponDates))
	for i, d := range couponDates {
		cf := Cashflow{Date: d, Coupon: couponPayment}
		if i == len(couponDates)-1 {
			cf.Principal = nominal
		}
		cfs = append(cfs, cf)
	}

	yield, iterations, converged := solveYield(dirtyPrice, in.CouponRate, float64(days), in.SettlementDate, cfs)

	return OATYieldResult{
		YieldToMaturity: utils.RoundTo(yield*100.0, 4), // decimal → percent
		AccruedInterest: utils.RoundTo(accrued.Accrued, 4),
		DirtyPrice:      dirtyPrice,
		Cashflows:       cfs,
		DaysToMaturity:  days,
		Iterations:      iterations,
		Converged:       converged,
	}, nil
}

// ---------------------------------------------------------------------------
// Newton-Raphson solver (unexported)
// ---------------------------------------------------------------------------

// solveYield finds y such that dirtyPrice(y) == target via Newton-Raphson.
//
// It never fails: on a degenerate derivative or iteration-cap exhaustion it
// returns the last clamped iterate with converged == false.
func solveYield(target, couponRate, days float64, settlement time.Time, cfs []Cashflow) (float64, int, bool) {
	cfg := config.GetConfig()

	// Seed from the closed-form approximation
	//   y₀ = (coupon + (100 − dirty)/years) / ((100 + dirty)/2)
	years := days / 365.0
	y := (couponRate + (100.0-target)/years) / ((100.0 + target) / 2.0) / 100.0

	iterations := 0
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1

		price, dPdy := dirtyPriceAndDeriv(y, settlement, cfs)
		f := price - target

		if math.Abs(f) < cfg.ConvergenceTolerance {
			return y, iterations, true
		}
		if math.Abs(dPdy) < cfg.DerivativeThreshold {
			return y, iterations, false
		}

		y = clamp(y-f/dPdy, cfg.YieldFloor, cfg.YieldCeiling)
	}

	return y, iterations, false
}

// dirtyPriceAndDeriv returns (price, dPrice/dy) using ACT/365 discounting:
//
//	t_k   = days(settlement, cf[k]) / 365
//	price = Σ CF_k · (1+y)^(−t_k)
//	dP/dy = Σ −t_k · CF_k · (1+y)^(−t_k) / (1+y)
func dirtyPriceAndDeriv(y float64, settlement time.Time, cfs []Cashflow) (float64, float64) {
	var price, deriv float64
	for _, cf := range cfs {
		t := utils.YearFraction(settlement, cf.Date, "ACT/365F")
		amt := cf.Amount()
		disc := math.Pow(1.0+y, -t)
		price += amt * disc
		deriv -= amt * t * disc / (1.0 + y)
	}
	return price, deriv
}
