package bond

import (
	"fmt"
	"time"

	"github.com/yaokonan/umoalib/utils"
)

// BATYieldInput holds the parameters for a BAT (zero-coupon bill) yield.
type BATYieldInput struct {
	// Price is the traded price per 100 nominal (e.g. 98.2).
	Price float64
	// SettlementDate is the value date of the trade.
	SettlementDate time.Time
	// MaturityDate is the redemption date.
	MaturityDate time.Time
	// NominalValue is the redemption amount. Zero means 100.
	NominalValue float64
}

// BATYieldResult is the output of ComputeBATYield.
type BATYieldResult struct {
	// Yield is the simple ACT/360 discount yield in percent, rounded to
	// 4 decimal places.
	Yield float64
	// DaysToMaturity is the actual day count from settlement to maturity.
	DaysToMaturity int
}

// ComputeBATYield computes the money-market yield of a zero-coupon bill
// under the ACT/360 convention:
//
//	yield = ((nominal / price) - 1) × (360 / days) × 100
//
// It returns ErrMatured when settlement is on or after maturity, and
// ErrInvalidPrice for non-positive prices.
func ComputeBATYield(in BATYieldInput) (BATYieldResult, error) {
	if in.SettlementDate.IsZero() || in.MaturityDate.IsZero() {
		return BATYieldResult{}, fmt.Errorf("ComputeBATYield: settlement and maturity dates are required")
	}

	days := daysBetween(in.SettlementDate, in.MaturityDate)
	if days <= 0 {
		return BATYieldResult{}, ErrMatured
	}
	if in.Price <= 0 {
		return BATYieldResult{}, ErrInvalidPrice
	}

	nominal := in.NominalValue
	if nominal == 0 {
		nominal = 100.0
	}

	yf := utils.YearFraction(in.SettlementDate, in.MaturityDate, "ACT/360")
	yield := ((nominal / in.Price) - 1) / yf * 100.0

	return BATYieldResult{
		Yield:          utils.RoundTo(yield, 4),
		DaysToMaturity: days,
	}, nil
}
