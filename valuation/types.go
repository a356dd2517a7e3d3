package valuation

import (
	"time"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/curve"
)

// YieldType labels which convention produced a result's yield.
const (
	YieldTypeDiscount = "Discount Yield"    // BAT, simple ACT/360
	YieldTypeYTM      = "Yield to Maturity" // OAT, Newton-Raphson on dirty price
)

// Instrument is a security record as supplied by the ingestion collaborator.
// The service does not own or mutate it.
type Instrument struct {
	ISIN         string
	CountryCode  string
	SecurityType bond.SecurityType
	// CouponRate is the annual coupon in percent. Nil for zero-coupon BATs;
	// required for OATs.
	CouponRate *float64
	// IssueDate may be absent; the engine anchors coupon anniversaries on
	// maturity and never reads it.
	IssueDate    *time.Time
	MaturityDate time.Time
	// Periodicity is the coupon periodicity code: "A" for annual, anything
	// else means semi-annual.
	Periodicity string
}

// Request is one calculation call.
type Request struct {
	// Price is the traded price per 100 nominal, in (0, 200].
	Price float64
	// SettlementDate defaults to today when zero.
	SettlementDate time.Time
}

// Result is produced fresh per call; nothing is persisted.
type Result struct {
	ISIN                string
	SecurityType        bond.SecurityType
	Price               float64
	Yield               float64
	YieldType           string
	CouponRate          float64
	AccruedInterest     float64
	SettlementDate      time.Time
	MaturityDate        time.Time
	DaysToMaturity      int
	TimeToMaturityYears float64
	// MarketComparison is nil when no curve data is available for the
	// instrument's country and tenor.
	MarketComparison *curve.Comparison
}
