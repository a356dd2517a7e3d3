package bond

import (
	"errors"
	"time"

	"github.com/yaokonan/umoalib/utils"
)

var (
	// ErrMatured is returned when the settlement date is on or after the
	// maturity date. It is an expected business condition, not a fault.
	ErrMatured = errors.New("instrument matured")
	// ErrNoCoupons is returned when no coupon dates remain between
	// settlement and maturity.
	ErrNoCoupons = errors.New("no remaining coupon dates")
	// ErrInvalidPrice is returned for non-positive prices.
	ErrInvalidPrice = errors.New("price must be positive")
)

// SecurityType distinguishes the two UMOA sovereign instrument families.
type SecurityType string

const (
	// SecurityOAT is a coupon-bearing bond (Obligation Assimilable du Trésor).
	SecurityOAT SecurityType = "OAT"
	// SecurityBAT is a zero-coupon money-market bill (Bon Assimilable du Trésor).
	SecurityBAT SecurityType = "BAT"
)

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are in price-per-100 terms (percent of nominal).
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// DaysToMaturity returns the actual calendar days from settlement to maturity.
func DaysToMaturity(settlement, maturity time.Time) int {
	return daysBetween(settlement, maturity)
}

// TimeToMaturityYears returns the time to maturity as ACT/365 years,
// rounded to 2 decimal places.
func TimeToMaturityYears(settlement, maturity time.Time) float64 {
	return utils.RoundTo(utils.YearFraction(settlement, maturity, "ACT/365F"), 2)
}

// daysBetween returns the number of calendar days from start to end (ACT).
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
