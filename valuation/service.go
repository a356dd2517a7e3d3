// Package valuation is the caller boundary around the bond engine: it
// validates instrument terms and prices, dispatches to the BAT or OAT path,
// applies fixed-point rounding to money values, and attaches the optional
// market comparison.
package valuation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/curve"
	"github.com/yaokonan/umoalib/logger"
)

const maxPrice = 200.0

// Service computes yields for instrument records and contextualizes them
// against market curves. It is stateless apart from its collaborators and is
// safe for concurrent use.
type Service struct {
	feed curve.Feed
	log  *logger.Log
}

// NewService builds a Service. feed may be nil, in which case results carry
// no market comparison.
func NewService(feed curve.Feed, log *logger.Log) *Service {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Service{feed: feed, log: log}
}

// Calculate validates the request and runs the appropriate yield path:
// zero-coupon instruments get the closed-form BAT discount yield, coupon
// bonds the OAT yield-to-maturity solver. Matured instruments surface
// bond.ErrMatured.
func (s *Service) Calculate(instr Instrument, req Request) (Result, error) {
	if req.Price <= 0 || req.Price > maxPrice {
		return Result{}, fmt.Errorf("Calculate: price must be between 0 and %g, got %g", maxPrice, req.Price)
	}
	if instr.MaturityDate.IsZero() {
		return Result{}, fmt.Errorf("Calculate: maturity date is required")
	}
	if instr.SecurityType == bond.SecurityOAT && instr.CouponRate == nil {
		return Result{}, fmt.Errorf("Calculate: OAT instrument %s is missing its coupon rate", instr.ISIN)
	}
	if instr.SecurityType == bond.SecurityBAT && instr.CouponRate != nil {
		return Result{}, fmt.Errorf("Calculate: BAT instrument %s must not carry a coupon rate", instr.ISIN)
	}

	settlement := req.SettlementDate
	if settlement.IsZero() {
		now := time.Now().UTC()
		settlement = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if instr.CouponRate == nil {
		return s.calculateBAT(instr, req.Price, settlement)
	}
	return s.calculateOAT(instr, req.Price, settlement)
}

func (s *Service) calculateBAT(instr Instrument, price float64, settlement time.Time) (Result, error) {
	res, err := bond.ComputeBATYield(bond.BATYieldInput{
		Price:          price,
		SettlementDate: settlement,
		MaturityDate:   instr.MaturityDate,
	})
	if err != nil {
		return Result{}, err
	}

	out := Result{
		ISIN:                instr.ISIN,
		SecurityType:        bond.SecurityBAT,
		Price:               price,
		Yield:               res.Yield,
		YieldType:           YieldTypeDiscount,
		SettlementDate:      settlement,
		MaturityDate:        instr.MaturityDate,
		DaysToMaturity:      res.DaysToMaturity,
		TimeToMaturityYears: bond.TimeToMaturityYears(settlement, instr.MaturityDate),
	}
	out.MarketComparison = s.marketComparison(instr.CountryCode, out.TimeToMaturityYears, bond.SecurityBAT, out.Yield)
	return out, nil
}

func (s *Service) calculateOAT(instr Instrument, price float64, settlement time.Time) (Result, error) {
	res, err := bond.ComputeOATYield(bond.OATYieldInput{
		CleanPrice:     price,
		CouponRate:     *instr.CouponRate,
		SettlementDate: settlement,
		MaturityDate:   instr.MaturityDate,
		Frequency:      frequencyFromPeriodicity(instr.Periodicity),
	})
	if err != nil {
		return Result{}, err
	}

	if !res.Converged {
		s.log.WithFields(logger.Fields{
			"isin":       instr.ISIN,
			"price":      price,
			"iterations": res.Iterations,
			"yield":      res.YieldToMaturity,
		}).Warn("yield solver did not converge")
	}

	out := Result{
		ISIN:                instr.ISIN,
		SecurityType:        bond.SecurityOAT,
		Price:               price,
		Yield:               roundHalfUp(res.YieldToMaturity, 2),
		YieldType:           YieldTypeYTM,
		CouponRate:          *instr.CouponRate,
		AccruedInterest:     roundHalfUp(res.AccruedInterest, 4),
		SettlementDate:      settlement,
		MaturityDate:        instr.MaturityDate,
		DaysToMaturity:      res.DaysToMaturity,
		TimeToMaturityYears: bond.TimeToMaturityYears(settlement, instr.MaturityDate),
	}
	out.MarketComparison = s.marketComparison(instr.CountryCode, out.TimeToMaturityYears, bond.SecurityOAT, out.Yield)
	return out, nil
}

func (s *Service) marketComparison(country string, maturityYears float64, securityType bond.SecurityType, calculatedYield float64) *curve.Comparison {
	if s.feed == nil {
		return nil
	}
	snap, ok := s.feed.Latest(country)
	if !ok {
		return nil
	}
	cmp, ok := curve.Compare(snap, maturityYears, securityType, calculatedYield)
	if !ok {
		return nil
	}
	return &cmp
}

// frequencyFromPeriodicity maps the record's periodicity code to payments
// per year: "A" is annual, anything else semi-annual.
func frequencyFromPeriodicity(code string) int {
	if code == "A" || code == "" {
		return 1
	}
	return 2
}

// roundHalfUp quantizes a money value to the given decimal places with
// half-up rounding, matching the published UMOA figures.
func roundHalfUp(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}
