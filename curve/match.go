package curve

import (
	"fmt"
	"time"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/utils"
)

// Rating classifies a calculated yield against the market curve.
type Rating string

const (
	// RatingFair means the yield is within the fair band of the market rate.
	RatingFair Rating = "fair"
	// RatingDiscount means the yield is below the market rate (expensive
	// funding for the buyer, cheap for the issuer).
	RatingDiscount Rating = "discount"
	// RatingPremium means the yield is above the market rate.
	RatingPremium Rating = "premium"
)

// fairSpreadBand is the absolute spread, in percentage points, inside which
// a yield is rated fair.
const fairSpreadBand = 0.5

// Comparison is the result of matching a calculated yield against a curve
// snapshot. It is derived per call and never persisted.
type Comparison struct {
	// MarketRate is the curve rate at the matched bucket, percent.
	MarketRate float64 `json:"market_rate"`
	// Spread is calculated yield minus market rate, rounded to 2 decimals.
	Spread float64 `json:"spread"`
	// SpreadText is a display string such as "0.33% above market".
	SpreadText string `json:"spread_text"`
	Rating     Rating `json:"rating"`
	// MatchedBucket is the standard tenor the maturity snapped to, in years.
	MatchedBucket float64 `json:"matched_maturity"`
	// CurveDate is the snapshot's as-of date.
	CurveDate time.Time `json:"yield_curve_date"`
}

// MatchBucket snaps a time to maturity, in years, onto the nearest standard
// curve bucket using the fixed UMOA thresholds.
func MatchBucket(years float64) float64 {
	switch {
	case years < 0.4:
		return 0.25 // 3 mois
	case years < 0.7:
		return 0.5 // 6 mois
	case years < 0.9:
		return 0.75 // 9 mois
	case years < 1.5:
		return 1
	case years < 2.5:
		return 2
	case years < 3.5:
		return 3
	case years < 4.5:
		return 4
	case years < 5.5:
		return 5
	case years < 6.5:
		return 6
	case years < 7.5:
		return 7
	case years < 8.5:
		return 8
	case years < 9.5:
		return 9
	default:
		return 10
	}
}

// Compare matches the instrument's maturity onto the snapshot and classifies
// the spread of the calculated yield over the market rate. The second return
// value is false when the snapshot has no usable rate at the matched bucket;
// that is a normal no-data outcome, not an error.
func Compare(snap Snapshot, maturityYears float64, securityType bond.SecurityType, calculatedYield float64) (Comparison, bool) {
	bucket := MatchBucket(maturityYears)

	marketRate, ok := snap.Rate(bucket, securityType)
	if !ok {
		return Comparison{}, false
	}

	spread := utils.RoundTo(calculatedYield-marketRate, 2)

	var rating Rating
	switch {
	case spread >= -fairSpreadBand && spread <= fairSpreadBand:
		rating = RatingFair
	case spread < 0:
		rating = RatingDiscount
	default:
		rating = RatingPremium
	}

	var spreadText string
	switch {
	case spread < 0:
		spreadText = fmt.Sprintf("%.2f%% below market", -spread)
	case spread > 0:
		spreadText = fmt.Sprintf("%.2f%% above market", spread)
	default:
		spreadText = "At market rate"
	}

	return Comparison{
		MarketRate:    utils.RoundTo(marketRate, 2),
		Spread:        spread,
		SpreadText:    spreadText,
		Rating:        rating,
		MatchedBucket: bucket,
		CurveDate:     snap.AsOf,
	}, true
}
