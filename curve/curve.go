// Package curve models per-country yield-curve snapshots published for the
// UMOA market and compares calculated yields against them.
//
// Snapshots are read-only inputs: producing and refreshing them is the
// responsibility of an external curve-ingestion collaborator.
package curve

import (
	"time"

	"github.com/yaokonan/umoalib/bond"
)

// StandardBuckets are the tenor points a curve snapshot is quoted on, in
// years.
var StandardBuckets = []float64{0.25, 0.5, 0.75, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// Point is a single quoted tenor on a yield curve. Rates are annual
// percentages; a nil rate means the series is not quoted at this tenor.
type Point struct {
	MaturityYears  float64  `json:"maturity_years"`
	ZeroCouponRate *float64 `json:"zero_coupon_rate"`
	OATRate        *float64 `json:"oat_rate"`
}

// Snapshot is one country's yield curve as of a publication date.
type Snapshot struct {
	Country string    `json:"country"`
	AsOf    time.Time `json:"as_of"`
	Points  []Point   `json:"points"`
}

// bucketTolerance is the maximum distance, in years, between a matched
// bucket and a quoted tenor for them to be considered the same point.
const bucketTolerance = 0.01

// Rate returns the quoted rate at the given bucket for the instrument
// family: the OAT series for coupon bonds, the zero-coupon series for BATs.
// The second return value is false when the bucket is not quoted or the
// series has no rate there.
func (s Snapshot) Rate(bucket float64, securityType bond.SecurityType) (float64, bool) {
	for _, p := range s.Points {
		if diff := p.MaturityYears - bucket; diff < -bucketTolerance || diff > bucketTolerance {
			continue
		}
		rate := p.ZeroCouponRate
		if securityType == bond.SecurityOAT {
			rate = p.OATRate
		}
		if rate == nil {
			return 0, false
		}
		return *rate, true
	}
	return 0, false
}
