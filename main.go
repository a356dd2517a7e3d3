package main

import (
	"fmt"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/curve"
	"github.com/yaokonan/umoalib/utils"
	"github.com/yaokonan/umoalib/valuation"
)

func main() {
	zc3m := 6.85
	oat1y := 7.10
	feed := curve.NewMapFeed(curve.Snapshot{
		Country: "CI",
		AsOf:    utils.DateParser("2026-01-20"),
		Points: []curve.Point{
			{MaturityYears: 0.25, ZeroCouponRate: &zc3m},
			{MaturityYears: 1, OATRate: &oat1y},
		},
	})

	svc := valuation.NewService(feed, nil)

	couponRate := 6.5
	oat, err := svc.Calculate(valuation.Instrument{
		ISIN:         "CI0000012345",
		CountryCode:  "CI",
		SecurityType: bond.SecurityOAT,
		CouponRate:   &couponRate,
		MaturityDate: utils.DateParser("2027-03-15"),
		Periodicity:  "A",
	}, valuation.Request{
		Price:          97.5,
		SettlementDate: utils.DateParser("2026-01-26"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("OAT %s: %s %.2f%% (accrued %.4f)\n", oat.ISIN, oat.YieldType, oat.Yield, oat.AccruedInterest)
	if oat.MarketComparison != nil {
		fmt.Printf("  vs market %.2f%% at %.2gY: %s (%s)\n",
			oat.MarketComparison.MarketRate,
			oat.MarketComparison.MatchedBucket,
			oat.MarketComparison.SpreadText,
			oat.MarketComparison.Rating)
	}

	bat, err := svc.Calculate(valuation.Instrument{
		ISIN:         "SN0000067890",
		CountryCode:  "CI",
		SecurityType: bond.SecurityBAT,
		MaturityDate: utils.DateParser("2026-04-26"),
	}, valuation.Request{
		Price:          98.2,
		SettlementDate: utils.DateParser("2026-01-26"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("BAT %s: %s %.4f%% over %d days\n", bat.ISIN, bat.YieldType, bat.Yield, bat.DaysToMaturity)
	if bat.MarketComparison != nil {
		fmt.Printf("  vs market %.2f%% at %.2gY: %s (%s)\n",
			bat.MarketComparison.MarketRate,
			bat.MarketComparison.MatchedBucket,
			bat.MarketComparison.SpreadText,
			bat.MarketComparison.Rating)
	}
}
