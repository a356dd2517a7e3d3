package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/config"
	"github.com/yaokonan/umoalib/curve"
	"github.com/yaokonan/umoalib/logger"
	"github.com/yaokonan/umoalib/valuation"
)

type yieldInput struct {
	TaskID         string   `json:"task_id,omitempty"`
	ISIN           string   `json:"isin"`
	SecurityType   string   `json:"security_type"`
	Price          float64  `json:"price"`
	CouponRate     *float64 `json:"coupon_rate,omitempty"`
	Periodicity    string   `json:"periodicity,omitempty"`
	SettlementDate string   `json:"settlement_date,omitempty"`
	MaturityDate   string   `json:"maturity_date"`
	CountryCode    string   `json:"country_code,omitempty"`
}

type yieldOutput struct {
	TaskID              string            `json:"task_id,omitempty"`
	ISIN                string            `json:"isin,omitempty"`
	SecurityType        string            `json:"security_type,omitempty"`
	Price               float64           `json:"price,omitempty"`
	Yield               float64           `json:"yield,omitempty"`
	YieldType           string            `json:"yield_type,omitempty"`
	AccruedInterest     float64           `json:"accrued_interest"`
	DaysToMaturity      int               `json:"days_to_maturity,omitempty"`
	TimeToMaturityYears float64           `json:"time_to_maturity_years,omitempty"`
	SettlementDate      string            `json:"settlement_date,omitempty"`
	MaturityDate        string            `json:"maturity_date,omitempty"`
	MarketComparison    *curve.Comparison `json:"market_comparison,omitempty"`
	Error               string            `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	configPath := flag.String("config", "", "YAML config path (optional)")
	curvesPath := flag.String("curves", "", "JSON curve snapshots path (optional, enables market comparison)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: bondyield -input <path> [-config <path>] [-curves <path>]")
		fmt.Fprintln(os.Stderr, "Compute BAT discount yields and OAT yields to maturity for UMOA securities.")
		return
	}

	log := logger.GetLogger()

	feed, err := setup(*configPath, *curvesPath, log)
	if err != nil {
		exitError(err.Error())
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: bondyield -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	svc := valuation.NewService(feed, log)

	hadError := false
	outputs := make([]yieldOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(svc, in)
		if err != nil {
			hadError = true
			outputs = append(outputs, yieldOutput{TaskID: in.TaskID, ISIN: in.ISIN, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func setup(configPath, curvesPath string, log *logger.Log) (curve.Feed, error) {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Apply(log)
		if curvesPath == "" {
			curvesPath = cfg.Curves.Path
		}
	}

	if curvesPath == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(curvesPath)
	if err != nil {
		return nil, fmt.Errorf("read curves: %v", err)
	}
	snaps, err := curve.ParseSnapshots(raw)
	if err != nil {
		return nil, fmt.Errorf("parse curves: %v", err)
	}
	return curve.NewMapFeed(snaps...), nil
}

func process(svc *valuation.Service, in yieldInput) (*yieldOutput, error) {
	maturity, err := time.Parse("2006-01-02", in.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity_date: %v", err)
	}

	var settlement time.Time
	if in.SettlementDate != "" {
		settlement, err = time.Parse("2006-01-02", in.SettlementDate)
		if err != nil {
			return nil, fmt.Errorf("invalid settlement_date: %v", err)
		}
	}

	secType := bond.SecurityType(strings.ToUpper(strings.TrimSpace(in.SecurityType)))
	if secType == "" {
		secType = bond.SecurityBAT
		if in.CouponRate != nil {
			secType = bond.SecurityOAT
		}
	}

	res, err := svc.Calculate(valuation.Instrument{
		ISIN:         in.ISIN,
		CountryCode:  in.CountryCode,
		SecurityType: secType,
		CouponRate:   in.CouponRate,
		MaturityDate: maturity,
		Periodicity:  in.Periodicity,
	}, valuation.Request{
		Price:          in.Price,
		SettlementDate: settlement,
	})
	if err != nil {
		return nil, err
	}

	return &yieldOutput{
		TaskID:              in.TaskID,
		ISIN:                res.ISIN,
		SecurityType:        string(res.SecurityType),
		Price:               res.Price,
		Yield:               res.Yield,
		YieldType:           res.YieldType,
		AccruedInterest:     res.AccruedInterest,
		DaysToMaturity:      res.DaysToMaturity,
		TimeToMaturityYears: res.TimeToMaturityYears,
		SettlementDate:      res.SettlementDate.Format("2006-01-02"),
		MaturityDate:        res.MaturityDate.Format("2006-01-02"),
		MarketComparison:    res.MarketComparison,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]yieldInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []yieldInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input yieldInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []yieldInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(yieldOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
