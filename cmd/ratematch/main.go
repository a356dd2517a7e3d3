package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yaokonan/umoalib/bond"
	"github.com/yaokonan/umoalib/curve"
)

type matchInput struct {
	TaskID          string  `json:"task_id,omitempty"`
	Country         string  `json:"country"`
	SecurityType    string  `json:"security_type"`
	MaturityYears   float64 `json:"maturity_years"`
	CalculatedYield float64 `json:"calculated_yield"`
}

type matchOutput struct {
	TaskID     string            `json:"task_id,omitempty"`
	Country    string            `json:"country,omitempty"`
	Available  bool              `json:"available"`
	Comparison *curve.Comparison `json:"comparison,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	curvesPath := flag.String("curves", "", "JSON curve snapshots path (required)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: ratematch -curves <path> [-input <path>]")
		fmt.Fprintln(os.Stderr, "Match maturities onto curve buckets and classify yield spreads.")
		return
	}

	if strings.TrimSpace(*curvesPath) == "" {
		fmt.Fprintln(os.Stderr, "Usage: ratematch -curves <path> [-input <path>]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*curvesPath)
	if err != nil {
		exitError(fmt.Sprintf("read curves: %v", err))
	}
	snaps, err := curve.ParseSnapshots(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse curves: %v", err))
	}
	feed := curve.NewMapFeed(snaps...)

	rawIn, err := readInput(strings.TrimSpace(*inputPath))
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(rawIn)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]matchOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(feed, in)
		if err != nil {
			hadError = true
			outputs = append(outputs, matchOutput{TaskID: in.TaskID, Country: in.Country, Error: err.Error()})
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

func process(feed curve.Feed, in matchInput) (*matchOutput, error) {
	if in.Country == "" {
		return nil, fmt.Errorf("country is required")
	}
	secType := bond.SecurityType(strings.ToUpper(strings.TrimSpace(in.SecurityType)))
	if secType != bond.SecurityOAT && secType != bond.SecurityBAT {
		return nil, fmt.Errorf("unknown security_type %q (want OAT or BAT)", in.SecurityType)
	}

	out := &matchOutput{TaskID: in.TaskID, Country: in.Country}

	snap, ok := feed.Latest(in.Country)
	if !ok {
		return out, nil
	}
	cmp, ok := curve.Compare(snap, in.MaturityYears, secType, in.CalculatedYield)
	if !ok {
		return out, nil
	}

	out.Available = true
	out.Comparison = &cmp
	return out, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]matchInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []matchInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input matchInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []matchInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(matchOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
