package curve

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type snapshotJSON struct {
	Country string  `json:"country"`
	AsOf    string  `json:"as_of"`
	Points  []Point `json:"points"`
}

// ParseSnapshots decodes curve snapshots from JSON: either a single snapshot
// object or an array of them. As-of dates use the YYYY-MM-DD layout.
func ParseSnapshots(raw []byte) ([]Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty curve input")
	}

	var rows []snapshotJSON
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
	} else {
		var row snapshotJSON
		if err := json.Unmarshal(trimmed, &row); err != nil {
			return nil, err
		}
		rows = []snapshotJSON{row}
	}

	out := make([]Snapshot, 0, len(rows))
	for _, row := range rows {
		if row.Country == "" {
			return nil, fmt.Errorf("curve snapshot is missing country")
		}
		asOf, err := time.Parse("2006-01-02", row.AsOf)
		if err != nil {
			return nil, fmt.Errorf("invalid as_of date %q: %v", row.AsOf, err)
		}
		out = append(out, Snapshot{Country: row.Country, AsOf: asOf, Points: row.Points})
	}
	return out, nil
}
