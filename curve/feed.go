package curve

// Feed supplies the most recent curve snapshot per country. Implementations
// own snapshot refresh; consumers treat returned snapshots as immutable.
type Feed interface {
	Latest(country string) (Snapshot, bool)
}

// MapFeed is a static map-backed implementation for development/testing.
// When several snapshots are loaded for the same country, the one with the
// latest as-of date wins.
type MapFeed struct {
	snapshots map[string]Snapshot
}

func NewMapFeed(snapshots ...Snapshot) *MapFeed {
	m := &MapFeed{snapshots: make(map[string]Snapshot, len(snapshots))}
	for _, s := range snapshots {
		m.Add(s)
	}
	return m
}

// Add inserts a snapshot, keeping the most recent one per country.
func (m *MapFeed) Add(s Snapshot) {
	existing, ok := m.snapshots[s.Country]
	if ok && existing.AsOf.After(s.AsOf) {
		return
	}
	m.snapshots[s.Country] = s
}

func (m *MapFeed) Latest(country string) (Snapshot, bool) {
	s, ok := m.snapshots[country]
	return s, ok
}
