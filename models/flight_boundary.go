package models

import "time"

// FlightBoundary is one power-cycle-delimited segment of the timeline.
// Start and End are the first and last power-on markers grouped into it.
type FlightBoundary struct {
	Start   time.Time
	End     time.Time
	Sources []string // files that contributed a marker, sorted
}

// Bucket holds every row whose coverage includes one whole UTC second.
type Bucket struct {
	Time   time.Time
	Engine []EngineRow
	Flight []FlightRow
	System []SystemRow
}

// Has reports whether s contributed at least one row.
func (b *Bucket) Has(s Subsystem) bool {
	switch s {
	case SubsystemEngine:
		return len(b.Engine) > 0
	case SubsystemFlight:
		return len(b.Flight) > 0
	case SubsystemSystem:
		return len(b.System) > 0
	}
	return false
}
