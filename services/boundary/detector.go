// Package boundary turns power-on markers into flight boundaries.
package boundary

import (
	"slices"
	"strings"
	"sync"
	"time"

	"flightlog-converter/models"
)

// DefaultWindow merges markers the three logs wrote for one power cycle.
const DefaultWindow = 30 * time.Second

// Detector collects power-on markers from concurrent file readers.
type Detector struct {
	mu      sync.Mutex
	markers []models.Marker
}

func NewDetector() *Detector {
	return &Detector{}
}

// AddMarker records a power-on marker. Safe for concurrent use.
func (d *Detector) AddMarker(m models.Marker) {
	d.mu.Lock()
	d.markers = append(d.markers, m)
	d.mu.Unlock()
}

// Count returns the number of markers recorded.
func (d *Detector) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.markers)
}

// Boundaries groups the recorded markers with the given window.
func (d *Detector) Boundaries(window time.Duration) []models.FlightBoundary {
	d.mu.Lock()
	markers := slices.Clone(d.markers)
	d.mu.Unlock()
	return Group(markers, window)
}

// Group sorts markers by time and starts a new boundary whenever the gap to
// the previous marker exceeds window. Markers exactly window apart share a
// boundary.
func Group(markers []models.Marker, window time.Duration) []models.FlightBoundary {
	if len(markers) == 0 {
		return nil
	}
	sorted := slices.Clone(markers)
	slices.SortStableFunc(sorted, func(a, b models.Marker) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.Source, b.Source)
	})

	var (
		out     []models.FlightBoundary
		current models.FlightBoundary
		sources = map[string]struct{}{}
	)
	flush := func() {
		current.Sources = make([]string, 0, len(sources))
		for s := range sources {
			current.Sources = append(current.Sources, s)
		}
		slices.Sort(current.Sources)
		out = append(out, current)
		clear(sources)
	}

	for i, m := range sorted {
		if i > 0 && m.Timestamp.Sub(current.End) > window {
			flush()
		}
		if i == 0 || len(sources) == 0 {
			current = models.FlightBoundary{Start: m.Timestamp, End: m.Timestamp}
		}
		current.End = m.Timestamp
		sources[m.Source] = struct{}{}
	}
	flush()
	return out
}
