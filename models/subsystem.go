package models

import (
	"strings"
	"time"
)

// Subsystem identifies one of the three parallel data-logger streams.
type Subsystem int

const (
	SubsystemEngine Subsystem = iota
	SubsystemFlight
	SubsystemSystem
)

var subsystemNames = [...]string{"engine", "flight", "system"}

func (s Subsystem) String() string {
	if int(s) >= 0 && int(s) < len(subsystemNames) {
		return subsystemNames[s]
	}
	return "unknown"
}

// Subsystems lists every stream in a fixed order.
var Subsystems = []Subsystem{SubsystemEngine, SubsystemFlight, SubsystemSystem}

// SubsystemForFile classifies a source file by its name suffix
// (*_ENGINE.CSV, *_FLIGHT.CSV, *_SYSTEM.CSV, any case).
func SubsystemForFile(name string) (Subsystem, bool) {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasSuffix(upper, "_ENGINE.CSV"):
		return SubsystemEngine, true
	case strings.HasSuffix(upper, "_FLIGHT.CSV"):
		return SubsystemFlight, true
	case strings.HasSuffix(upper, "_SYSTEM.CSV"):
		return SubsystemSystem, true
	}
	return 0, false
}

// RowMeta carries the fields every subsystem row has.
type RowMeta struct {
	Timestamp time.Time // Date + Time, UTC
	SysTime   uint32    // seconds since power-up
	Source    string    // file the row came from
	Line      int       // 1-based line number in Source
}

func (m RowMeta) Meta() RowMeta { return m }

// Row is the sum type over EngineRow, FlightRow and SystemRow. Consumers
// switch on the concrete type.
type Row interface {
	Subsystem() Subsystem
	Meta() RowMeta
	isRow()
}

// Compare orders rows canonically by timestamp, then source file, then line.
func (m RowMeta) Compare(o RowMeta) int {
	if c := m.Timestamp.Compare(o.Timestamp); c != 0 {
		return c
	}
	if c := strings.Compare(m.Source, o.Source); c != 0 {
		return c
	}
	return m.Line - o.Line
}

// MarkerKind distinguishes sentinel rows.
type MarkerKind int

const (
	MarkerPowerOn MarkerKind = iota
	MarkerIncrementalExtract
)

func (k MarkerKind) String() string {
	if k == MarkerPowerOn {
		return "power-on"
	}
	return "incremental-extract"
}

// Marker literals as they appear in the marker column.
const (
	PowerOnSentinel            = "POWER ON"
	IncrementalExtractSentinel = "INCREMENTAL EXTRACT"
)

// Marker is a sentinel pseudo-row; only its timestamp is meaningful.
type Marker struct {
	Kind      MarkerKind
	Timestamp time.Time
	Source    string
}
