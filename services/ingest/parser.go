package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"flightlog-converter/models"
)

// Timestamp columns present in every source format.
const (
	colDate    = "Date"
	colTime    = "Time"
	colSysTime = "SysTime"
)

// RowParser turns one data row of a known subsystem into a row, a marker, or
// nothing at all (both nil, no error) for rows without a date.
type RowParser interface {
	Subsystem() models.Subsystem
	Parse(cells []string, line int) (models.Row, *models.Marker, error)
}

// NewParser builds the parser for sub from the file's own header row.
func NewParser(sub models.Subsystem, header []string, source string) (RowParser, error) {
	cols := NewColumns(header)
	var (
		p   RowParser
		err error
	)
	switch sub {
	case models.SubsystemEngine:
		p, err = NewEngineParser(cols, source)
	case models.SubsystemFlight:
		p, err = NewFlightParser(cols, source)
	case models.SubsystemSystem:
		p, err = NewSystemParser(cols, source)
	default:
		return nil, fmt.Errorf("no parser for subsystem %v", sub)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// rowPrefix handles the columns every format shares: the timestamp, the
// mandatory SysTime counter and the marker column that follows them.
type rowPrefix struct {
	cols      *Columns
	source    string
	markerCol int
}

func newRowPrefix(cols *Columns, source string) (rowPrefix, error) {
	last := -1
	for _, name := range []string{colDate, colTime, colSysTime} {
		i, ok := cols.Index(name)
		if !ok {
			return rowPrefix{}, &models.HeaderError{Column: name, Reason: models.ErrMissingHeader}
		}
		last = max(last, i)
	}
	return rowPrefix{cols: cols, source: source, markerCol: last + 1}, nil
}

// read parses the shared columns. Exactly one of meta, marker or skip is
// meaningful when err is nil.
func (p rowPrefix) read(cells []string, line int) (meta models.RowMeta, marker *models.Marker, skip bool, err error) {
	date := p.cols.Cell(cells, colDate)
	if absent(date) {
		return meta, nil, true, nil
	}
	ts, err := parseTimestamp(date, p.cols.Cell(cells, colTime))
	if err != nil {
		return meta, nil, false, err
	}

	if p.markerCol < len(cells) {
		switch strings.TrimSpace(cells[p.markerCol]) {
		case models.PowerOnSentinel:
			return meta, &models.Marker{Kind: models.MarkerPowerOn, Timestamp: ts, Source: p.source}, false, nil
		case models.IncrementalExtractSentinel:
			return meta, &models.Marker{Kind: models.MarkerIncrementalExtract, Timestamp: ts, Source: p.source}, false, nil
		}
	}

	raw := p.cols.Cell(cells, colSysTime)
	if absent(raw) {
		return meta, nil, false, &models.MissingFieldError{Field: colSysTime}
	}
	sys, perr := strconv.ParseUint(raw, 10, 32)
	if perr != nil {
		return meta, nil, false, &models.InvalidValueError{Field: colSysTime, Value: raw}
	}

	return models.RowMeta{Timestamp: ts, SysTime: uint32(sys), Source: p.source, Line: line}, nil, false, nil
}
