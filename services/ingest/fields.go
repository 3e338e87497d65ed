package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"flightlog-converter/models"
)

// minValidYear guards against the logger's clock fault, which stamps rows
// with years before the product existed.
const minValidYear = 2005

// absent reports whether a cell carries no value.
func absent(raw string) bool {
	return raw == "" || raw == "-"
}

// fieldReader pulls typed optional values out of one data row. The first
// parse failure is kept in err and every later call becomes a no-op, so a
// parser can read all its fields and check the error once.
type fieldReader struct {
	cols  *Columns
	cells []string
	err   error
}

func (r *fieldReader) raw(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	s := r.cols.Cell(r.cells, name)
	return s, !absent(s)
}

func (r *fieldReader) fail(name, raw string) {
	r.err = &models.InvalidValueError{Field: name, Value: raw}
}

func (r *fieldReader) str(name string) *string {
	s, ok := r.raw(name)
	if !ok {
		return nil
	}
	return &s
}

func (r *fieldReader) float(name string) *float64 {
	s, ok := r.raw(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.fail(name, s)
		return nil
	}
	return &v
}

func (r *fieldReader) i32(name string) *int32 {
	s, ok := r.raw(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		r.fail(name, s)
		return nil
	}
	out := int32(v)
	return &out
}

func (r *fieldReader) unsigned(name string, bits int) (uint64, bool) {
	s, ok := r.raw(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		r.fail(name, s)
		return 0, false
	}
	return v, true
}

func (r *fieldReader) u8(name string) *uint8 {
	v, ok := r.unsigned(name, 8)
	if !ok {
		return nil
	}
	out := uint8(v)
	return &out
}

// u16 also covers angles, which the logger stores as 0–65535.
func (r *fieldReader) u16(name string) *uint16 {
	v, ok := r.unsigned(name, 16)
	if !ok {
		return nil
	}
	out := uint16(v)
	return &out
}

func (r *fieldReader) u32(name string) *uint32 {
	v, ok := r.unsigned(name, 32)
	if !ok {
		return nil
	}
	out := uint32(v)
	return &out
}

// hex16 parses a bitfield written as 0x-prefixed hex.
func (r *fieldReader) hex16(name string) *uint16 {
	s, ok := r.raw(name)
	if !ok {
		return nil
	}
	digits, found := strings.CutPrefix(s, "0x")
	if !found {
		digits, found = strings.CutPrefix(s, "0X")
	}
	if !found || digits == "" {
		r.fail(name, s)
		return nil
	}
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		r.fail(name, s)
		return nil
	}
	out := uint16(v)
	return &out
}

func (r *fieldReader) gpsFix(name string) *models.GPSFix {
	s, ok := r.raw(name)
	if !ok {
		return nil
	}
	f, valid := models.ParseGPSFix(strings.ToUpper(s))
	if !valid {
		r.fail(name, s)
		return nil
	}
	return &f
}

// parseTimestamp combines a YYYYMMDD date and an HH:MM:SS time, both UTC.
func parseTimestamp(date, clock string) (time.Time, error) {
	bad := func(reason string) error {
		return &models.InvalidDateError{Date: date, Time: clock, Reason: reason}
	}
	if len(date) != 8 {
		return time.Time{}, bad("date must be YYYYMMDD")
	}
	for i := 0; i < len(date); i++ {
		if date[i] < '0' || date[i] > '9' {
			return time.Time{}, bad("date must be YYYYMMDD")
		}
	}
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[4:6])
	day, _ := strconv.Atoi(date[6:8])
	if year < minValidYear {
		return time.Time{}, bad("year precedes device clock epoch")
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return time.Time{}, bad("time must be HH:MM:SS")
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, bad("time must be HH:MM:SS")
		}
		hms[i] = n
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, bad("out of range")
	}

	t := time.Date(year, time.Month(month), day, hms[0], hms[1], hms[2], 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, bad("no such day")
	}
	return t, nil
}
