package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{"valid", "20230415", "14:02:09", time.Date(2023, 4, 15, 14, 2, 9, 0, time.UTC), false},
		{"first valid year", "20050101", "00:00:00", time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"clock fault year", "20040101", "12:00:00", time.Time{}, true},
		{"short date", "2023041", "14:02:09", time.Time{}, true},
		{"non digit date", "2023-4-15", "14:02:09", time.Time{}, true},
		{"two part time", "20230415", "14:02", time.Time{}, true},
		{"hour out of range", "20230415", "24:00:00", time.Time{}, true},
		{"no such day", "20230231", "10:00:00", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.date, tt.clock)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestReader(header, cells []string) *fieldReader {
	return &fieldReader{cols: NewColumns(header), cells: cells}
}

func TestFieldReader_AbsentValues(t *testing.T) {
	r := newTestReader([]string{"A", "B", "C"}, []string{"", "-", " "})

	assert.Nil(t, r.float("A"))
	assert.Nil(t, r.str("B"))
	assert.Nil(t, r.u16("C"))
	assert.Nil(t, r.i32("missing column"))
	assert.NoError(t, r.err)
}

func TestFieldReader_InvalidValueKeepsFirstError(t *testing.T) {
	r := newTestReader([]string{"A", "B"}, []string{"abc", "70000"})

	assert.Nil(t, r.float("A"))
	assert.Nil(t, r.u16("B"))

	var ive *models.InvalidValueError
	require.ErrorAs(t, r.err, &ive)
	assert.Equal(t, "A", ive.Field)
	assert.Equal(t, "abc", ive.Value)
	assert.ErrorIs(t, r.err, models.ErrInvalidValue)
}

func TestFieldReader_Widths(t *testing.T) {
	r := newTestReader([]string{"u8", "u16", "i32", "u32"}, []string{"255", "65535", "-1200", "121500"})

	assert.Equal(t, uint8(255), *r.u8("u8"))
	assert.Equal(t, uint16(65535), *r.u16("u16"))
	assert.Equal(t, int32(-1200), *r.i32("i32"))
	assert.Equal(t, uint32(121500), *r.u32("u32"))
	require.NoError(t, r.err)

	r = newTestReader([]string{"u8"}, []string{"256"})
	assert.Nil(t, r.u8("u8"))
	assert.ErrorIs(t, r.err, models.ErrInvalidValue)
}

func TestFieldReader_FloatRejectsNaN(t *testing.T) {
	r := newTestReader([]string{"A"}, []string{"NaN"})
	assert.Nil(t, r.float("A"))
	assert.ErrorIs(t, r.err, models.ErrInvalidValue)
}

func TestFieldReader_Hex(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint16
		wantErr bool
	}{
		{"0x3", 3, false},
		{"0X00FF", 255, false},
		{"3", 0, true},
		{"0x", 0, true},
		{"0xZZ", 0, true},
		{"0x10000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := newTestReader([]string{"AP Discretes"}, []string{tt.raw})
			got := r.hex16("AP Discretes")
			if tt.wantErr {
				assert.Nil(t, got)
				assert.ErrorIs(t, r.err, models.ErrInvalidValue)
				return
			}
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFieldReader_GPSFix(t *testing.T) {
	r := newTestReader([]string{"GPS Fix"}, []string{"3d-diff"})
	fix := r.gpsFix("GPS Fix")
	require.NotNil(t, fix)
	assert.Equal(t, models.GPSFix3DDiff, *fix)

	r = newTestReader([]string{"GPS Fix"}, []string{"4D"})
	assert.Nil(t, r.gpsFix("GPS Fix"))
	assert.ErrorIs(t, r.err, models.ErrInvalidValue)
}

func TestColumns(t *testing.T) {
	cols := NewColumns([]string{"\ufeffDate", " Time ", "SysTime", "Time"})

	i, ok := cols.Index("Date")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = cols.Index("Time")
	require.True(t, ok)
	assert.Equal(t, 1, i, "first duplicate wins")

	assert.Equal(t, "", cols.Cell([]string{"20230101"}, "SysTime"), "short row")
	assert.Equal(t, 4, cols.Len())
	assert.Equal(t, []string{"Eng1 CHT1", "Eng1 CHT2"}, cylinderColumns("Eng1 CHT{n}", 2))
}
