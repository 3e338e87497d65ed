package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	f *float64
	u *uint16
	s *string
}

func fp(v float64) *float64 { return &v }
func up(v uint16) *uint16   { return &v }
func sp(v string) *string   { return &v }

func getF(r *sample) *float64 { return r.f }
func getU(r *sample) *uint16  { return r.u }
func getS(r *sample) *string  { return r.s }

func floats(vs ...*float64) []sample {
	out := make([]sample, len(vs))
	for i, v := range vs {
		out[i].f = v
	}
	return out
}

func bearings(vs ...uint16) []sample {
	out := make([]sample, len(vs))
	for i, v := range vs {
		out[i].u = up(v)
	}
	return out
}

func TestMean(t *testing.T) {
	got := Mean(floats(fp(1), nil, fp(2), fp(6)), getF)
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, *got, 1e-12)

	assert.Nil(t, Mean(floats(nil, nil), getF))
	assert.Nil(t, Mean([]sample{}, getF))
}

func TestMean_IntegerField(t *testing.T) {
	got := Mean(bearings(1, 2), getU)
	require.NotNil(t, got)
	assert.InDelta(t, 1.5, *got, 1e-12, "no integer truncation")
}

func TestMode(t *testing.T) {
	rows := []sample{{s: sp("KSQL")}, {s: sp("KPAO")}, {s: sp("KPAO")}, {}}
	got := Mode(rows, getS)
	require.NotNil(t, got)
	assert.Equal(t, "KPAO", *got)
}

func TestMode_TieGoesToFirst(t *testing.T) {
	rows := []sample{{s: sp("B")}, {s: sp("A")}, {s: sp("A")}, {s: sp("B")}}
	got := Mode(rows, getS)
	require.NotNil(t, got)
	assert.Equal(t, "B", *got)

	reversed := []sample{{s: sp("A")}, {s: sp("B")}, {s: sp("B")}, {s: sp("A")}}
	assert.Equal(t, "A", *Mode(reversed, getS))
}

func TestMode_NoValues(t *testing.T) {
	assert.Nil(t, Mode([]sample{{}, {}}, getS))
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name   string
		values []uint16
		want   float64
	}{
		{"single", []uint16{90}, 90},
		{"across north", []uint16{350, 10}, 0},
		{"quadrant", []uint16{0, 90}, 45},
		{"south", []uint16{170, 190}, 180},
		{"west", []uint16{260, 280}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(bearings(tt.values...), getU)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
			assert.GreaterOrEqual(t, *got, 0.0)
			assert.Less(t, *got, 360.0)
		})
	}
}

func TestBearing_VanishingResultant(t *testing.T) {
	assert.Nil(t, Bearing(bearings(0, 90, 180, 270), getU))
	assert.Nil(t, Bearing(bearings(0, 180), getU))
	assert.Nil(t, Bearing([]sample{{}}, getU))
}

func TestNormalize360(t *testing.T) {
	tests := map[float64]float64{
		0:    0,
		360:  0,
		-10:  350,
		725:  5,
		-370: 350,
	}
	for in, want := range tests {
		assert.InDelta(t, want, Normalize360(in), 1e-9, "Normalize360(%v)", in)
	}
}
