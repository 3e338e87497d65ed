// Package fusion holds the per-field aggregation rules used to reduce the
// rows of one time bucket to a single value.
//
// Each rule takes the bucket's rows of one subsystem plus an accessor that
// returns a pointer to the field (nil when the row lacks it). Absent values
// are skipped; when no row has the field the result is nil.
package fusion

import (
	"math"
)

// Number is any numeric field type found in subsystem rows.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// Mean is the arithmetic mean of the present values. No rounding happens
// here; destination formatting decides precision.
func Mean[R any, N Number](rows []R, get func(*R) *N) *float64 {
	var (
		sum float64
		n   int
	)
	for i := range rows {
		if v := get(&rows[i]); v != nil {
			sum += float64(*v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// Mode is the most frequent present value. Ties go to the value encountered
// first in row order, so callers must hand rows over in a stable order.
func Mode[R any, T comparable](rows []R, get func(*R) *T) *T {
	counts := make(map[T]int)
	var order []T
	for i := range rows {
		v := get(&rows[i])
		if v == nil {
			continue
		}
		if counts[*v] == 0 {
			order = append(order, *v)
		}
		counts[*v]++
	}
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return &best
}

// vanishing is the resultant length below which bearings cancel out and no
// mean direction exists.
const vanishing = 1e-9

// Bearing is the circular mean of bearings in degrees (0 = north, clockwise
// positive), normalised to [0,360). Each value becomes a unit vector, the
// vectors are averaged component-wise and the resultant's direction is
// returned. When the resultant vanishes (e.g. 0, 90, 180, 270) the result is
// nil.
func Bearing[R any, N Number](rows []R, get func(*R) *N) *float64 {
	var (
		north, east float64
		n           int
	)
	for i := range rows {
		v := get(&rows[i])
		if v == nil {
			continue
		}
		rad := float64(*v) * math.Pi / 180
		north += math.Cos(rad)
		east += math.Sin(rad)
		n++
	}
	if n == 0 {
		return nil
	}
	north /= float64(n)
	east /= float64(n)
	if math.Hypot(north, east) < vanishing {
		return nil
	}
	deg := Normalize360(math.Atan2(east, north) * 180 / math.Pi)
	if 360-deg < vanishing {
		deg = 0
	}
	return &deg
}

// Normalize360 maps any angle into [0,360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
