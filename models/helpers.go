package models

import (
	"fmt"
	"math"
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────
// Every helper renders an absent value as the empty cell.

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func fopt(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return ftoa(*v, prec)
}

// bearingopt renders a direction in [0,360). Rounding happens before the wrap
// so 359.96 at one decimal prints as 0.0, never 360.0.
func bearingopt(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	scale := math.Pow10(prec)
	r := math.Round(*v*scale) / scale
	if r >= 360 {
		r -= 360
	}
	if r == 0 {
		r = 0 // drop a negative zero
	}
	return ftoa(r, prec)
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func iopt[T integer](v *T) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func sopt[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func bopt(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	default:
		return "0"
	}
}

// CSVRowWriter is the interface every serialisable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
