package transform

import (
	"math"

	"flightlog-converter/services/fusion"
)

const (
	FeetPerMeter         = 3.28084
	StandardPressureInHg = 29.92
)

// MetersToFeet converts and rounds to the nearest foot.
func MetersToFeet(m float64) int32 {
	return int32(math.Round(m * FeetPerMeter))
}

// KHzToMHz converts a radio frequency.
func KHzToMHz(khz float64) float64 {
	return khz / 1000
}

// BaroAltitude corrects pressure altitude for the altimeter setting:
// round(pa) + round((setting − 29.92) × 1000). Nil if either input is nil.
func BaroAltitude(pressureAltitude, altimeterSetting *float64) *int32 {
	if pressureAltitude == nil || altimeterSetting == nil {
		return nil
	}
	correction := math.Round((*altimeterSetting - StandardPressureInHg) * 1000)
	v := int32(math.Round(*pressureAltitude) + correction)
	return &v
}

// MagneticToTrue adds east-positive variation to a magnetic bearing and
// normalises into [0,360). Nil if either input is nil.
func MagneticToTrue(magnetic, variation *float64) *float64 {
	if magnetic == nil || variation == nil {
		return nil
	}
	v := fusion.Normalize360(*magnetic + *variation)
	return &v
}

// ClampPercent limits a power value to what a uint8 cell can carry, then
// truncates.
func ClampPercent(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}

func roundInt32(v *float64) *int32 {
	if v == nil {
		return nil
	}
	r := int32(math.Round(*v))
	return &r
}

func mhz(khz *uint32) *float64 {
	if khz == nil {
		return nil
	}
	v := KHzToMHz(float64(*khz))
	return &v
}
