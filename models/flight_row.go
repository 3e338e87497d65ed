package models

// GPSFix is the receiver solution quality reported in the flight stream.
type GPSFix string

const (
	GPSFixNone   GPSFix = "NONE"
	GPSFix2D     GPSFix = "2D"
	GPSFix3D     GPSFix = "3D"
	GPSFix3DDiff GPSFix = "3D-DIFF"
)

// ParseGPSFix accepts the four logged fix states.
func ParseGPSFix(s string) (GPSFix, bool) {
	switch f := GPSFix(s); f {
	case GPSFixNone, GPSFix2D, GPSFix3D, GPSFix3DDiff:
		return f, true
	}
	return "", false
}

// FlightRow is one sample of the flight-dynamics stream (nominally 1 Hz):
// attitude, air data and GPS state.
type FlightRow struct {
	RowMeta

	Pitch         *float64 // deg, nose up +
	Roll          *float64 // deg, right wing down +
	Heading       *uint16  // deg magnetic
	YawRate       *float64 // deg/s
	LateralAccel  *float64 // G
	NormalAccel   *float64 // G
	IAS           *float64 // kt
	TAS           *float64 // kt
	VerticalSpeed *float64 // fpm

	PressureAltitude *int32   // ft
	AltimeterSetting *float64 // inHg
	OAT              *float64 // °C

	Latitude          *float64
	Longitude         *float64
	GPSAltitude       *float64 // m
	GroundSpeed       *float64 // kt
	GroundTrack       *uint16  // deg magnetic
	MagneticVariation *float64 // deg, east +
	GPSFix            *GPSFix
	Satellites        *uint8
	HPL               *float64 // m
	VPL               *float64 // m
}

func (FlightRow) Subsystem() Subsystem { return SubsystemFlight }
func (FlightRow) isRow()               {}
