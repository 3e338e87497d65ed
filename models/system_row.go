package models

// AP discrete bits in SystemRow.APDiscretes.
const (
	DiscreteFlightDirector uint16 = 1 << 0
	DiscreteYawDamper      uint16 = 1 << 1
)

// SystemRow is one sample of the navigation/system stream (nominally every
// 2 s): autopilot and flight director state, navigation source, CDI inputs,
// radios and transponder.
type SystemRow struct {
	RowMeta

	LateralActive  *uint8
	LateralArmed   *uint8
	VerticalActive *uint8
	VerticalArmed  *uint8
	APDiscretes    *uint16
	FDPitch        *float64 // deg
	FDRoll         *float64 // deg

	SelectedAltitude *int32  // ft
	SelectedHeading  *uint16 // deg magnetic
	SelectedVS       *int32  // fpm
	SelectedIAS      *int32  // kt

	CourseSource     *uint8
	FMSMode          *uint8
	CrossTrack       *float64 // NM, right of course +
	DesiredTrack     *uint16  // deg magnetic
	ActiveWaypoint   *string
	WaypointDistance *float64 // NM
	WaypointBearing  *uint16  // deg magnetic

	LOCDeviation *float64 // full scale ±1
	GSDeviation  *float64 // full scale ±1
	OBSCourse    *uint16  // deg magnetic

	COM1 *uint32 // kHz
	COM2 *uint32
	NAV1 *uint32
	NAV2 *uint32

	XPDRCode *uint16
	XPDRMode *string
}

func (SystemRow) Subsystem() Subsystem { return SubsystemSystem }
func (SystemRow) isRow()               {}
