package transform

// Autopilot mode names indexed by the logged code; code 0 is "off".
var (
	LateralModes  = []string{"", "ROL", "HDG", "NAV", "GPSS", "LOC", "BC", "LNAV", "GA"}
	VerticalModes = []string{"", "PIT", "ALT", "VS", "IAS", "GS", "VNAV", "GA", "ALTS"}
)

// ModeName looks code up in table; nil or out-of-range codes give "".
func ModeName(table []string, code *uint8) string {
	if code == nil || int(*code) >= len(table) {
		return ""
	}
	return table[*code]
}

// ModeString formats an active/armed pair as "ACT (ARM)", or just "ACT" when
// nothing is armed.
func ModeString(table []string, active, armed *uint8) string {
	act := ModeName(table, active)
	arm := ModeName(table, armed)
	switch {
	case arm == "":
		return act
	case act == "":
		return "(" + arm + ")"
	}
	return act + " (" + arm + ")"
}

// Course sources selectable on the HSI. Index 0 is the FMS.
const CourseSourceFMS uint8 = 0

var CourseSources = []string{"GPS1", "GPS2", "NAV1", "NAV2"}

// FMSMode is one row of the CDI full-scale table.
type FMSMode struct {
	Name      string
	FullScale float64 // NM of cross-track for full CDI deflection
}

// FMSModes is indexed by the logged FMS mode code.
var FMSModes = []FMSMode{
	{"OCN", 4.0},
	{"ENR", 2.0},
	{"TERM", 1.0},
	{"DPRT", 0.3},
	{"MAPR", 1.0},
	{"APR", 0.3},
}

// LookupFMSMode returns the table entry for code.
func LookupFMSMode(code *uint8) (FMSMode, bool) {
	if code == nil || int(*code) >= len(FMSModes) {
		return FMSMode{}, false
	}
	return FMSModes[*code], true
}
