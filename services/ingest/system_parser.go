package ingest

import (
	"flightlog-converter/models"
)

// System stream header names.
const (
	colLateralActive    = "AP Lateral Active"
	colLateralArmed     = "AP Lateral Armed"
	colVerticalActive   = "AP Vertical Active"
	colVerticalArmed    = "AP Vertical Armed"
	colAPDiscretes      = "AP Discretes"
	colFDPitch          = "FD Pitch"
	colFDRoll           = "FD Roll"
	colSelectedAltitude = "Selected Altitude"
	colSelectedHeading  = "Selected Heading"
	colSelectedVS       = "Selected VS"
	colSelectedIAS      = "Selected IAS"
	colCourseSource     = "Course Source"
	colFMSMode          = "FMS Mode"
	colCrossTrack       = "Cross Track"
	colDesiredTrack     = "Desired Track"
	colActiveWaypoint   = "Active Waypoint"
	colWaypointDistance = "Waypoint Distance"
	colWaypointBearing  = "Waypoint Bearing"
	colLOCDeviation     = "LOC Deviation"
	colGSDeviation      = "GS Deviation"
	colOBSCourse        = "OBS Course"
	colCOM1             = "COM1"
	colCOM2             = "COM2"
	colNAV1             = "NAV1"
	colNAV2             = "NAV2"
	colXPDRCode         = "XPDR Code"
	colXPDRMode         = "XPDR Mode"
)

// SystemParser parses rows of one *_SYSTEM.CSV file.
type SystemParser struct {
	rowPrefix
}

func NewSystemParser(cols *Columns, source string) (*SystemParser, error) {
	prefix, err := newRowPrefix(cols, source)
	if err != nil {
		return nil, err
	}
	return &SystemParser{rowPrefix: prefix}, nil
}

func (p *SystemParser) Subsystem() models.Subsystem { return models.SubsystemSystem }

func (p *SystemParser) Parse(cells []string, line int) (models.Row, *models.Marker, error) {
	meta, marker, skip, err := p.read(cells, line)
	if err != nil || skip || marker != nil {
		return nil, marker, err
	}

	f := fieldReader{cols: p.cols, cells: cells}
	row := models.SystemRow{
		RowMeta:          meta,
		LateralActive:    f.u8(colLateralActive),
		LateralArmed:     f.u8(colLateralArmed),
		VerticalActive:   f.u8(colVerticalActive),
		VerticalArmed:    f.u8(colVerticalArmed),
		APDiscretes:      f.hex16(colAPDiscretes),
		FDPitch:          f.float(colFDPitch),
		FDRoll:           f.float(colFDRoll),
		SelectedAltitude: f.i32(colSelectedAltitude),
		SelectedHeading:  f.u16(colSelectedHeading),
		SelectedVS:       f.i32(colSelectedVS),
		SelectedIAS:      f.i32(colSelectedIAS),
		CourseSource:     f.u8(colCourseSource),
		FMSMode:          f.u8(colFMSMode),
		CrossTrack:       f.float(colCrossTrack),
		DesiredTrack:     f.u16(colDesiredTrack),
		ActiveWaypoint:   f.str(colActiveWaypoint),
		WaypointDistance: f.float(colWaypointDistance),
		WaypointBearing:  f.u16(colWaypointBearing),
		LOCDeviation:     f.float(colLOCDeviation),
		GSDeviation:      f.float(colGSDeviation),
		OBSCourse:        f.u16(colOBSCourse),
		COM1:             f.u32(colCOM1),
		COM2:             f.u32(colCOM2),
		NAV1:             f.u32(colNAV1),
		NAV2:             f.u32(colNAV2),
		XPDRCode:         f.u16(colXPDRCode),
		XPDRMode:         f.str(colXPDRMode),
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return row, nil, nil
}
