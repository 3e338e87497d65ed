package ingest

import (
	"flightlog-converter/models"
)

// Flight stream header names.
const (
	colPitch             = "Pitch"
	colRoll              = "Roll"
	colHeading           = "Heading"
	colYawRate           = "Yaw Rate"
	colLateralAccel      = "Lateral Accel"
	colNormalAccel       = "Normal Accel"
	colIAS               = "IAS"
	colTAS               = "TAS"
	colVerticalSpeed     = "Vertical Speed"
	colPressureAltitude  = "Pressure Altitude"
	colAltimeterSetting  = "Altimeter Setting"
	colOAT               = "OAT"
	colLatitude          = "GPS Latitude"
	colLongitude         = "GPS Longitude"
	colGPSAltitude       = "GPS Altitude"
	colGroundSpeed       = "Ground Speed"
	colGroundTrack       = "Ground Track"
	colMagneticVariation = "Magnetic Variation"
	colGPSFix            = "GPS Fix"
	colSatellites        = "GPS Satellites"
	colHPL               = "HPL"
	colVPL               = "VPL"
)

// FlightParser parses rows of one *_FLIGHT.CSV file.
type FlightParser struct {
	rowPrefix
}

func NewFlightParser(cols *Columns, source string) (*FlightParser, error) {
	prefix, err := newRowPrefix(cols, source)
	if err != nil {
		return nil, err
	}
	return &FlightParser{rowPrefix: prefix}, nil
}

func (p *FlightParser) Subsystem() models.Subsystem { return models.SubsystemFlight }

func (p *FlightParser) Parse(cells []string, line int) (models.Row, *models.Marker, error) {
	meta, marker, skip, err := p.read(cells, line)
	if err != nil || skip || marker != nil {
		return nil, marker, err
	}

	f := fieldReader{cols: p.cols, cells: cells}
	row := models.FlightRow{
		RowMeta:           meta,
		Pitch:             f.float(colPitch),
		Roll:              f.float(colRoll),
		Heading:           f.u16(colHeading),
		YawRate:           f.float(colYawRate),
		LateralAccel:      f.float(colLateralAccel),
		NormalAccel:       f.float(colNormalAccel),
		IAS:               f.float(colIAS),
		TAS:               f.float(colTAS),
		VerticalSpeed:     f.float(colVerticalSpeed),
		PressureAltitude:  f.i32(colPressureAltitude),
		AltimeterSetting:  f.float(colAltimeterSetting),
		OAT:               f.float(colOAT),
		Latitude:          f.float(colLatitude),
		Longitude:         f.float(colLongitude),
		GPSAltitude:       f.float(colGPSAltitude),
		GroundSpeed:       f.float(colGroundSpeed),
		GroundTrack:       f.u16(colGroundTrack),
		MagneticVariation: f.float(colMagneticVariation),
		GPSFix:            f.gpsFix(colGPSFix),
		Satellites:        f.u8(colSatellites),
		HPL:               f.float(colHPL),
		VPL:               f.float(colVPL),
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return row, nil, nil
}
