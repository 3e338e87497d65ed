package models

import (
	"fmt"
	"time"
)

// DestinationRecord is one row of the unified output log. It is built from a
// single fused bucket and serialised immediately; nil fields become empty
// cells.
type DestinationRecord struct {
	Time time.Time

	// GPS
	ActiveWaypoint      *string
	Latitude            *float64
	Longitude           *float64
	GPSAltitude         *int32 // ft
	GPSFix              *GPSFix
	Satellites          *uint8
	HPL                 *float64 // m
	VPL                 *float64 // m
	GroundSpeed         *float64
	TrueTrack           *float64
	MagneticVariation   *float64
	WaypointDistance    *float64
	WaypointBearingTrue *float64

	// Air data
	BaroAltitude     *int32
	PressureAltitude *int32
	AltimeterSetting *float64
	IAS              *float64
	TAS              *float64
	VerticalSpeed    *float64
	OAT              *float64

	// Attitude
	Pitch           *float64
	Roll            *float64
	MagneticHeading *float64
	TrueHeading     *float64
	LateralAccel    *float64
	NormalAccel     *float64
	YawRate         *float64

	// AFCS
	AutopilotEngaged *bool
	FlightDirectorOn *bool
	YawDamperOn      *bool
	LateralMode      string
	VerticalMode     string
	FDRollCommand    *float64
	FDPitchCommand   *float64
	SelectedAltitude *int32
	SelectedHeading  *float64
	SelectedVS       *int32
	SelectedIAS      *int32

	// Navigation
	NavSource    *string
	Course       *float64
	HCDI         *float64
	VCDI         *float64
	CDIFullScale *float64
	GPSNavMode   *string
	CrossTrack   *float64
	NAV1         *float64 // MHz
	NAV2         *float64
	COM1         *float64
	COM2         *float64
	XPDRCode     *uint16
	XPDRMode     *string

	// Engine and electrical
	RPM              *float64
	ManifoldPressure *float64
	FuelFlow         *float64
	FuelPressure     *float64
	OilTemperature   *float64
	OilPressure      *float64
	PercentPower     *uint8
	TIT              *float64
	CHT              [CylinderCount]*float64
	EGT              [CylinderCount]*float64
	FuelQtyLeft      *float64
	FuelQtyRight     *float64
	FuelRemaining    *float64
	FuelUsed         *float64
	Endurance        *float64 // h
	MainBusVolts     *float64
	EssBusVolts      *float64
	Alt1Amps         *float64
	Alt2Amps         *float64
}

var _ CSVRowWriter = (*DestinationRecord)(nil)

type destinationColumn struct {
	name  string
	short string
	cell  func(*DestinationRecord) string
}

func never(*DestinationRecord) string { return "" }

// destinationColumns fixes the output column order.
var destinationColumns = buildDestinationColumns()

func buildDestinationColumns() []destinationColumn {
	cols := []destinationColumn{
		{"Date", "Lcl Date", func(d *DestinationRecord) string { return d.Time.UTC().Format("2006-01-02") }},
		{"Time", "Lcl Time", func(d *DestinationRecord) string { return d.Time.UTC().Format("15:04:05") }},
		{"UTC Offset", "UTCOfst", func(*DestinationRecord) string { return "+00:00" }},
		{"Active Waypoint", "AtvWpt", func(d *DestinationRecord) string { return sopt(d.ActiveWaypoint) }},
		{"Latitude", "Latitude", func(d *DestinationRecord) string { return fopt(d.Latitude, 7) }},
		{"Longitude", "Longitude", func(d *DestinationRecord) string { return fopt(d.Longitude, 7) }},
		{"GPS Altitude", "AltGPS", func(d *DestinationRecord) string { return iopt(d.GPSAltitude) }},
		{"GPS Fix", "GPSfix", func(d *DestinationRecord) string { return sopt(d.GPSFix) }},
		{"GPS Satellites", "GPSSats", func(d *DestinationRecord) string { return iopt(d.Satellites) }},
		{"Horizontal Protection Level", "HPLwas", func(d *DestinationRecord) string { return fopt(d.HPL, 1) }},
		{"Vertical Protection Level", "VPLwas", func(d *DestinationRecord) string { return fopt(d.VPL, 1) }},
		{"Horizontal Alert Limit", "HAL", never},
		{"Vertical Alert Limit", "VAL", never},
		{"Horizontal Protection Level FD", "HPLfd", never},
		{"Vertical Protection Level FD", "VPLfd", never},
		{"Ground Speed", "GndSpd", func(d *DestinationRecord) string { return fopt(d.GroundSpeed, 1) }},
		{"Ground Track", "TRK", func(d *DestinationRecord) string { return bearingopt(d.TrueTrack, 1) }},
		{"Magnetic Variation", "MagVar", func(d *DestinationRecord) string { return fopt(d.MagneticVariation, 1) }},
		{"Waypoint Distance", "WptDst", func(d *DestinationRecord) string { return fopt(d.WaypointDistance, 1) }},
		{"Waypoint Bearing", "WptBrg", func(d *DestinationRecord) string { return bearingopt(d.WaypointBearingTrue, 1) }},

		{"Baro Altitude", "AltB", func(d *DestinationRecord) string { return iopt(d.BaroAltitude) }},
		{"Pressure Altitude", "AltP", func(d *DestinationRecord) string { return iopt(d.PressureAltitude) }},
		{"Altimeter Setting", "BaroA", func(d *DestinationRecord) string { return fopt(d.AltimeterSetting, 2) }},
		{"Indicated Altitude", "AltInd", never},
		{"MSL Altitude", "AltMSL", never},
		{"Density Altitude", "AltD", never},
		{"Indicated Airspeed", "IAS", func(d *DestinationRecord) string { return fopt(d.IAS, 1) }},
		{"True Airspeed", "TAS", func(d *DestinationRecord) string { return fopt(d.TAS, 1) }},
		{"Vertical Speed", "VSpd", func(d *DestinationRecord) string { return fopt(d.VerticalSpeed, 0) }},
		{"Outside Air Temperature", "OAT", func(d *DestinationRecord) string { return fopt(d.OAT, 1) }},
		{"Wind Speed", "WndSpd", never},
		{"Wind Direction", "WndDr", never},
		{"Height Above Ground", "AltAGL", never},

		{"Pitch", "Pitch", func(d *DestinationRecord) string { return fopt(d.Pitch, 2) }},
		{"Roll", "Roll", func(d *DestinationRecord) string { return fopt(d.Roll, 2) }},
		{"Magnetic Heading", "HDG", func(d *DestinationRecord) string { return bearingopt(d.MagneticHeading, 1) }},
		{"True Heading", "THDG", func(d *DestinationRecord) string { return bearingopt(d.TrueHeading, 1) }},
		{"Lateral Acceleration", "LatAc", func(d *DestinationRecord) string { return fopt(d.LateralAccel, 2) }},
		{"Normal Acceleration", "NormAc", func(d *DestinationRecord) string { return fopt(d.NormalAccel, 2) }},
		{"Yaw Rate", "YawRt", func(d *DestinationRecord) string { return fopt(d.YawRate, 1) }},
		{"Angle of Attack", "AOA", never},

		{"Autopilot Engaged", "AfcsOn", func(d *DestinationRecord) string { return bopt(d.AutopilotEngaged) }},
		{"Flight Director On", "FDOn", func(d *DestinationRecord) string { return bopt(d.FlightDirectorOn) }},
		{"Yaw Damper On", "YDOn", func(d *DestinationRecord) string { return bopt(d.YawDamperOn) }},
		{"Lateral Mode", "RollM", func(d *DestinationRecord) string { return d.LateralMode }},
		{"Vertical Mode", "PitchM", func(d *DestinationRecord) string { return d.VerticalMode }},
		{"FD Roll Command", "RollC", func(d *DestinationRecord) string { return fopt(d.FDRollCommand, 2) }},
		{"FD Pitch Command", "PichC", func(d *DestinationRecord) string { return fopt(d.FDPitchCommand, 2) }},
		{"Selected Altitude", "SelAlt", func(d *DestinationRecord) string { return iopt(d.SelectedAltitude) }},
		{"Selected Heading", "SelHdg", func(d *DestinationRecord) string { return bearingopt(d.SelectedHeading, 0) }},
		{"Selected Vertical Speed", "VSpdG", func(d *DestinationRecord) string { return iopt(d.SelectedVS) }},
		{"Selected Airspeed", "SelIAS", func(d *DestinationRecord) string { return iopt(d.SelectedIAS) }},

		{"Navigation Source", "HSIS", func(d *DestinationRecord) string { return sopt(d.NavSource) }},
		{"Course", "CRS", func(d *DestinationRecord) string { return bearingopt(d.Course, 0) }},
		{"Horizontal CDI", "HCDI", func(d *DestinationRecord) string { return fopt(d.HCDI, 2) }},
		{"Vertical CDI", "VCDI", func(d *DestinationRecord) string { return fopt(d.VCDI, 2) }},
		{"CDI Full Scale", "CDIScl", func(d *DestinationRecord) string { return fopt(d.CDIFullScale, 2) }},
		{"GPS Navigation Mode", "GPSMode", func(d *DestinationRecord) string { return sopt(d.GPSNavMode) }},
		{"Cross Track Error", "XTK", func(d *DestinationRecord) string { return fopt(d.CrossTrack, 2) }},
		{"NAV1 Frequency", "NAV1", func(d *DestinationRecord) string { return fopt(d.NAV1, 2) }},
		{"NAV2 Frequency", "NAV2", func(d *DestinationRecord) string { return fopt(d.NAV2, 2) }},
		{"COM1 Frequency", "COM1", func(d *DestinationRecord) string { return fopt(d.COM1, 3) }},
		{"COM2 Frequency", "COM2", func(d *DestinationRecord) string { return fopt(d.COM2, 3) }},
		{"Transponder Code", "XPDR", func(d *DestinationRecord) string {
			if d.XPDRCode == nil {
				return ""
			}
			return fmt.Sprintf("%04d", *d.XPDRCode)
		}},
		{"Transponder Mode", "XPDRMd", func(d *DestinationRecord) string { return sopt(d.XPDRMode) }},

		{"E1 RPM", "E1 RPM", func(d *DestinationRecord) string { return fopt(d.RPM, 0) }},
		{"E1 Manifold Pressure", "E1 MAP", func(d *DestinationRecord) string { return fopt(d.ManifoldPressure, 2) }},
		{"E1 Fuel Flow", "E1 FFlow", func(d *DestinationRecord) string { return fopt(d.FuelFlow, 1) }},
		{"E1 Fuel Pressure", "E1 FPres", func(d *DestinationRecord) string { return fopt(d.FuelPressure, 1) }},
		{"E1 Oil Temperature", "E1 OilT", func(d *DestinationRecord) string { return fopt(d.OilTemperature, 0) }},
		{"E1 Oil Pressure", "E1 OilP", func(d *DestinationRecord) string { return fopt(d.OilPressure, 0) }},
		{"E1 Percent Power", "E1 %Pwr", func(d *DestinationRecord) string { return iopt(d.PercentPower) }},
		{"E1 TIT", "E1 TIT", func(d *DestinationRecord) string { return fopt(d.TIT, 0) }},
		{"E1 Carburetor Temperature", "E1 CarbT", never},
		{"E1 Oil Quantity", "E1 OilQ", never},
	}

	for i := 0; i < CylinderCount; i++ {
		n := i + 1
		cols = append(cols, destinationColumn{
			fmt.Sprintf("E1 CHT%d", n), fmt.Sprintf("E1 CHT%d", n),
			func(d *DestinationRecord) string { return fopt(d.CHT[i], 0) },
		})
	}
	for i := 0; i < CylinderCount; i++ {
		n := i + 1
		cols = append(cols, destinationColumn{
			fmt.Sprintf("E1 EGT%d", n), fmt.Sprintf("E1 EGT%d", n),
			func(d *DestinationRecord) string { return fopt(d.EGT[i], 0) },
		})
	}

	return append(cols,
		destinationColumn{"Fuel Quantity Left", "FQtyL", func(d *DestinationRecord) string { return fopt(d.FuelQtyLeft, 1) }},
		destinationColumn{"Fuel Quantity Right", "FQtyR", func(d *DestinationRecord) string { return fopt(d.FuelQtyRight, 1) }},
		destinationColumn{"Fuel Remaining", "FQtyT", func(d *DestinationRecord) string { return fopt(d.FuelRemaining, 1) }},
		destinationColumn{"Fuel Used", "FUsed", func(d *DestinationRecord) string { return fopt(d.FuelUsed, 1) }},
		destinationColumn{"Fuel Endurance", "FEndur", func(d *DestinationRecord) string { return fopt(d.Endurance, 2) }},
		destinationColumn{"Main Bus Volts", "volt1", func(d *DestinationRecord) string { return fopt(d.MainBusVolts, 1) }},
		destinationColumn{"Essential Bus Volts", "volt2", func(d *DestinationRecord) string { return fopt(d.EssBusVolts, 1) }},
		destinationColumn{"Alternator 1 Amps", "amp1", func(d *DestinationRecord) string { return fopt(d.Alt1Amps, 1) }},
		destinationColumn{"Alternator 2 Amps", "amp2", func(d *DestinationRecord) string { return fopt(d.Alt2Amps, 1) }},
		destinationColumn{"Aileron Trim", "AilTrim", never},
		destinationColumn{"Rudder Trim", "RudTrim", never},
		destinationColumn{"Flap Position", "Flap", never},
		destinationColumn{"Elevator Trim", "ElevTrim", never},
	)
}

// CSVHeader returns the full column names.
func (DestinationRecord) CSVHeader() []string {
	h := make([]string, len(destinationColumns))
	for i, c := range destinationColumns {
		h[i] = c.name
	}
	return h
}

// CSVMnemonics returns the short column names, in CSVHeader order.
func (DestinationRecord) CSVMnemonics() []string {
	h := make([]string, len(destinationColumns))
	for i, c := range destinationColumns {
		h[i] = c.short
	}
	return h
}

// CSVRow serialises the record in column order.
func (d *DestinationRecord) CSVRow() []string {
	row := make([]string, len(destinationColumns))
	for i, c := range destinationColumns {
		row[i] = c.cell(d)
	}
	return row
}
