// Package transform maps one fused time bucket onto the destination schema.
package transform

import (
	"flightlog-converter/models"
	"flightlog-converter/services/fusion"
)

// Transform reduces b to one destination record. Subsystems with no rows in
// the bucket leave their fields nil; fields the source never records are
// never filled.
func Transform(b *models.Bucket) *models.DestinationRecord {
	d := &models.DestinationRecord{Time: b.Time}
	applyFlight(d, b.Flight)
	applySystem(d, b.System)
	applyEngine(d, b.Engine)
	return d
}

// applyFlight fills attitude, air data and GPS fields. It runs first because
// the system stream's bearings are converted with its magnetic variation.
func applyFlight(d *models.DestinationRecord, rows []models.FlightRow) {
	if len(rows) == 0 {
		return
	}

	d.Latitude = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.Latitude })
	d.Longitude = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.Longitude })
	if alt := fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.GPSAltitude }); alt != nil {
		ft := MetersToFeet(*alt)
		d.GPSAltitude = &ft
	}
	d.GPSFix = fusion.Mode(rows, func(r *models.FlightRow) *models.GPSFix { return r.GPSFix })
	d.Satellites = fusion.Mode(rows, func(r *models.FlightRow) *uint8 { return r.Satellites })
	d.HPL = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.HPL })
	d.VPL = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.VPL })
	d.GroundSpeed = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.GroundSpeed })
	d.MagneticVariation = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.MagneticVariation })
	track := fusion.Bearing(rows, func(r *models.FlightRow) *uint16 { return r.GroundTrack })
	d.TrueTrack = MagneticToTrue(track, d.MagneticVariation)

	pressureAltitude := fusion.Mean(rows, func(r *models.FlightRow) *int32 { return r.PressureAltitude })
	d.PressureAltitude = roundInt32(pressureAltitude)
	d.AltimeterSetting = fusion.Mode(rows, func(r *models.FlightRow) *float64 { return r.AltimeterSetting })
	d.BaroAltitude = BaroAltitude(pressureAltitude, d.AltimeterSetting)
	d.IAS = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.IAS })
	d.TAS = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.TAS })
	d.VerticalSpeed = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.VerticalSpeed })
	d.OAT = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.OAT })

	d.Pitch = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.Pitch })
	d.Roll = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.Roll })
	d.MagneticHeading = fusion.Bearing(rows, func(r *models.FlightRow) *uint16 { return r.Heading })
	d.TrueHeading = MagneticToTrue(d.MagneticHeading, d.MagneticVariation)
	d.LateralAccel = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.LateralAccel })
	d.NormalAccel = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.NormalAccel })
	d.YawRate = fusion.Mean(rows, func(r *models.FlightRow) *float64 { return r.YawRate })
}

func applySystem(d *models.DestinationRecord, rows []models.SystemRow) {
	if len(rows) == 0 {
		return
	}

	// AFCS
	latActive := fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.LateralActive })
	latArmed := fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.LateralArmed })
	vertActive := fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.VerticalActive })
	vertArmed := fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.VerticalArmed })
	d.LateralMode = ModeString(LateralModes, latActive, latArmed)
	d.VerticalMode = ModeString(VerticalModes, vertActive, vertArmed)
	if latActive != nil && vertActive != nil {
		engaged := *latActive != 0 && *vertActive != 0
		d.AutopilotEngaged = &engaged
	}
	if disc := fusion.Mode(rows, func(r *models.SystemRow) *uint16 { return r.APDiscretes }); disc != nil {
		fd := *disc&models.DiscreteFlightDirector != 0
		yd := *disc&models.DiscreteYawDamper != 0
		d.FlightDirectorOn = &fd
		d.YawDamperOn = &yd
	}
	d.FDRollCommand = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.FDRoll })
	d.FDPitchCommand = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.FDPitch })
	d.SelectedAltitude = fusion.Mode(rows, func(r *models.SystemRow) *int32 { return r.SelectedAltitude })
	d.SelectedHeading = fusion.Bearing(rows, func(r *models.SystemRow) *uint16 { return r.SelectedHeading })
	d.SelectedVS = fusion.Mode(rows, func(r *models.SystemRow) *int32 { return r.SelectedVS })
	d.SelectedIAS = fusion.Mode(rows, func(r *models.SystemRow) *int32 { return r.SelectedIAS })

	// Flight plan
	d.ActiveWaypoint = fusion.Mode(rows, func(r *models.SystemRow) *string { return r.ActiveWaypoint })
	d.WaypointDistance = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.WaypointDistance })
	wptBearing := fusion.Bearing(rows, func(r *models.SystemRow) *uint16 { return r.WaypointBearing })
	d.WaypointBearingTrue = MagneticToTrue(wptBearing, d.MagneticVariation)

	applyNavSource(d, rows)

	// Radios
	d.COM1 = mhz(fusion.Mode(rows, func(r *models.SystemRow) *uint32 { return r.COM1 }))
	d.COM2 = mhz(fusion.Mode(rows, func(r *models.SystemRow) *uint32 { return r.COM2 }))
	d.NAV1 = mhz(fusion.Mode(rows, func(r *models.SystemRow) *uint32 { return r.NAV1 }))
	d.NAV2 = mhz(fusion.Mode(rows, func(r *models.SystemRow) *uint32 { return r.NAV2 }))
	d.XPDRCode = fusion.Mode(rows, func(r *models.SystemRow) *uint16 { return r.XPDRCode })
	d.XPDRMode = fusion.Mode(rows, func(r *models.SystemRow) *string { return r.XPDRMode })
}

// applyNavSource fills the course and deviation fields from exactly one
// source: the FMS when it drives the HSI, the localizer/VOR receiver
// otherwise. The two field sets are never mixed within a row.
func applyNavSource(d *models.DestinationRecord, rows []models.SystemRow) {
	src := fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.CourseSource })
	if src != nil && int(*src) < len(CourseSources) {
		name := CourseSources[*src]
		d.NavSource = &name
	}

	if src != nil && *src == CourseSourceFMS {
		d.Course = fusion.Bearing(rows, func(r *models.SystemRow) *uint16 { return r.DesiredTrack })
		d.CrossTrack = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.CrossTrack })
		mode, ok := LookupFMSMode(fusion.Mode(rows, func(r *models.SystemRow) *uint8 { return r.FMSMode }))
		if !ok {
			return
		}
		scale, name := mode.FullScale, mode.Name
		d.CDIFullScale = &scale
		d.GPSNavMode = &name
		if d.CrossTrack != nil {
			deflection := *d.CrossTrack / scale
			d.HCDI = &deflection
		}
		return
	}

	d.Course = fusion.Bearing(rows, func(r *models.SystemRow) *uint16 { return r.OBSCourse })
	d.HCDI = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.LOCDeviation })
	d.VCDI = fusion.Mean(rows, func(r *models.SystemRow) *float64 { return r.GSDeviation })
}

func applyEngine(d *models.DestinationRecord, rows []models.EngineRow) {
	if len(rows) == 0 {
		return
	}

	d.RPM = fusion.Mean(rows, func(r *models.EngineRow) *int32 { return r.RPM })
	d.ManifoldPressure = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.ManifoldPressure })
	d.FuelFlow = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.FuelFlow })
	d.FuelPressure = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.FuelPressure })
	d.OilTemperature = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.OilTemperature })
	d.OilPressure = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.OilPressure })
	if pwr := fusion.Mean(rows, func(r *models.EngineRow) *int32 { return r.PercentPower }); pwr != nil {
		p := ClampPercent(*pwr)
		d.PercentPower = &p
	}
	d.TIT = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.TIT })
	for i := range d.CHT {
		d.CHT[i] = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.CHT[i] })
		d.EGT[i] = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.EGT[i] })
	}

	d.FuelQtyLeft = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.FuelQtyLeft })
	d.FuelQtyRight = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.FuelQtyRight })
	d.FuelUsed = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.FuelUsed })
	if d.FuelQtyLeft != nil && d.FuelQtyRight != nil {
		total := *d.FuelQtyLeft + *d.FuelQtyRight
		d.FuelRemaining = &total
		if d.FuelFlow != nil && *d.FuelFlow > 0 {
			hours := total / *d.FuelFlow
			d.Endurance = &hours
		}
	}

	d.MainBusVolts = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.MainBusVolts })
	d.EssBusVolts = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.EssBusVolts })
	d.Alt1Amps = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.Alt1Amps })
	d.Alt2Amps = fusion.Mean(rows, func(r *models.EngineRow) *float64 { return r.Alt2Amps })
}
