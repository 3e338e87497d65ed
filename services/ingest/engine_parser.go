package ingest

import (
	"flightlog-converter/models"
)

// EngineFormat names the two engine header shapes the logger has produced.
type EngineFormat int

const (
	EngineFormatCurrent EngineFormat = iota
	EngineFormatLegacy
)

func (f EngineFormat) String() string {
	if f == EngineFormatLegacy {
		return "legacy"
	}
	return "current"
}

// Probe columns: legacy firmware packs the unit into the name without spaces.
const (
	legacyEngineProbe  = "Eng1OilTemperature(°F)"
	currentEngineProbe = "Eng1 Oil Temperature"
)

// engineColumns maps each semantic engine field to its header name.
type engineColumns struct {
	rpm              string
	manifoldPressure string
	fuelFlow         string
	fuelPressure     string
	oilTemperature   string
	oilPressure      string
	percentPower     string
	tit              string
	cht              []string
	egt              []string
	fuelQtyLeft      string
	fuelQtyRight     string
	fuelUsed         string
	mainBusVolts     string
	essBusVolts      string
	alt1Amps         string
	alt2Amps         string
}

var currentEngineColumns = engineColumns{
	rpm:              "Eng1 RPM",
	manifoldPressure: "Eng1 Manifold Pressure",
	fuelFlow:         "Eng1 Fuel Flow",
	fuelPressure:     "Eng1 Fuel Pressure",
	oilTemperature:   currentEngineProbe,
	oilPressure:      "Eng1 Oil Pressure",
	percentPower:     "Eng1 Percent Power",
	tit:              "Eng1 TIT",
	cht:              cylinderColumns("Eng1 CHT{n}", models.CylinderCount),
	egt:              cylinderColumns("Eng1 EGT{n}", models.CylinderCount),
	fuelQtyLeft:      "Fuel Qty Left",
	fuelQtyRight:     "Fuel Qty Right",
	fuelUsed:         "Fuel Used",
	mainBusVolts:     "Main Bus Volts",
	essBusVolts:      "Ess Bus Volts",
	alt1Amps:         "Alt1 Amps",
	alt2Amps:         "Alt2 Amps",
}

var legacyEngineColumns = engineColumns{
	rpm:              "Eng1RPM",
	manifoldPressure: "Eng1ManifoldPressure(inHg)",
	fuelFlow:         "Eng1FuelFlow(GPH)",
	fuelPressure:     "Eng1FuelPressure(PSI)",
	oilTemperature:   legacyEngineProbe,
	oilPressure:      "Eng1OilPressure(PSI)",
	percentPower:     "Eng1PercentPower(%)",
	tit:              "Eng1TIT(°F)",
	cht:              cylinderColumns("Eng1CHT{n}(°F)", models.CylinderCount),
	egt:              cylinderColumns("Eng1EGT{n}(°F)", models.CylinderCount),
	fuelQtyLeft:      "FuelQtyLeft(GAL)",
	fuelQtyRight:     "FuelQtyRight(GAL)",
	fuelUsed:         "FuelUsed(GAL)",
	mainBusVolts:     "MainBusVolts(V)",
	essBusVolts:      "EssBusVolts(V)",
	alt1Amps:         "Alt1Amps(A)",
	alt2Amps:         "Alt2Amps(A)",
}

// DetectEngineFormat picks the header shape from the probe column.
func DetectEngineFormat(cols *Columns) (EngineFormat, error) {
	switch {
	case cols.Has(legacyEngineProbe):
		return EngineFormatLegacy, nil
	case cols.Has(currentEngineProbe):
		return EngineFormatCurrent, nil
	}
	return 0, &models.HeaderError{Column: currentEngineProbe, Reason: models.ErrUnknownFormat}
}

// EngineParser parses rows of one *_ENGINE.CSV file.
type EngineParser struct {
	rowPrefix
	format EngineFormat
	names  *engineColumns
}

// NewEngineParser detects the engine header shape once for the file.
func NewEngineParser(cols *Columns, source string) (*EngineParser, error) {
	prefix, err := newRowPrefix(cols, source)
	if err != nil {
		return nil, err
	}
	format, err := DetectEngineFormat(cols)
	if err != nil {
		return nil, err
	}
	names := &currentEngineColumns
	if format == EngineFormatLegacy {
		names = &legacyEngineColumns
	}
	return &EngineParser{rowPrefix: prefix, format: format, names: names}, nil
}

func (p *EngineParser) Subsystem() models.Subsystem { return models.SubsystemEngine }

// Format reports the detected header shape.
func (p *EngineParser) Format() EngineFormat { return p.format }

func (p *EngineParser) Parse(cells []string, line int) (models.Row, *models.Marker, error) {
	meta, marker, skip, err := p.read(cells, line)
	if err != nil || skip || marker != nil {
		return nil, marker, err
	}

	n := p.names
	f := fieldReader{cols: p.cols, cells: cells}
	row := models.EngineRow{
		RowMeta:          meta,
		RPM:              f.i32(n.rpm),
		ManifoldPressure: f.float(n.manifoldPressure),
		FuelFlow:         f.float(n.fuelFlow),
		FuelPressure:     f.float(n.fuelPressure),
		OilTemperature:   f.float(n.oilTemperature),
		OilPressure:      f.float(n.oilPressure),
		PercentPower:     f.i32(n.percentPower),
		TIT:              f.float(n.tit),
		FuelQtyLeft:      f.float(n.fuelQtyLeft),
		FuelQtyRight:     f.float(n.fuelQtyRight),
		FuelUsed:         f.float(n.fuelUsed),
		MainBusVolts:     f.float(n.mainBusVolts),
		EssBusVolts:      f.float(n.essBusVolts),
		Alt1Amps:         f.float(n.alt1Amps),
		Alt2Amps:         f.float(n.alt2Amps),
	}
	for i := range row.CHT {
		row.CHT[i] = f.float(n.cht[i])
		row.EGT[i] = f.float(n.egt[i])
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return row, nil, nil
}
