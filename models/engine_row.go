package models

// CylinderCount is the number of CHT/EGT probes recorded per engine.
const CylinderCount = 6

// EngineRow is one sample of the engine stream (nominally every 4 s).
// Legacy and current header shapes both normalise into this struct.
type EngineRow struct {
	RowMeta

	RPM              *int32
	ManifoldPressure *float64 // inHg
	FuelFlow         *float64 // GPH
	FuelPressure     *float64 // PSI
	OilTemperature   *float64 // °F
	OilPressure      *float64 // PSI
	PercentPower     *int32
	TIT              *float64 // °F
	CHT              [CylinderCount]*float64
	EGT              [CylinderCount]*float64

	FuelQtyLeft  *float64 // gal
	FuelQtyRight *float64
	FuelUsed     *float64

	MainBusVolts *float64
	EssBusVolts  *float64
	Alt1Amps     *float64
	Alt2Amps     *float64
}

func (EngineRow) Subsystem() Subsystem { return SubsystemEngine }
func (EngineRow) isRow()               {}
