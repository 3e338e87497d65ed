package views

import (
	"fmt"

	"flightlog-converter/models"
	"flightlog-converter/utils"
)

// metadataTag opens the first line of every flight log.
const metadataTag = "#airframe_info"

// MetadataLine renders the airframe description that precedes the column
// headers. Values are quoted literally and never CSV-escaped.
func MetadataLine(a utils.AirframeConfig) []string {
	return []string{
		metadataTag,
		fmt.Sprintf(" log_version=%q", a.LogVersion),
		fmt.Sprintf(" airframe_name=%q", a.AirframeName),
		fmt.Sprintf(" unit_software_part_number=%q", a.UnitSoftwarePartNumber),
		fmt.Sprintf(" unit_software_version=%q", a.UnitSoftwareVersion),
		fmt.Sprintf(" system_software_part_number=%q", a.SystemSoftwarePartNumber),
		fmt.Sprintf(" system_id=%q", a.SystemID),
		" mode=" + a.Mode,
	}
}

// Preamble is the three lines written at the top of a flight log, each padded
// with empty cells to the widest of the three.
type Preamble struct {
	Metadata  []string
	Names     []string
	Mnemonics []string
}

// NewPreamble builds the preamble for the destination schema.
func NewPreamble(a utils.AirframeConfig) Preamble {
	p := Preamble{
		Metadata:  MetadataLine(a),
		Names:     models.DestinationRecord{}.CSVHeader(),
		Mnemonics: models.DestinationRecord{}.CSVMnemonics(),
	}
	width := max(len(p.Metadata), len(p.Names), len(p.Mnemonics))
	p.Metadata = pad(p.Metadata, width)
	p.Names = pad(p.Names, width)
	p.Mnemonics = pad(p.Mnemonics, width)
	return p
}

// Width returns the padded column count.
func (p Preamble) Width() int { return len(p.Names) }

// WriteTo emits the preamble.
func (p Preamble) WriteTo(w *CSVWriter) error {
	if err := w.WriteRawRow(p.Metadata); err != nil {
		return err
	}
	if err := w.WriteHeader(p.Names); err != nil {
		return err
	}
	return w.WriteHeader(p.Mnemonics)
}

func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
