package controller

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"flightlog-converter/models"
	"flightlog-converter/services/transform"
	"flightlog-converter/utils"
	"flightlog-converter/views"
)

// RecordingStats summarises what the sequencer did.
type RecordingStats struct {
	FlightsWritten int
	FlightsDeleted int
	RecordsWritten uint64
	RecordsDropped uint64 // before the first boundary
}

// openFlight is the WritingToBoundary state.
type openFlight struct {
	boundary models.FlightBoundary
	writer   *views.CSVWriter
	seen     [3]bool // indexed by models.Subsystem
}

// RecordingController is the final pipeline stage. It walks buckets in time
// order against the flight boundaries and writes one CSV per flight.
//
// A nil current flight is the NoActiveBoundary state. Every boundary whose
// start is at or before a record's time is opened in turn, closing the
// previous file; a file that received no data rows is removed on close.
type RecordingController struct {
	outDir      string
	placeholder string
	bufSize     int
	preamble    views.Preamble

	boundaries []models.FlightBoundary
	next       int
	current    *openFlight

	stats RecordingStats
}

// PrepareOutputDir creates dir if it does not exist and rejects paths that
// exist but are not directories.
func PrepareOutputDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("stat output dir: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%s: %w", dir, models.ErrNotDirectory)
	}
	return nil
}

// NewRecordingController prepares outDir and the writer settings. boundaries
// must be in ascending start order, as returned by boundary.Group.
func NewRecordingController(outDir string, cfg *utils.ConverterConfig, boundaries []models.FlightBoundary) (*RecordingController, error) {
	if err := PrepareOutputDir(outDir); err != nil {
		return nil, err
	}
	return &RecordingController{
		outDir:      outDir,
		placeholder: cfg.Output.LocationPlaceholder,
		bufSize:     cfg.Output.BufferSizeKB * 1024,
		preamble:    views.NewPreamble(cfg.Airframe),
		boundaries:  boundaries,
	}, nil
}

// Run transforms and writes every bucket, then closes the last file. Buckets
// must be in ascending time order.
func (rc *RecordingController) Run(ctx context.Context, buckets []*models.Bucket, progress utils.ProgressSink) error {
	if len(rc.boundaries) == 0 && len(buckets) > 0 {
		utils.L().Warn("no power-on markers found, nothing will be written", "records", len(buckets))
	}
	for i, b := range buckets {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return errors.Join(err, rc.Close())
			}
			progress.Report(float64(i)/float64(len(buckets)), "writing flights")
		}
		if err := rc.Write(b); err != nil {
			return errors.Join(err, rc.Close())
		}
	}
	progress.Report(1, "writing flights")
	return rc.Close()
}

// Write advances the state machine to b's time and, when a flight is open,
// appends b's destination record.
func (rc *RecordingController) Write(b *models.Bucket) error {
	for rc.next < len(rc.boundaries) && !rc.boundaries[rc.next].Start.After(b.Time) {
		if err := rc.closeCurrent(); err != nil {
			return err
		}
		if err := rc.open(rc.boundaries[rc.next]); err != nil {
			return err
		}
		rc.next++
	}

	if rc.current == nil {
		rc.stats.RecordsDropped++
		return nil
	}

	rec := transform.Transform(b)
	if err := rc.current.writer.WriteRow(rec.CSVRow()); err != nil {
		return err
	}
	for _, s := range models.Subsystems {
		if b.Has(s) {
			rc.current.seen[s] = true
		}
	}
	rc.stats.RecordsWritten++
	return nil
}

func (rc *RecordingController) open(b models.FlightBoundary) error {
	path := filepath.Join(rc.outDir, utils.FlightLogName(b.Start, rc.placeholder))
	w, err := views.NewCSVWriter(path, rc.bufSize)
	if err != nil {
		return err
	}
	if err := rc.preamble.WriteTo(w); err != nil {
		_ = w.Close()
		return err
	}
	rc.current = &openFlight{boundary: b, writer: w}
	utils.L().Debug("flight opened", "file", path, "start", b.Start, "sources", len(b.Sources))
	return nil
}

// Close finishes the open flight, if any.
func (rc *RecordingController) Close() error {
	return rc.closeCurrent()
}

func (rc *RecordingController) closeCurrent() error {
	f := rc.current
	if f == nil {
		return nil
	}
	rc.current = nil

	path := f.writer.Path()
	if err := f.writer.Close(); err != nil {
		return err
	}

	rows := f.writer.Rows()
	if rows == 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove empty flight log: %w", err)
		}
		rc.stats.FlightsDeleted++
		utils.L().Warn("flight has no data rows, file removed", "file", path, "start", f.boundary.Start)
		return nil
	}

	for _, s := range models.Subsystems {
		if !f.seen[s] {
			utils.L().Warn("flight has no rows from subsystem", "file", path, "subsystem", s)
		}
	}
	rc.stats.FlightsWritten++
	utils.L().Info("flight written", "file", path, "rows", rows)
	return nil
}

// Stats returns the counters accumulated so far.
func (rc *RecordingController) Stats() RecordingStats {
	return rc.stats
}
