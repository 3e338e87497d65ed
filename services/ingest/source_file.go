package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"flightlog-converter/models"
	"flightlog-converter/utils"
)

// MarkerSink collects power-on markers from concurrent readers.
type MarkerSink interface {
	AddMarker(m models.Marker)
}

// FileReader ingests one *_ENGINE/_FLIGHT/_SYSTEM.CSV file and pushes its
// rows downstream. Row-level failures are counted and logged; only problems
// with the file as a whole are returned.
type FileReader struct {
	path     string
	sub      models.Subsystem
	encoding string

	produced uint64
	rejected uint64
	markers  uint64
}

func NewFileReader(path string, sub models.Subsystem, encoding string) *FileReader {
	return &FileReader{path: path, sub: sub, encoding: encoding}
}

// Path returns the file being read.
func (r *FileReader) Path() string { return r.path }

// Run reads the whole file, sending rows to out and power-on markers to sink.
func (r *FileReader) Run(ctx context.Context, out chan<- models.Row, sink MarkerSink) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()
	return r.read(ctx, f, out, sink)
}

func (r *FileReader) read(ctx context.Context, src io.Reader, out chan<- models.Row, sink MarkerSink) error {
	cr := csv.NewReader(transform.NewReader(bufio.NewReader(src), decoderFor(r.encoding)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &models.HeaderError{Reason: models.ErrMissingHeader}
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	parser, err := NewParser(r.sub, header, r.path)
	if err != nil {
		return err
	}
	if ep, ok := parser.(*EngineParser); ok {
		utils.L().Debug("engine header detected", "file", r.path, "format", ep.Format())
	}

	// Rows and markers are held until the file reads cleanly to EOF, so a file
	// that fails part way contributes nothing.
	var (
		rows    []models.Row
		markers []models.Marker
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("read %s: %w", r.path, err)
			}
			atomic.AddUint64(&r.rejected, 1)
			utils.L().Debug("row rejected", "file", r.path, "line", perr.Line, "error", err)
			continue
		}
		line, _ := cr.FieldPos(0)

		row, marker, err := parser.Parse(cells, line)
		switch {
		case err != nil:
			atomic.AddUint64(&r.rejected, 1)
			utils.L().Debug("row rejected", "file", r.path, "line", line, "error", err)
		case marker != nil:
			if marker.Kind != models.MarkerPowerOn {
				utils.L().Debug("marker ignored", "file", r.path, "line", line, "kind", marker.Kind)
				continue
			}
			markers = append(markers, *marker)
		case row != nil:
			rows = append(rows, row)
		}
	}

	for _, m := range markers {
		atomic.AddUint64(&r.markers, 1)
		sink.AddMarker(m)
	}
	for _, row := range rows {
		select {
		case out <- row:
			atomic.AddUint64(&r.produced, 1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Stats returns rows produced, rows rejected and power-on markers seen.
func (r *FileReader) Stats() (produced, rejected, markers uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.rejected), atomic.LoadUint64(&r.markers)
}

// decoderFor maps a configured encoding name to its charmap decoder.
// CP1252 is the logger's native code page.
func decoderFor(name string) *encoding.Decoder {
	if strings.EqualFold(name, utils.EncodingWindows1250) {
		return charmap.Windows1250.NewDecoder()
	}
	return charmap.Windows1252.NewDecoder()
}
