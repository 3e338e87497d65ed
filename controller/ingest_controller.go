package controller

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"flightlog-converter/models"
	"flightlog-converter/services/ingest"
	"flightlog-converter/utils"
)

// SourceFile is one discovered input log.
type SourceFile struct {
	Path      string
	Subsystem models.Subsystem
}

// DiscoverSources walks root and returns every *_ENGINE/_FLIGHT/_SYSTEM.CSV
// file, sorted by path. Other files are ignored. Only an unreadable root is
// fatal; unreadable entries below it are logged and skipped.
func DiscoverSources(root string) ([]SourceFile, error) {
	var out []SourceFile
	if err := filepath.WalkDir(root, discoverVisitor(root, &out)); err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}
	slices.SortFunc(out, func(a, b SourceFile) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

func discoverVisitor(root string, out *[]SourceFile) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			utils.L().Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if sub, ok := models.SubsystemForFile(d.Name()); ok {
			*out = append(*out, SourceFile{Path: path, Subsystem: sub})
		}
		return nil
	}
}

// IngestStats are the totals over all files.
type IngestStats struct {
	Files    int
	Skipped  int
	Rows     uint64
	Rejected uint64
	Markers  uint64
}

// IngestController owns one reader per source file and runs them with a
// bounded number of concurrent workers. Rows go to a single output channel;
// power-on markers go to the sink.
type IngestController struct {
	readers  []*ingest.FileReader
	workers  int
	sink     ingest.MarkerSink
	progress utils.ProgressSink

	Out chan models.Row

	done    atomic.Int64
	skipped atomic.Int64
}

// NewIngestController creates readers for files. workers <= 0 means
// GOMAXPROCS.
func NewIngestController(files []SourceFile, cfg utils.IngestConfig, sink ingest.MarkerSink, progress utils.ProgressSink) *IngestController {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if progress == nil {
		progress = utils.NopProgress{}
	}
	ic := &IngestController{
		workers:  workers,
		sink:     sink,
		progress: progress,
		Out:      make(chan models.Row, max(cfg.ChannelBuffer, 0)),
	}
	for _, f := range files {
		ic.readers = append(ic.readers, ingest.NewFileReader(f.Path, f.Subsystem, cfg.Encoding))
	}
	return ic
}

// Run reads every file and closes Out when all readers have finished. A file
// that cannot be read is logged and skipped; only cancellation is returned.
func (ic *IngestController) Run(ctx context.Context) error {
	defer close(ic.Out)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ic.workers)
	total := len(ic.readers)

	utils.L().Info("ingest started", "files", total, "workers", ic.workers)
	for _, r := range ic.readers {
		g.Go(func() error {
			err := r.Run(gctx, ic.Out, ic.sink)
			if err != nil && gctx.Err() == nil {
				ic.skipped.Add(1)
				utils.L().Warn("file skipped", "file", r.Path(), "error", err)
				err = nil
			}
			n := ic.done.Add(1)
			ic.progress.Report(float64(n)/float64(max(total, 1)), filepath.Base(r.Path()))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Stats sums the per-file counters.
func (ic *IngestController) Stats() IngestStats {
	s := IngestStats{Files: len(ic.readers), Skipped: int(ic.skipped.Load())}
	for _, r := range ic.readers {
		p, rej, m := r.Stats()
		s.Rows += p
		s.Rejected += rej
		s.Markers += m
	}
	return s
}

// LogStats prints the per-file produce/reject counters at debug level.
func (ic *IngestController) LogStats() {
	for _, r := range ic.readers {
		p, rej, m := r.Stats()
		utils.L().Debug("file ingested", "file", r.Path(), "rows", p, "rejected", rej, "markers", m)
	}
}
