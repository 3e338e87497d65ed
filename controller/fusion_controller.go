package controller

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"flightlog-converter/models"
	"flightlog-converter/utils"
)

// Intervals are the nominal sampling periods of the three streams. A row is
// spread over every bucket within half an interval of its timestamp so a slow
// stream stays visible until its next sample.
type Intervals struct {
	Engine time.Duration
	Flight time.Duration
	System time.Duration
}

// IntervalsFromConfig converts the millisecond settings.
func IntervalsFromConfig(cfg utils.FusionConfig) Intervals {
	return Intervals{
		Engine: time.Duration(cfg.EngineIntervalMs) * time.Millisecond,
		Flight: time.Duration(cfg.FlightIntervalMs) * time.Millisecond,
		System: time.Duration(cfg.SystemIntervalMs) * time.Millisecond,
	}
}

func (iv Intervals) of(s models.Subsystem) time.Duration {
	switch s {
	case models.SubsystemEngine:
		return iv.Engine
	case models.SubsystemSystem:
		return iv.System
	default:
		return iv.Flight
	}
}

// FusionController accumulates parsed rows into one-second buckets.
//
// Readers hand rows over a channel to a single drain goroutine, which is the
// only writer of the bucket map while ingestion runs. Aggregation happens
// later, per field, in the transform stage; the controller only decides which
// rows meet in which bucket.
type FusionController struct {
	mu      sync.Mutex
	buckets map[int64]*models.Bucket

	intervals Intervals
	ingested  uint64
	done      chan struct{}
}

// NewFusionController creates a fusion stage.
func NewFusionController(iv Intervals) *FusionController {
	return &FusionController{
		buckets:   make(map[int64]*models.Bucket),
		intervals: iv,
		done:      make(chan struct{}),
	}
}

// Start launches the drain goroutine. It returns once in is closed or ctx is
// cancelled; Wait blocks until then.
func (fc *FusionController) Start(ctx context.Context, in <-chan models.Row) {
	go fc.drain(ctx, in)
	utils.L().Debug("fusion controller started",
		"engine_interval", fc.intervals.Engine,
		"flight_interval", fc.intervals.Flight,
		"system_interval", fc.intervals.System)
}

func (fc *FusionController) drain(ctx context.Context, in <-chan models.Row) {
	defer close(fc.done)
	for {
		select {
		case <-ctx.Done():
			return
		case row, ok := <-in:
			if !ok {
				return
			}
			fc.Add(row)
		}
	}
}

// Wait blocks until the drain goroutine has finished.
func (fc *FusionController) Wait() {
	<-fc.done
}

// Add inserts row into every bucket it covers.
func (fc *FusionController) Add(row models.Row) {
	keys := utils.CoveredSeconds(row.Meta().Timestamp, fc.intervals.of(row.Subsystem()))

	fc.mu.Lock()
	defer fc.mu.Unlock()
	for _, k := range keys {
		b := fc.bucket(k)
		switch r := row.(type) {
		case models.EngineRow:
			b.Engine = append(b.Engine, r)
		case models.FlightRow:
			b.Flight = append(b.Flight, r)
		case models.SystemRow:
			b.System = append(b.System, r)
		}
	}
	atomic.AddUint64(&fc.ingested, 1)
}

func (fc *FusionController) bucket(k time.Time) *models.Bucket {
	b, ok := fc.buckets[k.Unix()]
	if !ok {
		b = &models.Bucket{Time: k}
		fc.buckets[k.Unix()] = b
	}
	return b
}

// Buckets returns every bucket in ascending time order with each subsystem's
// rows in canonical order, so aggregation does not depend on the order the
// readers delivered them in.
func (fc *FusionController) Buckets() []*models.Bucket {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	out := make([]*models.Bucket, 0, len(fc.buckets))
	for _, b := range fc.buckets {
		slices.SortFunc(b.Engine, func(x, y models.EngineRow) int { return x.RowMeta.Compare(y.RowMeta) })
		slices.SortFunc(b.Flight, func(x, y models.FlightRow) int { return x.RowMeta.Compare(y.RowMeta) })
		slices.SortFunc(b.System, func(x, y models.SystemRow) int { return x.RowMeta.Compare(y.RowMeta) })
		out = append(out, b)
	}
	slices.SortFunc(out, func(x, y *models.Bucket) int { return x.Time.Compare(y.Time) })
	return out
}

// RowsIngested returns the number of rows added so far.
func (fc *FusionController) RowsIngested() uint64 {
	return atomic.LoadUint64(&fc.ingested)
}
