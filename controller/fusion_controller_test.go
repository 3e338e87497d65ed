package controller

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
	"flightlog-converter/services/transform"
	"flightlog-converter/utils"
)

var t0 = time.Date(2023, 4, 15, 14, 0, 0, 0, time.UTC)

func defaultIntervals() Intervals {
	return IntervalsFromConfig(utils.DefaultConverterConfig().Fusion)
}

func ptr[T any](v T) *T { return &v }

func TestFusionController_Coverage(t *testing.T) {
	fc := NewFusionController(defaultIntervals())
	fc.Add(models.EngineRow{RowMeta: models.RowMeta{Timestamp: t0.Add(10 * time.Second)}, RPM: ptr(int32(2400))})
	fc.Add(models.FlightRow{RowMeta: models.RowMeta{Timestamp: t0.Add(10 * time.Second)}, Pitch: ptr(1.0)})
	fc.Add(models.SystemRow{RowMeta: models.RowMeta{Timestamp: t0.Add(10 * time.Second)}, SelectedIAS: ptr(int32(120))})

	buckets := fc.Buckets()
	require.Len(t, buckets, 5)
	for i, b := range buckets {
		offset := time.Duration(8+i) * time.Second
		assert.Equal(t, t0.Add(offset), b.Time)
		assert.Len(t, b.Engine, 1, "engine spans ±2 s")
		assert.Equal(t, offset >= 9*time.Second && offset <= 11*time.Second, b.Has(models.SubsystemSystem), "system spans ±1 s")
		assert.Equal(t, offset == 10*time.Second, b.Has(models.SubsystemFlight), "flight stays in its own second")
	}
	assert.Equal(t, uint64(3), fc.RowsIngested())
}

func TestFusionController_SingleRowRoundTrip(t *testing.T) {
	fc := NewFusionController(defaultIntervals())
	fc.Add(models.FlightRow{
		RowMeta:          models.RowMeta{Timestamp: t0, Source: "a_FLIGHT.CSV", Line: 2},
		Pitch:            ptr(3.25),
		Heading:          ptr(uint16(123)),
		PressureAltitude: ptr(int32(4500)),
	})

	buckets := fc.Buckets()
	require.Len(t, buckets, 1)
	d := transform.Transform(buckets[0])
	assert.InDelta(t, 3.25, *d.Pitch, 1e-12)
	assert.InDelta(t, 123.0, *d.MagneticHeading, 1e-9)
	assert.Equal(t, int32(4500), *d.PressureAltitude)
}

// Rows arriving in any order from any number of goroutines fuse to the same
// output.
func TestFusionController_DeterministicUnderConcurrency(t *testing.T) {
	var rows []models.Row
	for i := range 200 {
		ts := t0.Add(time.Duration(i/4) * time.Second)
		src := fmt.Sprintf("f%d_SYSTEM.CSV", i%3)
		rows = append(rows, models.SystemRow{
			RowMeta:        models.RowMeta{Timestamp: ts, Source: src, Line: i},
			ActiveWaypoint: ptr([]string{"KSQL", "KPAO", "KOAK"}[i%3]),
			FDPitch:        ptr(float64(i%7) * 0.1),
		})
	}

	render := func(seed int64, workers int) [][]string {
		shuffled := append([]models.Row(nil), rows...)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		fc := NewFusionController(defaultIntervals())
		in := make(chan models.Row, 8)
		fc.Start(context.Background(), in)

		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := w; i < len(shuffled); i += workers {
					in <- shuffled[i]
				}
			}()
		}
		wg.Wait()
		close(in)
		fc.Wait()

		var out [][]string
		for _, b := range fc.Buckets() {
			out = append(out, transform.Transform(b).CSVRow())
		}
		return out
	}

	want := render(1, 1)
	require.NotEmpty(t, want)
	for seed := int64(2); seed < 6; seed++ {
		assert.Equal(t, want, render(seed, 8), "seed %d", seed)
	}
}

func TestFusionController_StopsOnCancel(t *testing.T) {
	fc := NewFusionController(defaultIntervals())
	ctx, cancel := context.WithCancel(context.Background())
	fc.Start(ctx, make(chan models.Row))
	cancel()

	done := make(chan struct{})
	go func() {
		fc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain goroutine did not stop")
	}
}
