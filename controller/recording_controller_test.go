package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
	"flightlog-converter/utils"
)

func flightBucket(offsetS int) *models.Bucket {
	ts := t0.Add(time.Duration(offsetS) * time.Second)
	return &models.Bucket{Time: ts, Flight: []models.FlightRow{{
		RowMeta: models.RowMeta{Timestamp: ts, Source: "f", Line: offsetS},
		Pitch:   ptr(1.5),
	}}}
}

func boundaryAt(offsetS int) models.FlightBoundary {
	ts := t0.Add(time.Duration(offsetS) * time.Second)
	return models.FlightBoundary{Start: ts, End: ts}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRecordingController_SplitsFlights(t *testing.T) {
	dir := t.TempDir()
	cfg := utils.DefaultConverterConfig()
	rc, err := NewRecordingController(dir, cfg, []models.FlightBoundary{boundaryAt(10), boundaryAt(100)})
	require.NoError(t, err)

	var buckets []*models.Bucket
	for _, s := range []int{5, 10, 11, 12, 100, 101} {
		buckets = append(buckets, flightBucket(s))
	}
	require.NoError(t, rc.Run(context.Background(), buckets, utils.NopProgress{}))

	assert.Equal(t, []string{"log_20230415_140010_XXXX.csv", "log_20230415_140140_XXXX.csv"}, listDir(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, "log_20230415_140010_XXXX.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3+3)
	assert.True(t, strings.HasPrefix(lines[0], "#airframe_info,"))
	assert.True(t, strings.HasPrefix(lines[2], "Lcl Date,Lcl Time,UTCOfst,"))
	assert.True(t, strings.HasPrefix(lines[3], "2023-04-15,14:00:10,+00:00,"))

	stats := rc.Stats()
	assert.Equal(t, 2, stats.FlightsWritten)
	assert.Equal(t, 0, stats.FlightsDeleted)
	assert.Equal(t, uint64(5), stats.RecordsWritten)
	assert.Equal(t, uint64(1), stats.RecordsDropped)
}

func TestRecordingController_DeletesEmptyFlights(t *testing.T) {
	dir := t.TempDir()
	cfg := utils.DefaultConverterConfig()
	// Two power cycles before the first record: the first never gets a row.
	rc, err := NewRecordingController(dir, cfg, []models.FlightBoundary{boundaryAt(0), boundaryAt(60), boundaryAt(500)})
	require.NoError(t, err)

	require.NoError(t, rc.Run(context.Background(), []*models.Bucket{flightBucket(70), flightBucket(71)}, utils.NopProgress{}))

	assert.Equal(t, []string{"log_20230415_140100_XXXX.csv"}, listDir(t, dir))
	assert.Equal(t, 1, rc.Stats().FlightsDeleted)
	assert.Equal(t, 1, rc.Stats().FlightsWritten)
}

func TestRecordingController_NoBoundariesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	rc, err := NewRecordingController(dir, utils.DefaultConverterConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, rc.Run(context.Background(), []*models.Bucket{flightBucket(1)}, utils.NopProgress{}))
	assert.Empty(t, listDir(t, dir))
	assert.Equal(t, uint64(1), rc.Stats().RecordsDropped)
}

func TestPrepareOutputDir(t *testing.T) {
	dir := t.TempDir()

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, PrepareOutputDir(nested))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.ErrorIs(t, PrepareOutputDir(file), models.ErrNotDirectory)

	_, err = NewRecordingController(file, utils.DefaultConverterConfig(), nil)
	assert.ErrorIs(t, err, models.ErrNotDirectory)
}
