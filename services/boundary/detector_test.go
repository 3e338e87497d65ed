package boundary

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
)

var base = time.Date(2023, 4, 15, 14, 0, 0, 0, time.UTC)

func marker(offsetS int, source string) models.Marker {
	return models.Marker{
		Kind:      models.MarkerPowerOn,
		Timestamp: base.Add(time.Duration(offsetS) * time.Second),
		Source:    source,
	}
}

func TestGroup_SplitsOnGap(t *testing.T) {
	got := Group([]models.Marker{
		marker(45, "a_ENGINE.CSV"),
		marker(0, "a_FLIGHT.CSV"),
		marker(10, "a_SYSTEM.CSV"),
	}, DefaultWindow)

	require.Len(t, got, 2)
	assert.Equal(t, base, got[0].Start)
	assert.Equal(t, base.Add(10*time.Second), got[0].End)
	assert.Equal(t, []string{"a_FLIGHT.CSV", "a_SYSTEM.CSV"}, got[0].Sources)

	assert.Equal(t, base.Add(45*time.Second), got[1].Start)
	assert.Equal(t, []string{"a_ENGINE.CSV"}, got[1].Sources)
}

func TestGroup_ExactWindowMerges(t *testing.T) {
	got := Group([]models.Marker{marker(0, "x"), marker(30, "y")}, DefaultWindow)
	require.Len(t, got, 1)

	got = Group([]models.Marker{marker(0, "x"), marker(31, "y")}, DefaultWindow)
	require.Len(t, got, 2)
}

func TestGroup_GapMeasuredFromPreviousMarker(t *testing.T) {
	// A chain of markers each 20 s apart stays one boundary.
	got := Group([]models.Marker{marker(0, "a"), marker(20, "b"), marker(40, "c")}, DefaultWindow)
	require.Len(t, got, 1)
	assert.Equal(t, base.Add(40*time.Second), got[0].End)
}

func TestGroup_DistinctSources(t *testing.T) {
	got := Group([]models.Marker{marker(0, "a"), marker(1, "a"), marker(2, "b")}, DefaultWindow)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b"}, got[0].Sources)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil, DefaultWindow))
}

func TestDetector_ConcurrentAdds(t *testing.T) {
	d := NewDetector()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.AddMarker(marker(i*100, "f"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, d.Count())
	b := d.Boundaries(DefaultWindow)
	require.Len(t, b, 50)
	for i := 1; i < len(b); i++ {
		assert.True(t, b[i-1].Start.Before(b[i].Start))
	}
}
