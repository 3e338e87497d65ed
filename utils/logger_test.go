package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf)
	l.AddAttrs("run", "r-1")

	l.Debug("hidden")
	l.Info("file skipped", "file", "a_ENGINE.CSV")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="file skipped"`)
	assert.Contains(t, out, "file=a_ENGINE.CSV")
	assert.Contains(t, out, "run=r-1")

	assert.False(t, l.Enabled(DEBUG))
	l.SetLevel(DEBUG)
	assert.True(t, l.Enabled(DEBUG))
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(ERROR, &buf)
	l.Warn("dropped")
	l.Error("conversion failed", "error", "disk full")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="disk full"`)
}

func TestL_ConcurrentFirstUse(t *testing.T) {
	const n = 16
	got := make([]*Logger, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = L()
		}()
	}
	wg.Wait()

	for _, l := range got {
		assert.NotNil(t, l)
		assert.Same(t, got[0], l)
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestProgress_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Report(0.5, "reading")
	p.Report(1.5, "reading")
	p.Done()
	assert.Empty(t, buf.String(), "no bar drawn when not a terminal")
}
