package views

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
	"flightlog-converter/utils"
)

func TestCSVWriter_RawAndQuotedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path, 0)
	require.NoError(t, err)

	require.NoError(t, w.WriteRawRow([]string{"#tag", ` name="a b"`}))
	require.NoError(t, w.WriteHeader([]string{"A", "B"}))
	require.NoError(t, w.WriteRow([]string{"1", "x,y"}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#tag, name=\"a b\"\nA,B\n1,\"x,y\"\n", string(data))
	assert.Equal(t, uint64(1), w.Rows())
}

func TestPreamble_PaddedToWidestRow(t *testing.T) {
	cfg := utils.DefaultConverterConfig()
	p := NewPreamble(cfg.Airframe)

	width := len(models.DestinationRecord{}.CSVHeader())
	assert.Equal(t, width, p.Width())
	assert.Len(t, p.Metadata, width)
	assert.Len(t, p.Mnemonics, width)

	assert.Equal(t, "#airframe_info", p.Metadata[0])
	assert.Equal(t, ` airframe_name="Cirrus SR22"`, p.Metadata[2])
	assert.Equal(t, " mode=NORMAL", p.Metadata[7])
	assert.Equal(t, "", p.Metadata[width-1])
}

func TestPreamble_WriteTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	w, err := NewCSVWriter(path, 1024)
	require.NoError(t, err)

	p := NewPreamble(utils.DefaultConverterConfig().Airframe)
	require.NoError(t, p.WriteTo(w))
	require.NoError(t, w.Close())
	assert.Zero(t, w.Rows())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `#airframe_info, log_version="1.00", airframe_name="Cirrus SR22"`))
	for _, l := range lines {
		assert.Equal(t, p.Width()-1, strings.Count(l, ","), "every preamble line has the same column count")
	}
}
