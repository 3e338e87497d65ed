package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-converter/models"
)

func TestRun_OutputPathIsFile(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "N1_FLIGHT.CSV"),
		[]byte("Date,Time,SysTime,Pitch\r\n20230415,14:00:00,0,POWER ON\r\n20230415,14:00:01,1,2.0\r\n"), 0o644))
	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(out, nil, 0o644))

	err := run(context.Background(), in, out, options{})
	assert.ErrorIs(t, err, models.ErrNotDirectory)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRun_CreatesOutputDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, run(context.Background(), in, out, options{}))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRun_InputNotDirectory(t *testing.T) {
	in := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(in, nil, 0o644))
	out := filepath.Join(t.TempDir(), "out")

	assert.ErrorIs(t, run(context.Background(), in, out, options{}), models.ErrNotDirectory)
	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExecute_ExitCodes(t *testing.T) {
	assert.Equal(t, 1, execute("only-one-arg"))
	assert.Equal(t, 0, execute(t.TempDir(), filepath.Join(t.TempDir(), "out")))
}
