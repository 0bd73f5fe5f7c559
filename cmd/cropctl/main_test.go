package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"gifcrop/internal/region"
	"gifcrop/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) ([]types.GifConfig, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var configs []types.GifConfig
	require.NoError(t, json.Unmarshal(out.Bytes(), &configs))
	return configs, nil
}

func TestGridCommand(t *testing.T) {
	configs, err := run(t, "grid", "--width", "1920", "--height", "1080", "--rows", "3", "--columns", "2")
	require.NoError(t, err)
	require.Len(t, configs, 6)

	last := configs[5]
	assert.Equal(t, "grid_2_1.gif", last.Filename)
	assert.Equal(t, region.Percent, last.Crop.Unit)
	assert.InDelta(t, 50.0, last.Crop.X, 1e-9)
	assert.InDelta(t, 100.0/3*2, last.Crop.Y, 1e-9)
	assert.Equal(t, 15, last.Fps)
	assert.Equal(t, 5.0, last.Duration)
}

func TestLinesCommand(t *testing.T) {
	configs, err := run(t, "lines", "--width", "1000", "--height", "500", "--unit", "pixels", "--h", "250", "--v", "200,600")
	require.NoError(t, err)
	require.Len(t, configs, 6)

	assert.Equal(t, "line_0_0.gif", configs[0].Filename)
	assert.InDelta(t, 20.0, configs[0].Crop.Width, 1e-9)
	assert.InDelta(t, 50.0, configs[0].Crop.Height, 1e-9)
	assert.Equal(t, "line_1_2.gif", configs[5].Filename)
	assert.InDelta(t, 40.0, configs[5].Crop.Width, 1e-9)
}

func TestLinesCommandNoLines(t *testing.T) {
	configs, err := run(t, "lines", "--width", "640", "--height", "480")
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 100.0, configs[0].Crop.Width)
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "grid", "--width", "0", "--height", "1080")
	assert.Error(t, err)

	_, err = run(t, "grid", "--height", "1080")
	assert.Error(t, err)

	_, err = run(t, "lines", "--width", "640", "--height", "480", "--unit", "inches")
	assert.Error(t, err)
}
