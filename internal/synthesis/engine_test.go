package synthesis

import (
	"testing"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hd = geometry.VideoFrame{Width: 1920, Height: 1080}

func newTestEngine() *Engine {
	return NewEngine(types.ClipDefaults{StartTime: 0, Duration: 5, Fps: 15})
}

func assertTiles(t *testing.T, configs []types.GifConfig) {
	t.Helper()
	area := 0.0
	for _, c := range configs {
		assert.Equal(t, region.Percent, c.Crop.Unit)
		assert.GreaterOrEqual(t, c.Crop.X, 0.0)
		assert.GreaterOrEqual(t, c.Crop.Y, 0.0)
		assert.LessOrEqual(t, c.Crop.X+c.Crop.Width, 100.0)
		assert.LessOrEqual(t, c.Crop.Y+c.Crop.Height, 100.0)
		area += c.Crop.Width * c.Crop.Height
	}
	assert.InDelta(t, 100*100, area, 1e-6)
}

func TestGridTiling(t *testing.T) {
	e := newTestEngine()
	for rows := 1; rows <= 4; rows++ {
		for cols := 1; cols <= 4; cols++ {
			configs := e.Grid(types.GridParams{Rows: rows, Columns: cols}, nil)
			require.Len(t, configs, rows*cols)
			assertTiles(t, configs)
		}
	}

	configs := e.Grid(types.GridParams{Rows: 2, Columns: 3}, nil)
	assert.Equal(t, "grid_0_0.gif", configs[0].Filename)
	assert.Equal(t, "grid_0_2.gif", configs[2].Filename)
	assert.Equal(t, "grid_1_0.gif", configs[3].Filename)
	assert.InDelta(t, 100.0/3*2, configs[5].Crop.X, 1e-9)
	assert.InDelta(t, 50, configs[5].Crop.Y, 1e-9)
	assert.Equal(t, 15, configs[0].Fps)
	assert.Equal(t, 5.0, configs[0].Duration)
	assert.Nil(t, configs[0].Scale)
}

func TestGridCounts(t *testing.T) {
	e := newTestEngine()
	assert.Len(t, e.Grid(types.GridParams{Rows: 0, Columns: -3}, nil), 1)

	configs := e.Grid(types.GridParams{Rows: 12, Columns: 3}, nil)
	require.Len(t, configs, 36)
	assertTiles(t, configs)
	assert.Equal(t, "grid_11_2.gif", configs[35].Filename)
}

func TestGridCellsStayInsideFrame(t *testing.T) {
	e := newTestEngine()
	for rows := 1; rows <= 16; rows++ {
		for cols := 1; cols <= 16; cols++ {
			configs := e.Grid(types.GridParams{Rows: rows, Columns: cols}, nil)
			require.Len(t, configs, rows*cols)
			for k, c := range configs {
				if c.Crop.X+c.Crop.Width > 100 || c.Crop.Y+c.Crop.Height > 100 {
					t.Fatalf("grid %dx%d slot %d leaves the frame: %+v", rows, cols, k, c.Crop)
				}
			}
			// neighbours share an edge
			if cols > 1 {
				assert.Equal(t, configs[1].Crop.X, gridEdge(1, cols))
			}
		}
	}
}

func TestGridPreservesEditsAcrossCountChange(t *testing.T) {
	e := newTestEngine()
	configs := e.Grid(types.GridParams{Rows: 2, Columns: 2}, nil)
	configs[0].Filename = "intro.gif"
	configs[0].Fps = 24
	configs[0].Scale = lo.ToPtr(320)
	configs[3].Duration = 9

	grown := e.Grid(types.GridParams{Rows: 3, Columns: 2}, configs)
	require.Len(t, grown, 6)
	assert.Equal(t, "intro.gif", grown[0].Filename)
	assert.Equal(t, 24, grown[0].Fps)
	assert.Equal(t, 320, *grown[0].Scale)
	assert.Equal(t, 9.0, grown[3].Duration)
	assert.Equal(t, "grid_2_1.gif", grown[5].Filename)
	assert.InDelta(t, 100.0/3, grown[0].Crop.Height, 1e-9)

	shrunk := e.Grid(types.GridParams{Rows: 1, Columns: 1}, grown)
	require.Len(t, shrunk, 1)
	assert.Equal(t, "intro.gif", shrunk[0].Filename)
	assert.Equal(t, region.CropRegion{X: 0, Y: 0, Width: 100, Height: 100, Unit: region.Percent}, shrunk[0].Crop)

	// the input slice is never aliased
	*grown[0].Scale = 1
	assert.Equal(t, 320, *configs[0].Scale)
}

func TestLinesTiling(t *testing.T) {
	e := newTestEngine()
	params := types.LineParams{
		Unit: region.Pixels,
		Horizontal: []region.SplitLine{
			region.FullSpan(region.Horizontal, 810, region.Pixels, hd),
			region.FullSpan(region.Horizontal, 270, region.Pixels, hd),
		},
		Vertical: []region.SplitLine{
			{Axis: region.Vertical, Position: 960, SpanStart: 100, SpanEnd: 200},
		},
	}

	configs := e.Lines(hd, params, nil)
	require.Len(t, configs, 6)
	assertTiles(t, configs)

	assert.Equal(t, "line_0_0.gif", configs[0].Filename)
	assert.Equal(t, region.CropRegion{X: 0, Y: 0, Width: 50, Height: 25, Unit: region.Percent}, configs[0].Crop)
	assert.Equal(t, "line_1_1.gif", configs[3].Filename)
	assert.Equal(t, region.CropRegion{X: 50, Y: 25, Width: 50, Height: 50, Unit: region.Percent}, configs[3].Crop)
	assert.Equal(t, "line_2_0.gif", configs[4].Filename)
	assert.Equal(t, region.CropRegion{X: 0, Y: 75, Width: 50, Height: 25, Unit: region.Percent}, configs[4].Crop)
}

func TestLinesPercentUnitAndNoLines(t *testing.T) {
	e := newTestEngine()
	configs := e.Lines(hd, types.LineParams{Unit: region.Percent}, nil)
	require.Len(t, configs, 1)
	assert.Equal(t, region.CropRegion{Width: 100, Height: 100, Unit: region.Percent}, configs[0].Crop)

	configs = e.Lines(hd, types.LineParams{
		Unit:     region.Percent,
		Vertical: []region.SplitLine{region.FullSpan(region.Vertical, 30, region.Percent, hd)},
	}, nil)
	require.Len(t, configs, 2)
	assert.Equal(t, 30.0, configs[0].Crop.Width)
	assert.Equal(t, 70.0, configs[1].Crop.Width)
}

func TestLinesClampOutOfRangePositions(t *testing.T) {
	e := newTestEngine()
	configs := e.Lines(hd, types.LineParams{
		Unit:       region.Pixels,
		Horizontal: []region.SplitLine{region.FullSpan(region.Horizontal, 5000, region.Pixels, hd)},
	}, nil)
	require.Len(t, configs, 2)
	assert.Equal(t, 100.0, configs[0].Crop.Height)
	assert.Equal(t, 0.0, configs[1].Crop.Height)
	assert.LessOrEqual(t, configs[1].Crop.Y+configs[1].Crop.Height, 100.0)
}

func TestDragSynthesis(t *testing.T) {
	e := newTestEngine()
	regions := []region.CropRegion{
		{X: 10, Y: 10, Width: 90, Height: 70, Unit: region.Pixels},
		{X: 200.4, Y: 300.6, Width: 50, Height: 60, Unit: region.Pixels},
	}

	configs := e.Drag(regions, nil)
	require.Len(t, configs, 2)
	assert.Equal(t, "drag_1.gif", configs[0].Filename)
	assert.Equal(t, "drag_2.gif", configs[1].Filename)
	assert.Equal(t, region.CropRegion{X: 200, Y: 301, Width: 50, Height: 60, Unit: region.Pixels}, configs[1].Crop)

	configs[0].Filename = "face.gif"
	configs[0].StartTime = 3

	// unchanged rectangle: slot reused as is
	again := e.Drag(regions, configs)
	assert.Equal(t, configs, again)

	// moved rectangle: crop replaced, user fields kept
	regions[0].X = 40
	moved := e.Drag(regions, configs)
	assert.Equal(t, "face.gif", moved[0].Filename)
	assert.Equal(t, 3.0, moved[0].StartTime)
	assert.Equal(t, 40.0, moved[0].Crop.X)

	assert.Empty(t, e.Drag(nil, configs))
	assert.NotNil(t, e.Drag(nil, configs))
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	e := newTestEngine()
	cases := []types.MethodParams{
		{Method: types.MethodGrid, Grid: types.GridParams{Rows: 3, Columns: 4}},
		{Method: types.MethodLines, Lines: types.LineParams{
			Unit:       region.Pixels,
			Horizontal: []region.SplitLine{region.FullSpan(region.Horizontal, 333, region.Pixels, hd)},
			Vertical:   []region.SplitLine{region.FullSpan(region.Vertical, 777, region.Pixels, hd)},
		}},
		{Method: types.MethodDrag, DragRegions: []region.CropRegion{{X: 1, Y: 2, Width: 300, Height: 400, Unit: region.Pixels}}},
	}
	for _, params := range cases {
		t.Run(string(params.Method), func(t *testing.T) {
			first, err := e.Synthesize(hd, params, nil)
			require.NoError(t, err)
			second, err := e.Synthesize(hd, params, first)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestSynthesizeBeforeFrameIsKnown(t *testing.T) {
	e := newTestEngine()
	existing := []types.GifConfig{{Filename: "keep.gif"}}

	out, err := e.Synthesize(geometry.VideoFrame{}, types.DefaultMethodParams(types.MethodGrid), existing)
	assert.True(t, errors.Is(err, errors.CodeFrameUnknown))
	assert.Equal(t, existing, out)
}

func TestSynthesizeManualKeepsList(t *testing.T) {
	e := newTestEngine()
	existing := []types.GifConfig{{Filename: "a.gif"}, {Filename: "b.gif"}}
	out, err := e.Synthesize(hd, types.DefaultMethodParams(types.MethodManual), existing)
	require.NoError(t, err)
	assert.Equal(t, existing, out)
}
