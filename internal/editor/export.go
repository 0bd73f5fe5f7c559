package editor

import (
	"strings"

	"gifcrop/internal/region"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"
	"gifcrop/pkg/renderer"

	"github.com/samber/lo"
)

// Export is a render request ready for handoff.
type Export struct {
	SessionID string
	Method    types.CropMethod
	Endpoint  string
	Request   renderer.Request
}

// Process builds the render request for the current configs.
func (s *Session) Process() (Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if strings.TrimSpace(s.videoID) == "" {
		return Export{}, errors.WrapWithDetail(errors.CodeInvalidParams, errors.ErrInvalidParams.Message, "video_id is empty", nil)
	}
	endpoint, req, err := BuildRequest(s.videoID, s.params, s.configs)
	if err != nil {
		return Export{}, err
	}
	return Export{SessionID: s.id, Method: s.params.Method, Endpoint: endpoint, Request: req}, nil
}

// BuildRequest picks the endpoint for the method and converts configs into
// the render service wire form.
func BuildRequest(videoID string, params types.MethodParams, configs []types.GifConfig) (string, renderer.Request, error) {
	if len(configs) == 0 {
		return "", renderer.Request{}, errors.ErrNoConfigs
	}

	req := renderer.Request{
		VideoID:    videoID,
		GifConfigs: lo.Map(configs, func(c types.GifConfig, _ int) renderer.GifConfig { return wireConfig(c) }),
	}
	switch params.Method {
	case types.MethodGrid:
		req.GridFields = &renderer.GridFields{
			Rows:    max(params.Grid.Rows, types.MinGridCells),
			Columns: max(params.Grid.Columns, types.MinGridCells),
		}
		return renderer.EndpointGridCrop, req, nil
	case types.MethodLines:
		req.LineFields = &renderer.LineFields{
			HorizontalLines: positions(params.Lines.Horizontal),
			VerticalLines:   positions(params.Lines.Vertical),
			LineUnit:        string(params.Lines.Unit.OrDefault()),
		}
		return renderer.EndpointLineCrop, req, nil
	default:
		return renderer.EndpointProcessGifs, req, nil
	}
}

func positions(lines []region.SplitLine) []float64 {
	return lo.Map(lines, func(l region.SplitLine, _ int) float64 { return l.Position })
}

func wireConfig(c types.GifConfig) renderer.GifConfig {
	var scale *int
	if c.Scale != nil {
		scale = lo.ToPtr(*c.Scale)
	}
	return renderer.GifConfig{
		Filename:  c.Filename,
		StartTime: c.StartTime,
		Duration:  c.Duration,
		Fps:       c.Fps,
		Scale:     scale,
		Crop: renderer.Crop{
			X:      c.Crop.X,
			Y:      c.Crop.Y,
			Width:  c.Crop.Width,
			Height: c.Crop.Height,
			Unit:   string(c.Crop.Unit.OrDefault()),
		},
	}
}
