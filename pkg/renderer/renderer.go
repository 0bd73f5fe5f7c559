// Package renderer is the client of the external GIF rendering service.
package renderer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gifcrop/pkg/errors"

	"github.com/go-resty/resty/v2"
)

const (
	EndpointGridCrop    = "/api/grid-crop"
	EndpointLineCrop    = "/api/line-crop"
	EndpointProcessGifs = "/api/process-gifs"
)

type Crop struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type GifConfig struct {
	Filename  string  `json:"filename"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Fps       int     `json:"fps"`
	Scale     *int    `json:"scale"`
	Crop      Crop    `json:"crop"`
}

type GridFields struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// LineFields carries lines in the legacy bare-position form.
type LineFields struct {
	HorizontalLines []float64 `json:"horizontal_lines"`
	VerticalLines   []float64 `json:"vertical_lines"`
	LineUnit        string    `json:"line_unit"`
}

// Request is the JSON body of every render endpoint. The grid and line
// fields are only present for their endpoints.
type Request struct {
	VideoID    string      `json:"video_id"`
	GifConfigs []GifConfig `json:"gif_configs"`
	*GridFields
	*LineFields
}

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Submitter hands a request to the render service.
type Submitter interface {
	Submit(ctx context.Context, endpoint string, req Request) (*Result, error)
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) Submit(ctx context.Context, endpoint string, req Request) (*Result, error) {
	result := &Result{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post(endpoint)
	if err != nil {
		return nil, errors.WrapWithDetail(errors.CodeRenderSubmit, errors.ErrRenderSubmit.Message, endpoint, err)
	}
	if resp.IsError() {
		return nil, errors.WrapWithDetail(errors.CodeRenderSubmit, errors.ErrRenderSubmit.Message, endpoint,
			fmt.Errorf("status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
	}
	return result, nil
}
