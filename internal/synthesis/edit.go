package synthesis

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gifcrop/internal/geometry"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"

	"github.com/samber/lo"
)

const (
	FieldFilename   = "filename"
	FieldStartTime  = "start_time"
	FieldDuration   = "duration"
	FieldFps        = "fps"
	FieldScale      = "scale"
	FieldCropX      = "crop.x"
	FieldCropY      = "crop.y"
	FieldCropWidth  = "crop.width"
	FieldCropHeight = "crop.height"

	MinFps = 1
	MaxFps = 30

	// MinDuration keeps a clip from being edited down to nothing.
	MinDuration = 0.1
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal of raw; anything unreadable is 0.
func ParseNumber(raw string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseScale returns nil for empty, unreadable or non-positive input.
func ParseScale(raw string) *int {
	v := int(ParseNumber(raw))
	if v <= 0 {
		return nil
	}
	return lo.ToPtr(v)
}

// EditField applies a raw form value to one config field. Numeric fields
// never fail: bad input becomes 0 and values are clamped to their ranges.
func EditField(frame geometry.VideoFrame, existing []types.GifConfig, index int, field, raw string) ([]types.GifConfig, error) {
	if index < 0 || index >= len(existing) {
		return existing, errors.ErrRegionNotFound
	}
	out := types.CloneConfigs(existing)
	c := &out[index]

	switch field {
	case FieldFilename:
		c.Filename = strings.TrimSpace(raw)
	case FieldStartTime:
		c.StartTime = max(ParseNumber(raw), 0)
	case FieldDuration:
		c.Duration = max(ParseNumber(raw), MinDuration)
	case FieldFps:
		c.Fps = lo.Clamp(int(ParseNumber(raw)), MinFps, MaxFps)
	case FieldScale:
		c.Scale = ParseScale(raw)
	case FieldCropX:
		c.Crop.X = ParseNumber(raw)
	case FieldCropY:
		c.Crop.Y = ParseNumber(raw)
	case FieldCropWidth:
		c.Crop.Width = ParseNumber(raw)
	case FieldCropHeight:
		c.Crop.Height = ParseNumber(raw)
	default:
		return existing, errors.WrapWithDetail(errors.CodeInvalidParams, errors.ErrInvalidParams.Message, "unknown field: "+field, nil)
	}

	if strings.HasPrefix(field, "crop.") && frame.Known() {
		c.Crop = c.Crop.ClampTo(frame)
	}
	return out, nil
}
