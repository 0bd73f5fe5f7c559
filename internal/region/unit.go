// Package region holds the crop rectangles and split lines edited on top of
// the video, together with their pixel and percent conversions.
package region

import (
	"math"
	"strings"

	"gifcrop/pkg/errors"
)

type Unit string

const (
	Pixels  Unit = "pixels"
	Percent Unit = "percent"
)

// ParseUnit accepts an empty string as Pixels.
func ParseUnit(raw string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Pixels:
		return Pixels, nil
	case Percent:
		return Percent, nil
	default:
		return "", errors.WrapWithDetail(errors.CodeUnsupportedUnit, errors.ErrUnsupportedUnit.Message, raw, nil)
	}
}

func (u Unit) OrDefault() Unit {
	if u == "" {
		return Pixels
	}
	return u
}

// Convert rescales a single coordinate measured against extent pixels.
func Convert(value float64, from, to Unit, extent float64) float64 {
	from, to = from.OrDefault(), to.OrDefault()
	if from == to || extent <= 0 {
		return value
	}
	if to == Percent {
		return value / extent * 100
	}
	return value / 100 * extent
}

// Round rounds half away from zero like the render backend expects.
func Round(v float64) float64 {
	return math.Round(v)
}
