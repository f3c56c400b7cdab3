// Package spatial parses, validates and canonicalizes free-text bounding boxes.
package spatial

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Buffer is how far, in degrees, a dataset's extent may extend past its site's default bbox.
const Buffer = 1.0

var coordPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// BBox is a bounding box in decimal degrees.
type BBox struct {
	West  float64
	East  float64
	North float64
	South float64
}

// Envelope renders the box as ENVELOPE(west,east,north,south).
func (b BBox) Envelope() string {
	return fmt.Sprintf("ENVELOPE(%s,%s,%s,%s)",
		formatCoord(b.West), formatCoord(b.East), formatCoord(b.North), formatCoord(b.South))
}

// Expand grows the box by d degrees on every side, clamped to the valid coordinate range.
func (b BBox) Expand(d float64) BBox {
	return BBox{
		West:  math.Max(b.West-d, -180),
		East:  math.Min(b.East+d, 180),
		North: math.Min(b.North+d, 90),
		South: math.Max(b.South-d, -90),
	}
}

// Contains reports whether other lies entirely inside b.
func (b BBox) Contains(other BBox) bool {
	return other.West >= b.West && other.East <= b.East &&
		other.South >= b.South && other.North <= b.North
}

// Parse extracts exactly four numbers from text, read as two lon,lat pairs
// (west,south,east,north as published by ArcGIS Hub feeds), and returns the normalized box.
// Order within each axis does not matter: west/south take the minimum.
func Parse(text string) (BBox, error) {
	matches := coordPattern.FindAllString(text, -1)
	if len(matches) != 4 {
		return BBox{}, &ValidationError{Input: text, Cause: ErrNonConforming}
	}

	coords := make([]float64, 4)
	for i, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return BBox{}, &ValidationError{Input: text, Cause: ErrNonConforming}
		}
		coords[i] = v
	}

	lon1, lat1, lon2, lat2 := coords[0], coords[1], coords[2], coords[3]
	if !inRange(lon1, 180) || !inRange(lon2, 180) {
		return BBox{}, &ValidationError{Input: text, Cause: ErrLongitude}
	}
	if !inRange(lat1, 90) || !inRange(lat2, 90) {
		return BBox{}, &ValidationError{Input: text, Cause: ErrLatitude}
	}

	box := BBox{
		West:  math.Min(lon1, lon2),
		East:  math.Max(lon1, lon2),
		South: math.Min(lat1, lat2),
		North: math.Max(lat1, lat2),
	}
	if box.West == box.East || box.North == box.South {
		return BBox{}, &ValidationError{Input: text, Cause: ErrDegenerate}
	}
	return box, nil
}

// ParseWithin parses text and additionally requires the result to fall inside region
// expanded by Buffer. A nil region skips the containment check.
func ParseWithin(text string, region *BBox) (BBox, error) {
	box, err := Parse(text)
	if err != nil {
		return BBox{}, err
	}
	if region != nil && !region.Expand(Buffer).Contains(box) {
		return BBox{}, &ValidationError{Input: text, Cause: ErrOutsideRegion}
	}
	return box, nil
}

func inRange(v, limit float64) bool {
	return v >= -limit && v <= limit
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
