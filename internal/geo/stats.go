package geo

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
)

// Stats describes what a swap touched.
type Stats struct {
	// Bound covers the swapped pairs in their new axis order. Zero when Pairs is 0.
	Bound    orb.Bound
	Features int
	Rings    int
	Pairs    int
}

func (s *Stats) add(p orb.Point) {
	if s.Pairs == 0 {
		s.Bound = p.Bound()
	} else {
		s.Bound = s.Bound.Extend(p)
	}
	s.Pairs++
}

// LonLat reports whether the bound fits the WGS84 longitude/latitude range,
// axis 0 within [-180, 180] and axis 1 within [-90, 90].
func (s Stats) LonLat() bool {
	if s.Pairs == 0 {
		return true
	}
	return s.Bound.Min[0] >= -180 && s.Bound.Max[0] <= 180 &&
		s.Bound.Min[1] >= -90 && s.Bound.Max[1] <= 90
}

func toFloat(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, structErr("coordinate is %s, want number", typeName(v))
	}
	if err != nil || math.IsNaN(f) {
		return 0, structErr("coordinate %v is not a number", v)
	}
	return f, nil
}
