package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// SwapPair exchanges the two members of a coordinate pair in place.
func SwapPair(pair any) error {
	_, err := swapPair(pair)
	return err
}

func swapPair(pair any) (orb.Point, error) {
	p, ok := pair.([]any)
	if !ok {
		return orb.Point{}, structErr("coordinate pair is %s, want array", typeName(pair))
	}
	if len(p) != 2 {
		return orb.Point{}, structErr("coordinate pair has %d elements, want 2", len(p))
	}

	// Both members are checked before anything is mutated
	x, err := toFloat(p[1])
	if err != nil {
		return orb.Point{}, err
	}
	y, err := toFloat(p[0])
	if err != nil {
		return orb.Point{}, err
	}

	p[0], p[1] = p[1], p[0]
	return orb.Point{x, y}, nil
}

// SwapPolygon swaps the pairs of every feature's rings in place.
//
// With FirstRing only ring 0 of each polygon is processed, any further rings
// are returned untouched. The returned document is doc itself.
func SwapPolygon(doc any, scope RingScope) (any, Stats, error) {
	var st Stats

	root, list, err := features(doc)
	if err != nil {
		return nil, st, err
	}

	for i, feature := range list {
		c, err := coordinates(feature, i)
		if err != nil {
			return nil, st, err
		}
		rings, ok := c.([]any)
		if !ok {
			return nil, st, structErr("feature %d: coordinates is %s, want array of rings", i, typeName(c))
		}
		if len(rings) == 0 {
			return nil, st, structErr("feature %d: polygon has no rings", i)
		}
		if scope == FirstRing {
			rings = rings[:1]
		}

		for j, ring := range rings {
			pairs, ok := ring.([]any)
			if !ok {
				return nil, st, structErr("feature %d: ring %d is %s, want array", i, j, typeName(ring))
			}
			for k, pair := range pairs {
				pt, err := swapPair(pair)
				if err != nil {
					return nil, st, fmt.Errorf("feature %d: ring %d: pair %d: %w", i, j, k, err)
				}
				st.add(pt)
			}
			st.Rings++
		}
		st.Features++
	}

	root["features"] = list
	return root, st, nil
}

// SwapPoint swaps the single pair of every feature in place and returns
// the features array alone, without the enclosing collection.
func SwapPoint(doc any) ([]any, Stats, error) {
	var st Stats

	_, list, err := features(doc)
	if err != nil {
		return nil, st, err
	}

	for i, feature := range list {
		c, err := coordinates(feature, i)
		if err != nil {
			return nil, st, err
		}
		pt, err := swapPair(c)
		if err != nil {
			return nil, st, fmt.Errorf("feature %d: %w", i, err)
		}
		st.add(pt)
		st.Features++
	}

	return list, st, nil
}

// Swap dispatches to SwapPolygon or SwapPoint and returns the value to be written.
func Swap(doc any, kind Kind, scope RingScope) (any, Stats, error) {
	switch kind {
	case KindPolygon:
		return SwapPolygon(doc, scope)
	case KindPoint:
		return SwapPoint(doc)
	default:
		return nil, Stats{}, fmt.Errorf("unknown kind %q", kind)
	}
}
