// Package geo swaps the axis order of coordinate pairs inside GeoJSON-like documents.
//
// Documents are handled as generic JSON trees (map[string]any, []any) so that every
// key and value not involved in the swap is written back as it was read.
package geo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructure is returned when a document does not have the expected shape.
var ErrStructure = errors.New("unexpected document structure")

// Kind selects which coordinate layout a document is treated as.
type Kind string

const (
	// KindPolygon expects coordinates as an array of rings of pairs.
	KindPolygon Kind = "polygon"
	// KindPoint expects coordinates as a single pair.
	KindPoint Kind = "point"
)

// ParseKind parses a kind name, case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPolygon:
		return KindPolygon, nil
	case KindPoint:
		return KindPoint, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want polygon|point)", s)
	}
}

// RingScope selects which rings of a polygon are swapped.
type RingScope int

const (
	// FirstRing swaps only the outer ring (index 0) and leaves holes untouched.
	FirstRing RingScope = iota
	// AllRings swaps every ring.
	AllRings
)

func (s RingScope) String() string {
	if s == AllRings {
		return "all"
	}
	return "first"
}

func structErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
}

// features returns the "features" array of a FeatureCollection mapping.
func features(doc any) (map[string]any, []any, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, nil, structErr("top-level value is %s, want object", typeName(doc))
	}
	raw, ok := root["features"]
	if !ok {
		return nil, nil, structErr(`missing "features"`)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, nil, structErr(`"features" is %s, want array`, typeName(raw))
	}
	return root, list, nil
}

// coordinates returns geometry.coordinates of the feature at index i.
func coordinates(feature any, i int) (any, error) {
	f, ok := feature.(map[string]any)
	if !ok {
		return nil, structErr("feature %d is %s, want object", i, typeName(feature))
	}
	g, ok := f["geometry"].(map[string]any)
	if !ok {
		return nil, structErr("feature %d: geometry is %s, want object", i, typeName(f["geometry"]))
	}
	c, ok := g["coordinates"]
	if !ok {
		return nil, structErr(`feature %d: geometry has no "coordinates"`, i)
	}
	return c, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
