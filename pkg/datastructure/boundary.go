package datastructure

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// property keys probed for the region name, different boundary sources
// disagree on the naming key
var regionNameKeys = []string{"boro_name", "BoroName", "borough"}

const UnknownRegion = "Unknown"

// BoundaryPolygon. named region geometry used for containment classification.
// read-only to the core.
type BoundaryPolygon struct {
	name     string
	geometry orb.Geometry
}

func NewBoundaryPolygon(name string, geometry orb.Geometry) BoundaryPolygon {
	return BoundaryPolygon{
		name:     name,
		geometry: geometry,
	}
}

func (b BoundaryPolygon) GetName() string {
	return b.name
}

func (b BoundaryPolygon) GetGeometry() orb.Geometry {
	return b.geometry
}

// IsValid. polygons with missing or non-areal geometry are skipped during
// classification, treated as non-matching rather than an error.
func (b BoundaryPolygon) IsValid() bool {
	switch g := b.geometry.(type) {
	case orb.Polygon:
		return len(g) > 0 && len(g[0]) >= 3
	case orb.MultiPolygon:
		return len(g) > 0
	default:
		return false
	}
}

func (b BoundaryPolygon) Bound() orb.Bound {
	return b.geometry.Bound()
}

// RegionNameFromProperties. probe the known naming keys, fail soft to "Unknown"
func RegionNameFromProperties(props geojson.Properties) string {
	for _, key := range regionNameKeys {
		if name, ok := props[key].(string); ok && name != "" {
			return name
		}
	}
	return UnknownRegion
}
