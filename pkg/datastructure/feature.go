package datastructure

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// render-ready geojson feature collections, handed to a map-layer renderer
// without further transformation. every builder returns a non-nil collection
// so consumers never need null checks.

func FacilitiesToFeatureCollection(facilities []Facility) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range facilities {
		pos := f.GetPosition()
		feature := geojson.NewFeature(orb.Point{pos.GetLon(), pos.GetLat()})
		feature.Properties = geojson.Properties{
			"id":                   f.GetId(),
			"name":                 fmt.Sprintf("Depot Site %d", f.GetId()),
			"region":               f.GetRegion(),
			"existing_capacity_kw": f.GetExistingCapacityKw(),
			"needed_capacity_kw":   f.GetNeededCapacityKw(),
			"capacity_gap_kw":      f.GetCapacityGapKw(),
			"speed_class":          f.GetSpeedClass().String(),
		}
		fc.Append(feature)
	}
	return fc
}

func RoutesToFeatureCollection(routes []Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range routes {
		ls := make(orb.LineString, 0, len(r.GetGeometry()))
		for _, c := range r.GetGeometry() {
			ls = append(ls, orb.Point{c.GetLon(), c.GetLat()})
		}
		feature := geojson.NewFeature(ls)
		feature.Properties = geojson.Properties{
			"duration_seconds": r.GetDurationSeconds(),
			"distance_meters":  r.GetDistanceMeters(),
			"label":            r.GetLabel(),
		}
		fc.Append(feature)
	}
	return fc
}

func BoundariesToFeatureCollection(boundaries []BoundaryPolygon) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range boundaries {
		feature := geojson.NewFeature(b.GetGeometry())
		feature.Properties = geojson.Properties{
			"boro_name": b.GetName(),
		}
		fc.Append(feature)
	}
	return fc
}
