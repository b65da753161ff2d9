package datastructure

import (
	"github.com/paulmach/orb/geojson"
)

// Datasets. immutable snapshot of everything the projection engine derives
// filtered views from. facility and route collections are produced once per
// generation cycle and owned by the session.
type Datasets struct {
	Boundaries []BoundaryPolygon
	// distinct region names in boundary supply order, also the canonical
	// region-processing order for the batch planner
	Regions    []string
	RiskZones  *geojson.FeatureCollection
	Stations   *geojson.FeatureCollection
	Facilities []Facility
	Routes     []Route
}
