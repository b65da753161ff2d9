package projection

import (
	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/paulmach/orb/geojson"
)

// Layers. the filtered view a map renderer consumes. every collection is
// non-nil, possibly empty, so the renderer never needs null checks.
type Layers struct {
	Boundaries       *geojson.FeatureCollection `json:"boundaries"`
	RiskZones        *geojson.FeatureCollection `json:"risk_zones"`
	Facilities       *geojson.FeatureCollection `json:"facilities"`
	ExternalStations *geojson.FeatureCollection `json:"external_stations"`
	Routes           *geojson.FeatureCollection `json:"routes"`
}

// Project. derive the filtered subset to display from the full datasets and
// the active selection criteria. pure, recomputed from scratch on every
// criteria change, never mutates the source collections.
func Project(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) Layers {
	return Layers{
		Boundaries:       projectBoundaries(ds, criteria),
		RiskZones:        projectRiskZones(ds, criteria),
		Facilities:       projectFacilities(ds, criteria),
		ExternalStations: projectStations(ds, criteria),
		Routes:           projectRoutes(ds, criteria),
	}
}

func projectBoundaries(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) *geojson.FeatureCollection {
	if !criteria.ShowBoundaries {
		return geojson.NewFeatureCollection()
	}
	visible := make([]datastructure.BoundaryPolygon, 0, len(ds.Boundaries))
	for _, b := range ds.Boundaries {
		if criteria.HasRegion(b.GetName()) {
			visible = append(visible, b)
		}
	}
	return datastructure.BoundariesToFeatureCollection(visible)
}

// risk zones carry no region attribute suitable for filtering, the layer is
// all-or-nothing
func projectRiskZones(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) *geojson.FeatureCollection {
	if !criteria.ShowRiskZones || ds.RiskZones == nil {
		return geojson.NewFeatureCollection()
	}
	out := geojson.NewFeatureCollection()
	out.Features = append(out.Features, ds.RiskZones.Features...)
	return out
}

func projectFacilities(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) *geojson.FeatureCollection {
	if criteria.PointLayer != pkg.POINT_LAYER_FACILITIES {
		return geojson.NewFeatureCollection()
	}
	visible := make([]datastructure.Facility, 0, len(ds.Facilities))
	for _, f := range ds.Facilities {
		if criteria.HasRegion(f.GetRegion()) && criteria.HasSpeedClass(f.GetSpeedClass()) {
			visible = append(visible, f)
		}
	}
	return datastructure.FacilitiesToFeatureCollection(visible)
}

// external stations are region-filtered when a feature carries a resolvable
// region property. features without one pass through only while the active
// region subset equals the full region set. that fallback is a deliberate
// approximation, not spatial truth.
func projectStations(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) *geojson.FeatureCollection {
	if criteria.PointLayer != pkg.POINT_LAYER_STATIONS || ds.Stations == nil {
		return geojson.NewFeatureCollection()
	}

	allSelected := criteria.AllRegionsSelected(ds.Regions)
	out := geojson.NewFeatureCollection()
	for _, feature := range ds.Stations.Features {
		region := datastructure.RegionNameFromProperties(feature.Properties)
		if region == datastructure.UnknownRegion {
			if allSelected {
				out.Append(feature)
			}
			continue
		}
		if criteria.HasRegion(region) {
			out.Append(feature)
		}
	}
	return out
}

func projectRoutes(ds *datastructure.Datasets, criteria *datastructure.SelectionCriteria) *geojson.FeatureCollection {
	if !criteria.ShowRoutes {
		return geojson.NewFeatureCollection()
	}
	return datastructure.RoutesToFeatureCollection(ds.Routes)
}
