package projection

import (
	"testing"

	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}
}

func testDatasets() datastructure.Datasets {
	riskZones := geojson.NewFeatureCollection()
	riskZones.Append(geojson.NewFeature(square(0, 0, 1, 1)))

	stations := geojson.NewFeatureCollection()
	tagged := geojson.NewFeature(orb.Point{-73.95, 40.71})
	tagged.Properties = geojson.Properties{"borough": "Brooklyn"}
	stations.Append(tagged)
	untagged := geojson.NewFeature(orb.Point{-73.98, 40.76})
	untagged.Properties = geojson.Properties{"name": "plug"}
	stations.Append(untagged)

	return datastructure.Datasets{
		Boundaries: []datastructure.BoundaryPolygon{
			datastructure.NewBoundaryPolygon("Brooklyn", square(0, 0, 1, 1)),
			datastructure.NewBoundaryPolygon("Queens", square(1, 0, 2, 1)),
		},
		Regions:   []string{"Brooklyn", "Queens"},
		RiskZones: riskZones,
		Stations:  stations,
		Facilities: []datastructure.Facility{
			datastructure.NewFacility(1, geo.NewCoordinate(40.71, -73.95), "Brooklyn", 100, 300), // Fast
			datastructure.NewFacility(2, geo.NewCoordinate(40.72, -73.94), "Brooklyn", 100, 700), // Slow
			datastructure.NewFacility(3, geo.NewCoordinate(40.74, -73.87), "Queens", 100, 450),   // Medium
		},
		Routes: []datastructure.Route{
			datastructure.NewRoute([]geo.Coordinate{
				geo.NewCoordinate(40.71, -73.95), geo.NewCoordinate(40.74, -73.87)}, 5400, 60000),
		},
	}
}

func TestProjectAllVisibleDefaults(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)

	layers := Project(&ds, criteria)

	if got := len(layers.Boundaries.Features); got != 2 {
		t.Errorf("boundaries = %d, want 2", got)
	}
	if got := len(layers.RiskZones.Features); got != 1 {
		t.Errorf("risk zones = %d, want 1", got)
	}
	if got := len(layers.Facilities.Features); got != 3 {
		t.Errorf("facilities = %d, want 3", got)
	}
	if got := len(layers.Routes.Features); got != 1 {
		t.Errorf("routes = %d, want 1", got)
	}
	// facilities layer active, stations hidden
	if got := len(layers.ExternalStations.Features); got != 0 {
		t.Errorf("stations = %d, want 0 while the facility layer is active", got)
	}
}

func TestProjectRegionFilter(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)
	criteria.Regions = []string{"Queens"}

	layers := Project(&ds, criteria)

	if got := len(layers.Boundaries.Features); got != 1 {
		t.Errorf("boundaries = %d, want 1", got)
	}
	if got := len(layers.Facilities.Features); got != 1 {
		t.Fatalf("facilities = %d, want 1", got)
	}
	if region := layers.Facilities.Features[0].Properties["region"]; region != "Queens" {
		t.Errorf("facility region = %v, want Queens", region)
	}
}

func TestProjectSpeedClassFilter(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)
	criteria.SpeedClasses = []pkg.SpeedClass{pkg.SLOW}

	layers := Project(&ds, criteria)

	if got := len(layers.Facilities.Features); got != 1 {
		t.Fatalf("facilities = %d, want only the slow one", got)
	}
	if sc := layers.Facilities.Features[0].Properties["speed_class"]; sc != "Slow" {
		t.Errorf("speed_class = %v, want Slow", sc)
	}
}

func TestProjectToggles(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)
	criteria.ShowBoundaries = false
	criteria.ShowRiskZones = false
	criteria.ShowRoutes = false
	criteria.PointLayer = pkg.POINT_LAYER_NONE

	layers := Project(&ds, criteria)

	for name, fc := range map[string]*geojson.FeatureCollection{
		"boundaries": layers.Boundaries,
		"risk zones": layers.RiskZones,
		"facilities": layers.Facilities,
		"stations":   layers.ExternalStations,
		"routes":     layers.Routes,
	} {
		if fc == nil {
			t.Errorf("%s layer is nil, want empty collection", name)
			continue
		}
		if len(fc.Features) != 0 {
			t.Errorf("%s = %d features, want 0 with the layer off", name, len(fc.Features))
		}
	}
}

func TestProjectStationRegionFallback(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)
	criteria.PointLayer = pkg.POINT_LAYER_STATIONS

	// all regions selected: tagged + untagged both pass
	layers := Project(&ds, criteria)
	if got := len(layers.ExternalStations.Features); got != 2 {
		t.Errorf("stations = %d, want 2 with all regions selected", got)
	}

	// narrowed selection drops the untagged feature and keeps the tagged match
	criteria.Regions = []string{"Brooklyn"}
	layers = Project(&ds, criteria)
	if got := len(layers.ExternalStations.Features); got != 1 {
		t.Fatalf("stations = %d, want 1 with a narrowed region subset", got)
	}
	if name := layers.ExternalStations.Features[0].Properties["borough"]; name != "Brooklyn" {
		t.Errorf("surviving station borough = %v, want Brooklyn", name)
	}

	// narrowed to a region with no tagged station, untagged still excluded
	criteria.Regions = []string{"Queens"}
	layers = Project(&ds, criteria)
	if got := len(layers.ExternalStations.Features); got != 0 {
		t.Errorf("stations = %d, want 0", got)
	}
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	ds := testDatasets()
	criteria := datastructure.NewSelectionCriteria(ds.Regions)
	criteria.Regions = []string{"Brooklyn"}

	before := len(ds.RiskZones.Features)
	_ = Project(&ds, criteria)
	_ = Project(&ds, criteria)

	if len(ds.RiskZones.Features) != before {
		t.Error("projection must never mutate the source collections")
	}
	if len(ds.Facilities) != 3 || len(ds.Boundaries) != 2 {
		t.Error("projection must never mutate the source datasets")
	}
}
