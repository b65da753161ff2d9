package session

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"github.com/lintang-b-s/depotgrid/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return log
}

func testBoundaries() ([]datastructure.BoundaryPolygon, []string) {
	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	return []datastructure.BoundaryPolygon{
		datastructure.NewBoundaryPolygon("Brooklyn", orb.Polygon{ring}),
	}, []string{"Brooklyn"}
}

func codeOf(t *testing.T, err error) error {
	t.Helper()
	var uerr *util.Error
	if !errors.As(err, &uerr) {
		t.Fatalf("err %v is not a coded error", err)
	}
	return uerr.Code()
}

func TestLoadDatasetsRequiresBoundaries(t *testing.T) {
	sess := NewSession(testLogger(t))

	err := sess.LoadDatasets(nil, nil, geojson.NewFeatureCollection(), geojson.NewFeatureCollection())
	if err == nil {
		t.Fatal("want error for empty boundary set")
	}
	if codeOf(t, err) != util.ErrPreconditionFailed {
		t.Errorf("code = %v, want precondition failed", codeOf(t, err))
	}
	if sess.GetState() != pkg.UNLOADED {
		t.Errorf("state = %s, a failed load must keep the session unloaded", sess.GetState())
	}
}

func TestSessionStateMachine(t *testing.T) {
	sess := NewSession(testLogger(t))
	boundaries, regions := testBoundaries()

	// facilities before boundaries
	if err := sess.SetFacilities(nil); err == nil {
		t.Error("want error setting facilities while unloaded")
	}

	if err := sess.LoadDatasets(boundaries, regions,
		geojson.NewFeatureCollection(), geojson.NewFeatureCollection()); err != nil {
		t.Fatalf("err: %v", err)
	}
	if sess.GetState() != pkg.BOUNDARIES_READY {
		t.Errorf("state = %s, want BoundariesReady", sess.GetState())
	}

	// routes before facilities
	if err := sess.SetRoutes(nil); err == nil {
		t.Error("want error setting routes without facilities")
	}

	facilities := []datastructure.Facility{
		datastructure.NewFacility(1, geo.NewCoordinate(0.5, 0.5), "Brooklyn", 100, 300),
	}
	if err := sess.SetFacilities(facilities); err != nil {
		t.Fatalf("err: %v", err)
	}
	if sess.GetState() != pkg.FACILITIES_READY {
		t.Errorf("state = %s, want FacilitiesReady", sess.GetState())
	}

	routes := []datastructure.Route{datastructure.NewRoute(nil, 5400, 60000)}
	if err := sess.SetRoutes(routes); err != nil {
		t.Fatalf("err: %v", err)
	}
	if sess.GetState() != pkg.ROUTES_READY {
		t.Errorf("state = %s, want RoutesReady", sess.GetState())
	}

	ds := sess.Datasets()
	if len(ds.Facilities) != 1 || len(ds.Routes) != 1 {
		t.Error("datasets snapshot must carry facilities and routes")
	}
}

func TestRegenerationInvalidatesRoutes(t *testing.T) {
	sess := NewSession(testLogger(t))
	boundaries, regions := testBoundaries()

	if err := sess.LoadDatasets(boundaries, regions,
		geojson.NewFeatureCollection(), geojson.NewFeatureCollection()); err != nil {
		t.Fatalf("err: %v", err)
	}

	facilities := []datastructure.Facility{
		datastructure.NewFacility(1, geo.NewCoordinate(0.5, 0.5), "Brooklyn", 100, 300),
	}
	if err := sess.SetFacilities(facilities); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := sess.SetRoutes([]datastructure.Route{datastructure.NewRoute(nil, 5400, 60000)}); err != nil {
		t.Fatalf("err: %v", err)
	}

	// a second generation run drops the stale routes
	if err := sess.SetFacilities(facilities); err != nil {
		t.Fatalf("err: %v", err)
	}

	if sess.GetState() != pkg.FACILITIES_READY {
		t.Errorf("state = %s, regeneration must fall back to FacilitiesReady", sess.GetState())
	}
	if len(sess.Datasets().Routes) != 0 {
		t.Error("routes planned for the previous snapshot must be invalidated")
	}
}
