package session

import (
	"sync"

	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/util"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Session. explicit data-readiness state machine owned by the caller.
// operations guard their precondition on the current state instead of
// inferring readiness from presence checks:
//
//	Unloaded -> BoundariesReady -> FacilitiesReady -> RoutesReady
//
// generation replaces the facility snapshot and invalidates routes, loading
// new datasets resets everything downstream.
type Session struct {
	mu       sync.RWMutex
	state    pkg.SessionState
	datasets datastructure.Datasets

	log *zap.Logger
}

func NewSession(log *zap.Logger) *Session {
	return &Session{
		state: pkg.UNLOADED,
		log:   log,
	}
}

// LoadDatasets. boundary polygons are the structural dependency of the whole
// pipeline, an empty set is an upstream load failure that keeps the session
// unloaded and must abort the caller.
func (s *Session) LoadDatasets(boundaries []datastructure.BoundaryPolygon, regions []string,
	riskZones, stations *geojson.FeatureCollection) error {
	if len(boundaries) == 0 {
		return util.WrapErrorf(nil, util.ErrPreconditionFailed,
			"failed to load required spatial data: no boundary polygons")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets = datastructure.Datasets{
		Boundaries: boundaries,
		Regions:    regions,
		RiskZones:  riskZones,
		Stations:   stations,
	}
	s.state = pkg.BOUNDARIES_READY

	s.log.Info("datasets loaded",
		zap.Int("boundaries", len(boundaries)),
		zap.Strings("regions", regions))
	return nil
}

func (s *Session) SetFacilities(facilities []datastructure.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state < pkg.BOUNDARIES_READY {
		return util.WrapErrorf(nil, util.ErrPreconditionFailed,
			"cannot generate facilities in state %s, boundaries not loaded", s.state)
	}

	s.datasets.Facilities = facilities
	// a fresh generation run invalidates routes planned for the old snapshot
	s.datasets.Routes = nil
	s.state = pkg.FACILITIES_READY
	return nil
}

func (s *Session) SetRoutes(routes []datastructure.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state < pkg.FACILITIES_READY {
		return util.WrapErrorf(nil, util.ErrPreconditionFailed,
			"cannot plan routes in state %s, no facilities generated", s.state)
	}

	s.datasets.Routes = routes
	s.state = pkg.ROUTES_READY
	return nil
}

func (s *Session) GetState() pkg.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Datasets. snapshot for downstream filtering. collections are treated as
// immutable by every consumer, so the shallow copy is safe to share.
func (s *Session) Datasets() datastructure.Datasets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasets
}

func (s *Session) Regions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasets.Regions
}
