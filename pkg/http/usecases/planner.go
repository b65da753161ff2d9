package usecases

import (
	"context"
	"sync"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/projection"
	"github.com/lintang-b-s/depotgrid/pkg/session"
	"github.com/lintang-b-s/depotgrid/pkg/util"
	"go.uber.org/zap"
)

type StatusReport struct {
	State         string
	Regions       []string
	FacilityCount int
	RouteCount    int
}

// PlannerUsecase orchestrates the generate -> plan -> project pipeline on top
// of the shared session. planning runs are serialized, a second PlanRoutes
// while one is in flight is a conflict, not a queue.
type PlannerUsecase struct {
	log        *zap.Logger
	sess       *session.Session
	generator  FacilityGenerator
	planner    RoutePlanner
	classifier RegionClassifier
	bbox       geo.BoundingBox
	progress   ProgressSink

	planMu   sync.Mutex
	planning bool
}

func NewPlannerUsecase(log *zap.Logger, sess *session.Session, generator FacilityGenerator,
	planner RoutePlanner, classifier RegionClassifier, bbox geo.BoundingBox,
	progress ProgressSink) *PlannerUsecase {
	u := &PlannerUsecase{
		log:        log,
		sess:       sess,
		generator:  generator,
		planner:    planner,
		classifier: classifier,
		bbox:       bbox,
		progress:   progress,
	}

	if progress != nil {
		planner.SetOnRouteFound(func(region string, route datastructure.Route) {
			progress.PublishRoute(region, route)
		})
	}

	return u
}

func (u *PlannerUsecase) GenerateFacilities(ctx context.Context, cols, rows int,
	jitterFraction float64) ([]datastructure.Facility, error) {
	if err := ctx.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "request canceled")
	}

	facilities := u.generator.Generate(u.bbox, cols, rows, jitterFraction)

	if err := u.sess.SetFacilities(facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

func (u *PlannerUsecase) PlanRoutes(ctx context.Context, routesPerRegion int) ([]datastructure.Route, error) {
	u.planMu.Lock()
	if u.planning {
		u.planMu.Unlock()
		return nil, util.WrapErrorf(nil, util.ErrConflict,
			"a batch planning run is already in progress")
	}
	u.planning = true
	u.planMu.Unlock()

	defer func() {
		u.planMu.Lock()
		u.planning = false
		u.planMu.Unlock()
	}()

	ds := u.sess.Datasets()
	if len(ds.Facilities) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrPreconditionFailed,
			"cannot plan routes, no facilities generated")
	}

	routes := u.planner.PlanRoutes(ctx, ds.Facilities, ds.Regions, routesPerRegion)

	if err := u.sess.SetRoutes(routes); err != nil {
		return nil, err
	}

	u.log.Info("batch planning finished",
		zap.Int("routes", len(routes)),
		zap.Int("routesPerRegion", routesPerRegion))
	return routes, nil
}

func (u *PlannerUsecase) ProjectLayers(criteria *datastructure.SelectionCriteria) (projection.Layers, error) {
	ds := u.sess.Datasets()
	if len(ds.Boundaries) == 0 {
		return projection.Layers{}, util.WrapErrorf(nil, util.ErrPreconditionFailed,
			"no datasets loaded")
	}
	return projection.Project(&ds, criteria), nil
}

func (u *PlannerUsecase) ClassifyPoint(lon, lat float64) (string, error) {
	region := u.classifier.Classify(lon, lat)
	if region == "" {
		return "", util.WrapErrorf(nil, util.ErrNotFound,
			"point (%f, %f) is outside every region boundary", lon, lat)
	}
	return region, nil
}

func (u *PlannerUsecase) Status() StatusReport {
	ds := u.sess.Datasets()
	return StatusReport{
		State:         u.sess.GetState().String(),
		Regions:       ds.Regions,
		FacilityCount: len(ds.Facilities),
		RouteCount:    len(ds.Routes),
	}
}

func (u *PlannerUsecase) Regions() []string {
	return u.sess.Regions()
}
