package usecases

import (
	"context"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
)

type FacilityGenerator interface {
	Generate(bbox geo.BoundingBox, cols, rows int, jitterFraction float64) []datastructure.Facility
}

type RoutePlanner interface {
	PlanRoutes(ctx context.Context, facilities []datastructure.Facility,
		regionsInOrder []string, routesPerRegion int) []datastructure.Route
	SetOnRouteFound(fn func(region string, route datastructure.Route))
}

type RegionClassifier interface {
	Classify(lon, lat float64) string
}

// ProgressSink receives every accepted route during a batch planning run.
type ProgressSink interface {
	PublishRoute(region string, route datastructure.Route)
}
