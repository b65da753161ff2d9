package planner

import (
	"context"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
)

type RouteSearcher interface {
	FindNear(ctx context.Context, origin geo.Coordinate, targetSeconds float64) *datastructure.Route
}
