package controllers

import (
	"context"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/http/usecases"
	"github.com/lintang-b-s/depotgrid/pkg/projection"
)

type PlannerService interface {
	GenerateFacilities(ctx context.Context, cols, rows int, jitterFraction float64) ([]datastructure.Facility, error)
	PlanRoutes(ctx context.Context, routesPerRegion int) ([]datastructure.Route, error)
	ProjectLayers(criteria *datastructure.SelectionCriteria) (projection.Layers, error)
	ClassifyPoint(lon, lat float64) (string, error)
	Status() usecases.StatusReport
	Regions() []string
}
