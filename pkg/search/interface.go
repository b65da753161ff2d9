package search

import (
	"context"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
)

// RouteFetcher. capability interface over the external routing oracle so tests
// can substitute a deterministic stub and production can add pacing or retries
// without changing the search contract.
type RouteFetcher interface {
	FetchRoute(ctx context.Context, origin, destination geo.Coordinate) (*datastructure.Route, error)
}
