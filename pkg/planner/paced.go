package planner

import (
	"context"
	"time"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/search"
	"golang.org/x/time/rate"
)

// PacedFetcher. enforces a fixed delay between successive oracle calls across
// the whole batch run, not per region, to respect the oracle's rate tolerance.
type PacedFetcher struct {
	inner   search.RouteFetcher
	limiter *rate.Limiter
}

func NewPacedFetcher(inner search.RouteFetcher, interRequestDelay time.Duration) *PacedFetcher {
	limit := rate.Inf
	if interRequestDelay > 0 {
		limit = rate.Every(interRequestDelay)
	}
	return &PacedFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (p *PacedFetcher) FetchRoute(ctx context.Context, origin, destination geo.Coordinate) (*datastructure.Route, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.FetchRoute(ctx, origin, destination)
}
