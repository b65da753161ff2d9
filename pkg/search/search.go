package search

import (
	"context"
	"math"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Searcher. local greedy bounded search for a destination whose route duration
// lands near a target. not a global optimum, the contract is "closest found
// within the attempt budget", which may be suboptimal or nil.
type Searcher struct {
	log     *zap.Logger
	fetcher RouteFetcher
	bbox    geo.BoundingBox
	rng     *rand.Rand

	baseRadiusDeg     float64
	growthFactor      float64
	toleranceFraction float64
	maxAttempts       int
}

func NewSearcher(log *zap.Logger, fetcher RouteFetcher, bbox geo.BoundingBox,
	baseRadiusDeg, growthFactor, toleranceFraction float64, maxAttempts int,
	rng *rand.Rand) *Searcher {
	return &Searcher{
		log:               log,
		fetcher:           fetcher,
		bbox:              bbox,
		rng:               rng,
		baseRadiusDeg:     baseRadiusDeg,
		growthFactor:      growthFactor,
		toleranceFraction: toleranceFraction,
		maxAttempts:       maxAttempts,
	}
}

// FindNear. probe up to maxAttempts candidate destinations at a random bearing
// and a radius growing linearly with the attempt index, keep the best candidate
// by |duration - target| and stop early once it is within the tolerance window.
// a failed oracle call skips the attempt; nil when every attempt failed.
func (s *Searcher) FindNear(ctx context.Context, origin geo.Coordinate, targetSeconds float64) *datastructure.Route {
	var best *datastructure.Route

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return best
		}

		angle := s.rng.Float64() * 2 * math.Pi
		radius := s.baseRadiusDeg * float64(attempt) * s.growthFactor

		destLon, destLat := s.bbox.Clamp(
			origin.GetLon()+math.Cos(angle)*radius,
			origin.GetLat()+math.Sin(angle)*radius,
		)
		destination := geo.NewCoordinate(destLat, destLon)

		route, err := s.fetcher.FetchRoute(ctx, origin, destination)
		if err != nil {
			s.log.Debug("route candidate failed",
				zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if best == nil ||
			math.Abs(route.GetDurationSeconds()-targetSeconds) < math.Abs(best.GetDurationSeconds()-targetSeconds) {
			best = route
		}

		if math.Abs(best.GetDurationSeconds()-targetSeconds) <= targetSeconds*s.toleranceFraction {
			break
		}
	}

	return best
}
