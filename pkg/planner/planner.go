package planner

import (
	"context"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Planner. orchestrates route search across a curated subset of facilities,
// grouped and capped per region. regions and facilities within a region run
// strictly sequentially, throttling is a deliberate choice, never fan out
// routing requests concurrently.
type Planner struct {
	log           *zap.Logger
	searcher      RouteSearcher
	rng           *rand.Rand
	targetSeconds float64

	// 0 means a region's shuffled facility list is walked to exhaustion
	maxCandidatesPerRegion int

	onRouteFound func(region string, route datastructure.Route)
}

func NewPlanner(log *zap.Logger, searcher RouteSearcher, targetSeconds float64, rng *rand.Rand) *Planner {
	return &Planner{
		log:           log,
		searcher:      searcher,
		rng:           rng,
		targetSeconds: targetSeconds,
	}
}

func (p *Planner) SetMaxCandidatesPerRegion(n int) {
	p.maxCandidatesPerRegion = n
}

// SetOnRouteFound. invoked after every successful search, used to stream
// progress to subscribers during a long batch run.
func (p *Planner) SetOnRouteFound(fn func(region string, route datastructure.Route)) {
	p.onRouteFound = fn
}

// PlanRoutes. partition facilities by region, walk regions in the supplied
// order, shuffle each region's facilities and search from each until
// routesPerRegion routes were found or the region is exhausted. a region with
// zero facilities contributes zero routes. successful routes aggregate in
// region-processing order.
func (p *Planner) PlanRoutes(ctx context.Context, facilities []datastructure.Facility,
	regionsInOrder []string, routesPerRegion int) []datastructure.Route {

	byRegion := make(map[string][]datastructure.Facility, len(regionsInOrder))
	for _, f := range facilities {
		byRegion[f.GetRegion()] = append(byRegion[f.GetRegion()], f)
	}

	routes := make([]datastructure.Route, 0, routesPerRegion*len(regionsInOrder))
	for _, region := range regionsInOrder {
		candidates := byRegion[region]
		if len(candidates) == 0 {
			continue
		}

		shuffled := make([]datastructure.Facility, len(candidates))
		copy(shuffled, candidates)
		p.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		if p.maxCandidatesPerRegion > 0 && len(shuffled) > p.maxCandidatesPerRegion {
			shuffled = shuffled[:p.maxCandidatesPerRegion]
		}

		found := 0
		for _, facility := range shuffled {
			if found >= routesPerRegion {
				break
			}
			if ctx.Err() != nil {
				p.log.Info("batch route planning canceled",
					zap.String("region", region), zap.Int("routes", len(routes)))
				return routes
			}

			route := p.searcher.FindNear(ctx, facility.GetPosition(), p.targetSeconds)
			if route == nil {
				// this facility contributed no route, continue with the rest
				continue
			}

			routes = append(routes, *route)
			found++
			if p.onRouteFound != nil {
				p.onRouteFound(region, *route)
			}
		}

		p.log.Info("region planned",
			zap.String("region", region),
			zap.Int("routes", found),
			zap.Int("candidates", len(shuffled)))
	}

	return routes
}
