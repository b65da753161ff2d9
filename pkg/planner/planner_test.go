package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"github.com/lintang-b-s/depotgrid/pkg/search"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// stubSearcher succeeds or fails wholesale and counts searches.
type stubSearcher struct {
	fail     bool
	searches int
}

func (s *stubSearcher) FindNear(ctx context.Context, origin geo.Coordinate, targetSeconds float64) *datastructure.Route {
	s.searches++
	if s.fail {
		return nil
	}
	route := datastructure.NewRoute(nil, targetSeconds, 1000)
	return &route
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return log
}

func facilitiesIn(region string, n int) []datastructure.Facility {
	out := make([]datastructure.Facility, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, datastructure.NewFacility(i+1,
			geo.NewCoordinate(40.7, -74.0), region, 100, 300))
	}
	return out
}

func TestPlanRoutesQuotaPerRegion(t *testing.T) {
	searcher := &stubSearcher{}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))

	facilities := append(facilitiesIn("Brooklyn", 10), facilitiesIn("Queens", 10)...)

	routes := p.PlanRoutes(context.Background(), facilities, []string{"Brooklyn", "Queens"}, 3)

	if len(routes) != 6 {
		t.Errorf("routes = %d, want 3 per region over 2 regions", len(routes))
	}
	if searcher.searches != 6 {
		t.Errorf("searches = %d, want 6 when every search succeeds", searcher.searches)
	}
}

func TestPlanRoutesRegionWithNoFacilities(t *testing.T) {
	searcher := &stubSearcher{}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))

	routes := p.PlanRoutes(context.Background(), facilitiesIn("Brooklyn", 4),
		[]string{"Brooklyn", "Staten Island"}, 2)

	if len(routes) != 2 {
		t.Errorf("routes = %d, the empty region must contribute zero without aborting", len(routes))
	}
}

func TestPlanRoutesExhaustsRegionOnFailure(t *testing.T) {
	searcher := &stubSearcher{fail: true}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))

	routes := p.PlanRoutes(context.Background(), facilitiesIn("Brooklyn", 5),
		[]string{"Brooklyn"}, 3)

	if len(routes) != 0 {
		t.Errorf("routes = %d, want 0 when every search fails", len(routes))
	}
	if searcher.searches != 5 {
		t.Errorf("searches = %d, every facility in the region must be attempted", searcher.searches)
	}
}

func TestPlanRoutesCandidateCap(t *testing.T) {
	searcher := &stubSearcher{fail: true}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))
	p.SetMaxCandidatesPerRegion(4)

	p.PlanRoutes(context.Background(), facilitiesIn("Brooklyn", 20), []string{"Brooklyn"}, 3)

	if searcher.searches != 4 {
		t.Errorf("searches = %d, want 4 with the candidate cap set", searcher.searches)
	}
}

func TestPlanRoutesCanceledContextReturnsPartial(t *testing.T) {
	searcher := &stubSearcher{}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	routes := p.PlanRoutes(ctx, facilitiesIn("Brooklyn", 5), []string{"Brooklyn"}, 3)
	if len(routes) != 0 {
		t.Errorf("routes = %d, want 0 after immediate cancellation", len(routes))
	}
	if searcher.searches != 0 {
		t.Errorf("searches = %d, want 0 after immediate cancellation", searcher.searches)
	}
}

// fixedFetcher always answers with the same duration, or always fails.
type fixedFetcher struct {
	duration float64
	fail     bool
	calls    int
}

func (f *fixedFetcher) FetchRoute(ctx context.Context, origin, destination geo.Coordinate) (*datastructure.Route, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("oracle unreachable")
	}
	route := datastructure.NewRoute(nil, f.duration, f.duration*10)
	return &route, nil
}

func newRealSearcher(t *testing.T, fetcher search.RouteFetcher, maxAttempts int) *search.Searcher {
	t.Helper()
	bbox := geo.NewBoundingBox(-74.25, 40.49, -73.70, 40.91)
	return search.NewSearcher(testLogger(t), fetcher, bbox, 0.18, 1.0, 0.2, maxAttempts,
		rand.New(rand.NewSource(7)))
}

func TestPlanRoutesAlwaysExactOracle(t *testing.T) {
	fetcher := &fixedFetcher{duration: 5400}
	p := NewPlanner(testLogger(t), newRealSearcher(t, fetcher, 5), 5400,
		rand.New(rand.NewSource(1)))

	facilities := append(facilitiesIn("Brooklyn", 5), facilitiesIn("Queens", 5)...)
	routes := p.PlanRoutes(context.Background(), facilities, []string{"Brooklyn", "Queens"}, 3)

	if len(routes) != 6 {
		t.Errorf("routes = %d, want the full quota of 6", len(routes))
	}
	// every search hits the target on its first probe
	if fetcher.calls != 6 {
		t.Errorf("oracle calls = %d, want 6", fetcher.calls)
	}
}

func TestPlanRoutesAlwaysFailingOracle(t *testing.T) {
	maxAttempts := 5
	fetcher := &fixedFetcher{fail: true}
	p := NewPlanner(testLogger(t), newRealSearcher(t, fetcher, maxAttempts), 5400,
		rand.New(rand.NewSource(1)))

	routes := p.PlanRoutes(context.Background(), facilitiesIn("Brooklyn", 5),
		[]string{"Brooklyn"}, 3)

	if len(routes) != 0 {
		t.Errorf("routes = %d, want 0 against a dead oracle", len(routes))
	}
	if fetcher.calls != 5*maxAttempts {
		t.Errorf("oracle calls = %d, want %d (full attempt budget per facility)",
			fetcher.calls, 5*maxAttempts)
	}
}

func TestPlanRoutesProgressCallback(t *testing.T) {
	searcher := &stubSearcher{}
	p := NewPlanner(testLogger(t), searcher, 5400, rand.New(rand.NewSource(1)))

	var gotRegions []string
	p.SetOnRouteFound(func(region string, route datastructure.Route) {
		gotRegions = append(gotRegions, region)
	})

	facilities := append(facilitiesIn("Brooklyn", 3), facilitiesIn("Queens", 3)...)
	p.PlanRoutes(context.Background(), facilities, []string{"Brooklyn", "Queens"}, 2)

	want := []string{"Brooklyn", "Brooklyn", "Queens", "Queens"}
	if len(gotRegions) != len(want) {
		t.Fatalf("callback fired %d times, want %d", len(gotRegions), len(want))
	}
	for i := range want {
		if gotRegions[i] != want[i] {
			t.Errorf("callback %d region = %s, want %s (region processing order)",
				i, gotRegions[i], want[i])
		}
	}
}
