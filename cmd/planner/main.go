package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/boundary"
	"github.com/lintang-b-s/depotgrid/pkg/dataset"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/generator"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"github.com/lintang-b-s/depotgrid/pkg/oracle"
	"github.com/lintang-b-s/depotgrid/pkg/planner"
	"github.com/lintang-b-s/depotgrid/pkg/search"
	"github.com/lintang-b-s/depotgrid/pkg/util"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// one-shot offline batch run: generate facilities, plan routes for every
// region and write the resulting layers as geojson files.
var (
	boundaryFile = flag.String("boundary_file", "./data/region_boundaries.geojson.bz2",
		"region boundary polygons (geojson, optionally .bz2)")
	outDir = flag.String("out_dir", "./out", "output directory for the generated geojson layers")

	cols            = flag.Int("cols", pkg.DEFAULT_GRID_COLS, "facility grid columns")
	rows            = flag.Int("rows", pkg.DEFAULT_GRID_ROWS, "facility grid rows")
	jitterFraction  = flag.Float64("jitter_fraction", pkg.DEFAULT_JITTER_FRACTION, "per-axis jitter as a fraction of the cell span")
	routesPerRegion = flag.Int("routes_per_region", pkg.DEFAULT_ROUTES_PER_REGION, "route quota per region")
	targetMinutes   = flag.Float64("target_minutes", pkg.TARGET_ROUTE_SECONDS/60.0, "target route duration in minutes")
	seed            = flag.Uint64("seed", uint64(time.Now().UnixNano()), "rng seed")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Info("config file not found, using defaults", zap.Error(err))
	}

	viper.SetDefault("OSRM_BASE_URL", oracle.DefaultBaseURL)
	viper.SetDefault("ORACLE_TIMEOUT", time.Duration(pkg.DEFAULT_ORACLE_TIMEOUT_SECOND)*time.Second)
	viper.SetDefault("INTER_REQUEST_DELAY", time.Duration(pkg.INTER_REQUEST_DELAY_MILLISECOND)*time.Millisecond)

	ctx := context.Background()

	boundaries, regions, err := dataset.LoadBoundaries(*boundaryFile, logger)
	if err != nil {
		logger.Info("boundary file unusable, falling back to coarse borough polygons", zap.Error(err))
		boundaries, regions = dataset.FallbackBoundaries()
	}

	classifier := boundary.NewClassifier(boundaries, logger)
	gen := generator.NewGenerator(logger, classifier, *seed)

	bbox := geo.NewBoundingBox(pkg.DEFAULT_BBOX_MIN_LON, pkg.DEFAULT_BBOX_MIN_LAT,
		pkg.DEFAULT_BBOX_MAX_LON, pkg.DEFAULT_BBOX_MAX_LAT)

	facilities := gen.Generate(bbox, *cols, *rows, *jitterFraction)

	osrm := oracle.NewClient(logger, viper.GetString("OSRM_BASE_URL"), viper.GetDuration("ORACLE_TIMEOUT"))
	paced := planner.NewPacedFetcher(osrm, viper.GetDuration("INTER_REQUEST_DELAY"))

	rng := rand.New(rand.NewSource(*seed))
	searcher := search.NewSearcher(logger, paced, bbox, pkg.BASE_SEARCH_RADIUS_DEG,
		pkg.SEARCH_RADIUS_GROWTH_FACTOR, pkg.ROUTE_DURATION_TOLERANCE,
		pkg.MAX_ROUTE_SEARCH_ATTEMPTS, rng)

	batchPlanner := planner.NewPlanner(logger, searcher, *targetMinutes*60, rng)
	// bound candidate walking per region, a full walk against a slow public
	// oracle can take hours on a dense grid
	batchPlanner.SetMaxCandidatesPerRegion(util.MaxInt(2*(*routesPerRegion), *routesPerRegion+2))

	routes := batchPlanner.PlanRoutes(ctx, facilities, regions, *routesPerRegion)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	writeCollection(logger, filepath.Join(*outDir, "facilities.geojson"),
		datastructure.FacilitiesToFeatureCollection(facilities))
	writeCollection(logger, filepath.Join(*outDir, "routes.geojson"),
		datastructure.RoutesToFeatureCollection(routes))
	writeCollection(logger, filepath.Join(*outDir, "boundaries.geojson"),
		datastructure.BoundariesToFeatureCollection(boundaries))

	logger.Info("batch run finished",
		zap.Int("facilities", len(facilities)),
		zap.Int("routes", len(routes)),
		zap.String("outDir", *outDir))
}

func writeCollection(log *zap.Logger, path string, fc *geojson.FeatureCollection) {
	raw, err := json.Marshal(fc)
	if err != nil {
		panic(fmt.Errorf("marshal %s: %w", path, err))
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		panic(fmt.Errorf("write %s: %w", path, err))
	}
	log.Info("layer written", zap.String("path", path), zap.Int("features", len(fc.Features)))
}
