package main

import (
	"context"
	"flag"
	"time"

	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/boundary"
	"github.com/lintang-b-s/depotgrid/pkg/dataset"
	"github.com/lintang-b-s/depotgrid/pkg/generator"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/http"
	"github.com/lintang-b-s/depotgrid/pkg/http/router/controllers"
	"github.com/lintang-b-s/depotgrid/pkg/http/usecases"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"github.com/lintang-b-s/depotgrid/pkg/oracle"
	"github.com/lintang-b-s/depotgrid/pkg/planner"
	"github.com/lintang-b-s/depotgrid/pkg/search"
	"github.com/lintang-b-s/depotgrid/pkg/session"
	"github.com/lintang-b-s/depotgrid/pkg/util"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	boundaryFile = flag.String("boundary_file", "./data/region_boundaries.geojson.bz2",
		"region boundary polygons (geojson, optionally .bz2)")
	riskZoneFile = flag.String("risk_zone_file", "./data/risk_zones.geojson.bz2",
		"flood risk zone polygons (geojson, optionally .bz2)")
	stationsPBF = flag.String("stations_pbf", "",
		"osm pbf extract to mine charging stations from, empty disables the layer")
	seed = flag.Uint64("seed", uint64(time.Now().UnixNano()),
		"rng seed for facility generation and candidate sampling")
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

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	boundaries, regions, err := dataset.LoadBoundaries(*boundaryFile, logger)
	if err != nil {
		logger.Info("boundary file unusable, falling back to coarse borough polygons", zap.Error(err))
		boundaries, regions = dataset.FallbackBoundaries()
	}

	riskZones, err := dataset.LoadFeatureCollection(*riskZoneFile)
	if err != nil {
		logger.Info("risk zone file unusable, layer stays empty", zap.Error(err))
		riskZones = geojson.NewFeatureCollection()
	}

	stations := geojson.NewFeatureCollection()
	if *stationsPBF != "" {
		stations, err = dataset.ExtractChargingStations(ctx, *stationsPBF, logger)
		if err != nil {
			logger.Info("osm extract unusable, station layer stays empty", zap.Error(err))
			stations = geojson.NewFeatureCollection()
		}
	}

	sess := session.NewSession(logger)
	if err := sess.LoadDatasets(boundaries, regions, riskZones, stations); err != nil {
		panic(err)
	}

	classifier := boundary.NewClassifier(boundaries, logger)
	gen := generator.NewGenerator(logger, classifier, *seed)

	bbox := geo.NewBoundingBox(pkg.DEFAULT_BBOX_MIN_LON, pkg.DEFAULT_BBOX_MIN_LAT,
		pkg.DEFAULT_BBOX_MAX_LON, pkg.DEFAULT_BBOX_MAX_LAT)

	osrm := oracle.NewClient(logger, viper.GetString("OSRM_BASE_URL"), viper.GetDuration("ORACLE_TIMEOUT"))
	paced := planner.NewPacedFetcher(osrm, viper.GetDuration("INTER_REQUEST_DELAY"))

	rng := rand.New(rand.NewSource(*seed))
	searcher := search.NewSearcher(logger, paced, bbox, pkg.BASE_SEARCH_RADIUS_DEG,
		pkg.SEARCH_RADIUS_GROWTH_FACTOR, pkg.ROUTE_DURATION_TOLERANCE,
		pkg.MAX_ROUTE_SEARCH_ATTEMPTS, rng)

	batchPlanner := planner.NewPlanner(logger, searcher, pkg.TARGET_ROUTE_SECONDS, rng)

	hub := controllers.NewHub(logger)

	plannerService := usecases.NewPlannerUsecase(logger, sess, gen, batchPlanner,
		classifier, bbox, hub)

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, false, plannerService, hub); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("depotgrid planner server stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
