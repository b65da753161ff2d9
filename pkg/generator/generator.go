package generator

import (
	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type RegionClassifier interface {
	Classify(lon, lat float64) string
}

// Generator. samples a jittered regular lattice over the bounding box and
// synthesizes one facility per sample that classifies into a boundary region.
// samples matching no region are discarded silently.
type Generator struct {
	log        *zap.Logger
	classifier RegionClassifier
	rng        *rand.Rand

	existingCapacityMinKw int
	existingCapacityMaxKw int
	neededCapacityMaxKw   int
}

func NewGenerator(log *zap.Logger, classifier RegionClassifier, seed uint64) *Generator {
	return &Generator{
		log:                   log,
		classifier:            classifier,
		rng:                   rand.New(rand.NewSource(seed)),
		existingCapacityMinKw: pkg.EXISTING_CAPACITY_MIN_KW,
		existingCapacityMaxKw: pkg.EXISTING_CAPACITY_MAX_KW,
		neededCapacityMaxKw:   pkg.NEEDED_CAPACITY_MAX_KW,
	}
}

// SetCapacityRanges. override the configured capacity draw ranges.
// neededCapacityMaxKw must be >= existingCapacityMaxKw.
func (g *Generator) SetCapacityRanges(existingMinKw, existingMaxKw, neededMaxKw int) {
	g.existingCapacityMinKw = existingMinKw
	g.existingCapacityMaxKw = existingMaxKw
	g.neededCapacityMaxKw = neededMaxKw
}

// Generate. cols x rows lattice over bbox, each sample jittered per-axis by at
// most ±jitterFraction of the cell span. facility ids are a dense 1-based
// sequence in generation order after discards, not the lattice index.
func (g *Generator) Generate(bbox geo.BoundingBox, cols, rows int, jitterFraction float64) []datastructure.Facility {
	dx := 0.0
	if cols > 1 {
		dx = bbox.Width() / float64(cols-1)
	}
	dy := 0.0
	if rows > 1 {
		dy = bbox.Height() / float64(rows-1)
	}

	facilities := make([]datastructure.Facility, 0, cols*rows)
	discarded := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			jx := g.randBetween(-dx*jitterFraction, dx*jitterFraction)
			jy := g.randBetween(-dy*jitterFraction, dy*jitterFraction)
			lon := bbox.MinLon + float64(c)*dx + jx
			lat := bbox.MinLat + float64(r)*dy + jy

			region := g.classifier.Classify(lon, lat)
			if region == "" {
				discarded++
				continue
			}

			existingKw := g.randIntBetween(g.existingCapacityMinKw, g.existingCapacityMaxKw)
			// lower bound at existingKw guarantees a non-negative capacity gap
			neededKw := g.randIntBetween(existingKw, g.neededCapacityMaxKw)

			facilities = append(facilities, datastructure.NewFacility(
				len(facilities)+1, geo.NewCoordinate(lat, lon), region, existingKw, neededKw))
		}
	}

	g.log.Info("facility generation done",
		zap.Int("accepted", len(facilities)),
		zap.Int("discarded", discarded),
		zap.Int("cols", cols),
		zap.Int("rows", rows))

	return facilities
}

func (g *Generator) randBetween(a, b float64) float64 {
	return g.rng.Float64()*(b-a) + a
}

// randIntBetween. uniform draw from [a, b] inclusive
func (g *Generator) randIntBetween(a, b int) int {
	if b <= a {
		return a
	}
	return a + g.rng.Intn(b-a+1)
}
