package boundary

import (
	"sync"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/spatialindex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

const (
	// padding (km) applied to indexed bounding boxes, keeps points sitting on a
	// shared border inside both candidate boxes
	indexPaddingRadiusKm = 0.05

	// memo cache key resolution, level 23 s2 cell is ~1 meter
	cacheCellLevel = 23
)

// Classifier. assigns a coordinate to the enclosing region polygon. first
// polygon in supply order wins, invalid geometry is skipped, a miss returns "".
// deterministic for a fixed polygon list.
type Classifier struct {
	polygons []datastructure.BoundaryPolygon
	index    *spatialindex.Rtree

	mu    sync.RWMutex
	cache map[s2.CellID]string

	log *zap.Logger
}

func NewClassifier(polygons []datastructure.BoundaryPolygon, log *zap.Logger) *Classifier {
	index := spatialindex.NewRtree()
	index.Build(polygons, indexPaddingRadiusKm, log)

	return &Classifier{
		polygons: polygons,
		index:    index,
		cache:    make(map[s2.CellID]string),
		log:      log,
	}
}

// Classify. region name of the first polygon containing (lon, lat), "" if none.
// the r-tree only prefilters candidates, first-match-by-supply-order semantics
// are preserved by re-sorting candidates on their supply position.
func (c *Classifier) Classify(lon, lat float64) string {
	key := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon)).Parent(cacheCellLevel)

	c.mu.RLock()
	if region, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return region
	}
	c.mu.RUnlock()

	region := ""
	point := orb.Point{lon, lat}
	for _, cand := range c.index.SearchContaining(lon, lat) {
		b := c.polygons[cand.GetPos()]
		if !b.IsValid() {
			continue
		}
		if containsPoint(b.GetGeometry(), point) {
			region = b.GetName()
			break
		}
	}

	c.mu.Lock()
	c.cache[key] = region
	c.mu.Unlock()

	return region
}

func (c *Classifier) GetPolygons() []datastructure.BoundaryPolygon {
	return c.polygons
}

// Classify. index-free form of the same contract, iterates the polygon list in
// supply order and returns the first match
func Classify(lon, lat float64, polygons []datastructure.BoundaryPolygon) string {
	point := orb.Point{lon, lat}
	for _, b := range polygons {
		if !b.IsValid() {
			continue
		}
		if containsPoint(b.GetGeometry(), point) {
			return b.GetName()
		}
	}
	return ""
}

func containsPoint(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	default:
		return false
	}
}
