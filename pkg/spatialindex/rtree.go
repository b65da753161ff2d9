package spatialindex

import (
	"sort"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[BoundaryRef]
}

// BoundaryRef. index entry pointing back at the boundary polygon's position in
// the supply-order slice. classification is first-match by supply order, so
// candidates are always re-sorted by pos before containment tests.
type BoundaryRef struct {
	pos  int
	name string
}

func (br BoundaryRef) GetPos() int {
	return br.pos
}

func (br BoundaryRef) GetName() string {
	return br.name
}

func newBoundaryRef(pos int, name string) BoundaryRef {
	return BoundaryRef{
		pos:  pos,
		name: name,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[BoundaryRef]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree over boundary polygon bounding boxes, each padded by
// paddingRadius (in km) so points sitting exactly on a shared border still hit
// both candidates
func (rt *Rtree) Build(boundaries []datastructure.BoundaryPolygon, paddingRadius float64, log *zap.Logger) {
	log.Info("Building boundary R-tree spatial index...")

	inserted := 0
	for pos, b := range boundaries {
		if !b.IsValid() {
			continue
		}
		bound := b.Bound()

		lowerLat, lowerLon := geo.GetDestinationPoint(bound.Min[1], bound.Min[0], 225, paddingRadius)
		upperLat, upperLon := geo.GetDestinationPoint(bound.Max[1], bound.Max[0], 45, paddingRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			newBoundaryRef(pos, b.GetName()))
		inserted++
	}

	log.Info("Boundary R-tree spatial index built.", zap.Int("boundaries", inserted))
}

// SearchContaining. candidate boundaries whose padded bounding box contains the
// query point, in supply order
func (rt *Rtree) SearchContaining(lon, lat float64) []BoundaryRef {
	results := make([]BoundaryRef, 0, 4)
	rt.tr.Search([2]float64{lon, lat}, [2]float64{lon, lat},
		func(min, max [2]float64, data BoundaryRef) bool {
			results = append(results, data)
			return true
		})

	sort.Slice(results, func(i, j int) bool {
		return results[i].pos < results[j].pos
	})
	return results
}
