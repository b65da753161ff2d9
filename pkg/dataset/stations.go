package dataset

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// ExtractChargingStations. pull charging-station nodes out of an OSM PBF
// extract as an external-station point layer. stations carry no region
// property, the projection engine's approximate fallback applies to them.
func ExtractChargingStations(ctx context.Context, pbfPath string, log *zap.Logger) (*geojson.FeatureCollection, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, fmt.Errorf("open osm extract %s: %w", pbfPath, err)
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
	defer scanner.Close()

	fc := geojson.NewFeatureCollection()
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if node.Tags.Find("amenity") != "charging_station" {
			continue
		}

		feature := geojson.NewFeature(orb.Point{node.Lon, node.Lat})
		feature.Properties = geojson.Properties{
			"osm_id":   int64(node.ID),
			"name":     node.Tags.Find("name"),
			"operator": node.Tags.Find("operator"),
		}
		fc.Append(feature)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm extract %s: %w", pbfPath, err)
	}

	log.Info("charging stations extracted",
		zap.String("path", pbfPath),
		zap.Int("stations", len(fc.Features)))
	return fc, nil
}
