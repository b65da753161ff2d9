package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// LoadBoundaries. read a boundary polygon feature collection from a geojson
// file, plain or bzip2-compressed (.bz2). region names come from a small fixed
// set of known property keys, failing soft to "Unknown". returns the polygons
// in file order plus the distinct region names in first-seen order.
func LoadBoundaries(path string, log *zap.Logger) ([]datastructure.BoundaryPolygon, []string, error) {
	raw, err := readMaybeCompressed(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read boundary file %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode boundary file %s: %w", path, err)
	}

	boundaries, regions := BoundariesFromFeatureCollection(fc)
	log.Info("boundary polygons loaded",
		zap.String("path", path),
		zap.Int("features", len(boundaries)),
		zap.Strings("regions", regions))
	return boundaries, regions, nil
}

// BoundariesFromFeatureCollection. pre-parsed form of LoadBoundaries for
// callers that already hold a decoded collection.
func BoundariesFromFeatureCollection(fc *geojson.FeatureCollection) ([]datastructure.BoundaryPolygon, []string) {
	boundaries := make([]datastructure.BoundaryPolygon, 0, len(fc.Features))
	regions := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)

	for _, feature := range fc.Features {
		name := datastructure.RegionNameFromProperties(feature.Properties)
		boundaries = append(boundaries, datastructure.NewBoundaryPolygon(name, feature.Geometry))
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			regions = append(regions, name)
		}
	}
	return boundaries, regions
}

// LoadFeatureCollection. risk zones and external station point sets, same
// file handling as boundaries but passed through undecoded into domain types.
func LoadFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	raw, err := readMaybeCompressed(path)
	if err != nil {
		return nil, fmt.Errorf("read feature file %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode feature file %s: %w", path, err)
	}
	return fc, nil
}

func readMaybeCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	return io.ReadAll(r)
}

// FallbackBoundaries. one coarse polygon per borough, keeps the pipeline
// working when the configured boundary file is absent or unreadable.
func FallbackBoundaries() ([]datastructure.BoundaryPolygon, []string) {
	coarse := []struct {
		name string
		ring orb.Ring
	}{
		{"Manhattan", orb.Ring{
			{-73.9985, 40.7636}, {-73.9850, 40.7648}, {-73.9733, 40.7563},
			{-73.9786, 40.7480}, {-73.9918, 40.7471}, {-73.9985, 40.7636}}},
		{"Brooklyn", orb.Ring{
			{-73.9719, 40.7269}, {-73.9490, 40.7269}, {-73.9420, 40.7095},
			{-73.9645, 40.7095}, {-73.9719, 40.7269}}},
		{"Queens", orb.Ring{
			{-73.9437, 40.7893}, {-73.9099, 40.7893}, {-73.9099, 40.7687},
			{-73.9360, 40.7640}, {-73.9437, 40.7893}}},
		{"Bronx", orb.Ring{
			{-73.8922, 40.8620}, {-73.8785, 40.8620}, {-73.8785, 40.8503},
			{-73.8922, 40.8503}, {-73.8922, 40.8620}}},
		{"Staten Island", orb.Ring{
			{-74.1681, 40.5887}, {-74.1378, 40.5887}, {-74.1378, 40.5718},
			{-74.1681, 40.5718}, {-74.1681, 40.5887}}},
	}

	boundaries := make([]datastructure.BoundaryPolygon, 0, len(coarse))
	regions := make([]string, 0, len(coarse))
	for _, c := range coarse {
		boundaries = append(boundaries, datastructure.NewBoundaryPolygon(c.name, orb.Polygon{c.ring}))
		regions = append(regions, c.name)
	}
	return boundaries, regions
}
