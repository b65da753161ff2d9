package boundary

import (
	"testing"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return log
}

func TestClassify(t *testing.T) {
	polygons := []datastructure.BoundaryPolygon{
		datastructure.NewBoundaryPolygon("A", square(0, 0, 10, 10)),
		datastructure.NewBoundaryPolygon("B", square(5, 0, 15, 10)),
	}
	classifier := NewClassifier(polygons, testLogger(t))

	testCases := []struct {
		name     string
		lon, lat float64
		want     string
	}{
		{name: "inside A only", lon: 2, lat: 2, want: "A"},
		{name: "inside both, first wins", lon: 7, lat: 5, want: "A"},
		{name: "inside B only", lon: 12, lat: 5, want: "B"},
		{name: "outside everything", lon: 40, lat: 40, want: ""},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.lon, tt.lat)
			if got != tt.want {
				t.Errorf("Classify(%f, %f) = %q, want %q", tt.lon, tt.lat, got, tt.want)
			}

			// second lookup hits the memo cache, contract stays identical
			if again := classifier.Classify(tt.lon, tt.lat); again != got {
				t.Errorf("cached Classify(%f, %f) = %q, want %q", tt.lon, tt.lat, again, got)
			}
		})
	}
}

func TestClassifySkipsInvalidGeometry(t *testing.T) {
	polygons := []datastructure.BoundaryPolygon{
		datastructure.NewBoundaryPolygon("broken", orb.Polygon{}),
		datastructure.NewBoundaryPolygon("degenerate", orb.Polygon{orb.Ring{{0, 0}, {1, 1}}}),
		datastructure.NewBoundaryPolygon("C", square(0, 0, 10, 10)),
	}
	classifier := NewClassifier(polygons, testLogger(t))

	if got := classifier.Classify(5, 5); got != "C" {
		t.Errorf("Classify = %q, want C", got)
	}
}

func TestClassifyIndexFree(t *testing.T) {
	polygons := []datastructure.BoundaryPolygon{
		datastructure.NewBoundaryPolygon("A", square(0, 0, 10, 10)),
		datastructure.NewBoundaryPolygon("B", square(5, 0, 15, 10)),
	}

	if got := Classify(7, 5, polygons); got != "A" {
		t.Errorf("Classify = %q, want A (first polygon in supply order)", got)
	}
	if got := Classify(12, 5, polygons); got != "B" {
		t.Errorf("Classify = %q, want B", got)
	}
	if got := Classify(40, 40, polygons); got != "" {
		t.Errorf("Classify = %q, want empty on miss", got)
	}
}

func TestClassifyMultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{square(0, 0, 2, 2), square(8, 8, 10, 10)}
	polygons := []datastructure.BoundaryPolygon{
		datastructure.NewBoundaryPolygon("islands", mp),
	}
	classifier := NewClassifier(polygons, testLogger(t))

	if got := classifier.Classify(9, 9); got != "islands" {
		t.Errorf("Classify = %q, want islands", got)
	}
	if got := classifier.Classify(5, 5); got != "" {
		t.Errorf("Classify = %q, want empty between the parts", got)
	}
}
