package oracle

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/logger"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	log, err := logger.New()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return log
}

func TestFetchRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"duration": 5423.7,
				"distance": 61234.5,
				"geometry": {
					"type": "LineString",
					"coordinates": [[-73.9855, 40.7580], [-73.9776, 40.7612]]
				}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(testLogger(t), srv.URL, 5*time.Second)

	origin := geo.NewCoordinate(40.7580, -73.9855)
	destination := geo.NewCoordinate(40.7612, -73.9776)

	route, err := client.FetchRoute(context.Background(), origin, destination)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !strings.Contains(gotPath, ";") {
		t.Errorf("request path %q must carry the lon,lat;lon,lat pair", gotPath)
	}

	if math.Abs(route.GetDurationSeconds()-5423.7) > 1e-9 {
		t.Errorf("duration = %f, must be taken verbatim from the oracle", route.GetDurationSeconds())
	}
	if math.Abs(route.GetDistanceMeters()-61234.5) > 1e-9 {
		t.Errorf("distance = %f, must be taken verbatim from the oracle", route.GetDistanceMeters())
	}

	geom := route.GetGeometry()
	if len(geom) != 2 {
		t.Fatalf("geometry length = %d, want 2", len(geom))
	}
	if geom[0].GetLat() != 40.7580 || geom[0].GetLon() != -73.9855 {
		t.Errorf("first coordinate = %+v, want (40.7580, -73.9855)", geom[0])
	}
}

func TestFetchRouteFailures(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		wantNoRoute bool
	}{
		{name: "non-200 status", status: http.StatusBadGateway, body: `{}`},
		{name: "oracle rejects pair", status: http.StatusOK,
			body: `{"code": "NoRoute", "routes": []}`, wantNoRoute: true},
		{name: "ok code but empty routes", status: http.StatusOK,
			body: `{"code": "Ok", "routes": []}`, wantNoRoute: true},
		{name: "malformed body", status: http.StatusOK, body: `{"code": "Ok", "rou`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(testLogger(t), srv.URL, 5*time.Second)

			route, err := client.FetchRoute(context.Background(),
				geo.NewCoordinate(40.7, -74.0), geo.NewCoordinate(40.8, -73.9))
			if err == nil {
				t.Fatal("want error")
			}
			if route != nil {
				t.Error("route must be nil on failure")
			}
			if tt.wantNoRoute && !errors.Is(err, ErrNoRoute) {
				t.Errorf("err = %v, want ErrNoRoute", err)
			}
		})
	}
}

func TestFetchRouteHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(testLogger(t), srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.FetchRoute(ctx,
		geo.NewCoordinate(40.7, -74.0), geo.NewCoordinate(40.8, -73.9)); err == nil {
		t.Fatal("want error when the context expires mid-request")
	}
}
