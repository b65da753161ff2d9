package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://router.project-osrm.org/route/v1/driving"

// ErrNoRoute. the oracle answered but explicitly found no route between the pair
var ErrNoRoute = errors.New("no route found")

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Duration float64          `json:"duration"`
	Distance float64          `json:"distance"`
	Geometry geojson.Geometry `json:"geometry"`
}

// Client. wraps a single routing request against an OSRM-compatible driving
// profile. every failure mode (transport error, non-200, bad code, empty
// routes, timeout) comes back as an error the caller treats as "try another
// candidate", never as fatal.
type Client struct {
	log        *zap.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *zap.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRoute. fastest driving path geometry and duration for (origin, destination).
// duration and distance are taken verbatim from the oracle.
func (c *Client) FetchRoute(ctx context.Context, origin, destination geo.Coordinate) (*datastructure.Route, error) {
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&annotations=false&geometries=geojson",
		c.baseURL, origin.GetLon(), origin.GetLat(), destination.GetLon(), destination.GetLat())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("osrm transport failure", zap.Error(err))
		return nil, fmt.Errorf("osrm: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("osrm non-200", zap.Int("status", resp.StatusCode), zap.String("url", url))
		return nil, fmt.Errorf("osrm: unexpected status %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Debug("osrm malformed response", zap.Error(err))
		return nil, fmt.Errorf("osrm: decode response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		c.log.Debug("osrm bad code", zap.String("code", decoded.Code))
		return nil, ErrNoRoute
	}

	best := decoded.Routes[0]
	lineString, ok := best.Geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("osrm: route geometry is not a linestring")
	}

	coords := make([]geo.Coordinate, len(lineString))
	for i, p := range lineString {
		coords[i] = geo.NewCoordinate(p.Lat(), p.Lon())
	}

	route := datastructure.NewRoute(coords, best.Duration, best.Distance)
	return &route, nil
}
