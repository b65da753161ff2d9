package controllers

import (
	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"github.com/paulmach/orb/geojson"
)

type generateFacilitiesRequest struct {
	Cols           int     `json:"cols" validate:"omitempty,min=2,max=100"`
	Rows           int     `json:"rows" validate:"omitempty,min=2,max=100"`
	JitterFraction float64 `json:"jitter_fraction" validate:"omitempty,min=0,max=0.45"`
}

// applyDefaults. zero-valued fields fall back to the stock grid shape
func (r *generateFacilitiesRequest) applyDefaults() {
	if r.Cols == 0 {
		r.Cols = pkg.DEFAULT_GRID_COLS
	}
	if r.Rows == 0 {
		r.Rows = pkg.DEFAULT_GRID_ROWS
	}
	if r.JitterFraction == 0 {
		r.JitterFraction = pkg.DEFAULT_JITTER_FRACTION
	}
}

type generateFacilitiesResponse struct {
	Count      int                        `json:"count"`
	Facilities *geojson.FeatureCollection `json:"facilities"`
}

func NewGenerateFacilitiesResponse(facilities []datastructure.Facility) generateFacilitiesResponse {
	return generateFacilitiesResponse{
		Count:      len(facilities),
		Facilities: datastructure.FacilitiesToFeatureCollection(facilities),
	}
}

type planRoutesRequest struct {
	RoutesPerRegion int `json:"routes_per_region" validate:"omitempty,min=1,max=25"`
}

func (r *planRoutesRequest) applyDefaults() {
	if r.RoutesPerRegion == 0 {
		r.RoutesPerRegion = pkg.DEFAULT_ROUTES_PER_REGION
	}
}

type planRoutesResponse struct {
	Count  int                        `json:"count"`
	Routes *geojson.FeatureCollection `json:"routes"`
}

func NewPlanRoutesResponse(routes []datastructure.Route) planRoutesResponse {
	return planRoutesResponse{
		Count:  len(routes),
		Routes: datastructure.RoutesToFeatureCollection(routes),
	}
}

// layersRequest. omitted fields keep the all-visible defaults, an explicit
// empty regions / speed class list narrows the view to nothing.
type layersRequest struct {
	Regions        []string `json:"regions"`
	SpeedClasses   []string `json:"speed_classes" validate:"omitempty,dive,oneof=Fast Medium Slow"`
	PointLayer     string   `json:"point_layer" validate:"omitempty,oneof=Facilities ExternalStations None"`
	ShowBoundaries *bool    `json:"show_boundaries"`
	ShowRiskZones  *bool    `json:"show_risk_zones"`
	ShowRoutes     *bool    `json:"show_routes"`
}

func (r layersRequest) ToCriteria(allRegions []string) *datastructure.SelectionCriteria {
	criteria := datastructure.NewSelectionCriteria(allRegions)

	if r.Regions != nil {
		criteria.Regions = r.Regions
	}
	if r.SpeedClasses != nil {
		criteria.SpeedClasses = criteria.SpeedClasses[:0]
		for _, s := range r.SpeedClasses {
			if sc, ok := pkg.ParseSpeedClass(s); ok {
				criteria.SpeedClasses = append(criteria.SpeedClasses, sc)
			}
		}
	}
	if r.PointLayer != "" {
		if pl, ok := pkg.ParsePointLayer(r.PointLayer); ok {
			criteria.PointLayer = pl
		}
	}
	if r.ShowBoundaries != nil {
		criteria.ShowBoundaries = *r.ShowBoundaries
	}
	if r.ShowRiskZones != nil {
		criteria.ShowRiskZones = *r.ShowRiskZones
	}
	if r.ShowRoutes != nil {
		criteria.ShowRoutes = *r.ShowRoutes
	}
	return criteria
}

type classifyRequest struct {
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

type classifyResponse struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Region string  `json:"region"`
}

func NewClassifyResponse(lon, lat float64, region string) classifyResponse {
	return classifyResponse{Lon: lon, Lat: lat, Region: region}
}

type statusResponse struct {
	State         string   `json:"state"`
	Regions       []string `json:"regions"`
	FacilityCount int      `json:"facility_count"`
	RouteCount    int      `json:"route_count"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
