package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/depotgrid/pkg/geo"
	"github.com/lintang-b-s/depotgrid/pkg/util"
)

// Route. generated path from an origin facility to a discovered destination,
// duration and distance taken verbatim from the routing oracle.
type Route struct {
	geometry        []geo.Coordinate
	durationSeconds float64
	distanceMeters  float64
	label           string
}

func NewRoute(geometry []geo.Coordinate, durationSeconds, distanceMeters float64) Route {
	return Route{
		geometry:        geometry,
		durationSeconds: durationSeconds,
		distanceMeters:  distanceMeters,
		label:           fmt.Sprintf("~%d min route", int(math.Round(util.SecondsToMinutes(durationSeconds)))),
	}
}

func (r Route) GetGeometry() []geo.Coordinate {
	return r.geometry
}

func (r Route) GetDurationSeconds() float64 {
	return r.durationSeconds
}

func (r Route) GetDistanceMeters() float64 {
	return r.distanceMeters
}

func (r Route) GetLabel() string {
	return r.label
}

func (r Route) GetPolyline() string {
	return geo.PolylineFromCoords(r.geometry)
}
