package pkg

// enum of facility speed class (electrification urgency, derived from capacity gap)
type SpeedClass uint8

const (
	FAST SpeedClass = iota
	MEDIUM
	SLOW
)

func (sc SpeedClass) String() string {
	switch sc {
	case FAST:
		return "Fast"
	case MEDIUM:
		return "Medium"
	case SLOW:
		return "Slow"
	default:
		return "Unknown"
	}
}

const (
	SPEED_CLASS_FAST_MAX_GAP_KW   = 250
	SPEED_CLASS_MEDIUM_MAX_GAP_KW = 500
)

// GetSpeedClass. gap < 250 kW -> FAST, 250 <= gap < 500 kW -> MEDIUM, gap >= 500 kW -> SLOW
func GetSpeedClass(capacityGapKw int) SpeedClass {
	switch {
	case capacityGapKw < SPEED_CLASS_FAST_MAX_GAP_KW:
		return FAST
	case capacityGapKw < SPEED_CLASS_MEDIUM_MAX_GAP_KW:
		return MEDIUM
	default:
		return SLOW
	}
}

func ParseSpeedClass(s string) (SpeedClass, bool) {
	switch s {
	case "Fast":
		return FAST, true
	case "Medium":
		return MEDIUM, true
	case "Slow":
		return SLOW, true
	default:
		return FAST, false
	}
}

// enum of active point layer
type PointLayer uint8

const (
	POINT_LAYER_FACILITIES PointLayer = iota
	POINT_LAYER_STATIONS
	POINT_LAYER_NONE
)

func (pl PointLayer) String() string {
	switch pl {
	case POINT_LAYER_FACILITIES:
		return "Facilities"
	case POINT_LAYER_STATIONS:
		return "ExternalStations"
	default:
		return "None"
	}
}

func ParsePointLayer(s string) (PointLayer, bool) {
	switch s {
	case "Facilities":
		return POINT_LAYER_FACILITIES, true
	case "ExternalStations":
		return POINT_LAYER_STATIONS, true
	case "None":
		return POINT_LAYER_NONE, true
	default:
		return POINT_LAYER_NONE, false
	}
}

// enum of session data-readiness state
type SessionState uint8

const (
	UNLOADED SessionState = iota
	BOUNDARIES_READY
	FACILITIES_READY
	ROUTES_READY
)

func (s SessionState) String() string {
	switch s {
	case UNLOADED:
		return "Unloaded"
	case BOUNDARIES_READY:
		return "BoundariesReady"
	case FACILITIES_READY:
		return "FacilitiesReady"
	case ROUTES_READY:
		return "RoutesReady"
	default:
		return "Unknown"
	}
}

const (
	// facility generation
	DEFAULT_GRID_COLS       = 18
	DEFAULT_GRID_ROWS       = 12
	DEFAULT_JITTER_FRACTION = 0.2

	EXISTING_CAPACITY_MIN_KW = 50
	EXISTING_CAPACITY_MAX_KW = 400
	NEEDED_CAPACITY_MAX_KW   = 1000

	// route search
	TARGET_ROUTE_SECONDS            = 90 * 60
	ROUTE_DURATION_TOLERANCE        = 0.2
	BASE_SEARCH_RADIUS_DEG          = 0.18 // ~20km at NYC latitude
	SEARCH_RADIUS_GROWTH_FACTOR     = 1.0
	MAX_ROUTE_SEARCH_ATTEMPTS       = 5
	DEFAULT_ROUTES_PER_REGION       = 5
	INTER_REQUEST_DELAY_MILLISECOND = 200

	DEFAULT_ORACLE_TIMEOUT_SECOND = 12
)

// default sampling universe (greater New York City)
const (
	DEFAULT_BBOX_MIN_LON = -74.25559
	DEFAULT_BBOX_MIN_LAT = 40.49612
	DEFAULT_BBOX_MAX_LON = -73.70001
	DEFAULT_BBOX_MAX_LAT = 40.91553
)

const (
	DEBUG = false
)
