package geo

// BoundingBox. sampling universe and clamp region, [minLon, minLat, maxLon, maxLat]
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) BoundingBox {
	return BoundingBox{
		MinLon: minLon,
		MinLat: minLat,
		MaxLon: maxLon,
		MaxLat: maxLat,
	}
}

// Clamp. clamp (lon, lat) component-wise into the box
func (b BoundingBox) Clamp(lon, lat float64) (float64, float64) {
	if lon < b.MinLon {
		lon = b.MinLon
	}
	if lon > b.MaxLon {
		lon = b.MaxLon
	}
	if lat < b.MinLat {
		lat = b.MinLat
	}
	if lat > b.MaxLat {
		lat = b.MaxLat
	}
	return lon, lat
}

func (b BoundingBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

func (b BoundingBox) Width() float64 {
	return b.MaxLon - b.MinLon
}

func (b BoundingBox) Height() float64 {
	return b.MaxLat - b.MinLat
}

func (b BoundingBox) Center() (float64, float64) {
	return (b.MinLon + b.MaxLon) / 2.0, (b.MinLat + b.MaxLat) / 2.0
}
