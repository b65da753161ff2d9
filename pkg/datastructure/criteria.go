package datastructure

import (
	"github.com/lintang-b-s/depotgrid/pkg"
)

// SelectionCriteria. transient display-facing state owned by the caller and
// passed by reference into the projection engine on every recomputation.
// never persisted.
type SelectionCriteria struct {
	Regions        []string         `json:"regions"`
	SpeedClasses   []pkg.SpeedClass `json:"speed_classes"`
	PointLayer     pkg.PointLayer   `json:"point_layer"`
	ShowBoundaries bool             `json:"show_boundaries"`
	ShowRiskZones  bool             `json:"show_risk_zones"`
	ShowRoutes     bool             `json:"show_routes"`
}

// NewSelectionCriteria. everything visible, all regions and speed classes active.
func NewSelectionCriteria(allRegions []string) *SelectionCriteria {
	regions := make([]string, len(allRegions))
	copy(regions, allRegions)
	return &SelectionCriteria{
		Regions:        regions,
		SpeedClasses:   []pkg.SpeedClass{pkg.FAST, pkg.MEDIUM, pkg.SLOW},
		PointLayer:     pkg.POINT_LAYER_FACILITIES,
		ShowBoundaries: true,
		ShowRiskZones:  true,
		ShowRoutes:     true,
	}
}

func (c *SelectionCriteria) HasRegion(region string) bool {
	for _, r := range c.Regions {
		if r == region {
			return true
		}
	}
	return false
}

func (c *SelectionCriteria) HasSpeedClass(sc pkg.SpeedClass) bool {
	for _, s := range c.SpeedClasses {
		if s == sc {
			return true
		}
	}
	return false
}

// AllRegionsSelected. true when the active region subset equals the full region set
func (c *SelectionCriteria) AllRegionsSelected(fullRegionSet []string) bool {
	for _, r := range fullRegionSet {
		if !c.HasRegion(r) {
			return false
		}
	}
	return true
}
