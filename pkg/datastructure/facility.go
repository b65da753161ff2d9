package datastructure

import (
	"github.com/lintang-b-s/depotgrid/pkg"
	"github.com/lintang-b-s/depotgrid/pkg/geo"
)

// Facility. synthetic bus depot placed on the sampling grid. immutable once generated,
// replaced wholesale by the next generation run.
type Facility struct {
	id                 int
	position           geo.Coordinate
	region             string
	existingCapacityKw int
	neededCapacityKw   int
	capacityGapKw      int
	speedClass         pkg.SpeedClass
}

// NewFacility. neededCapacityKw must be >= existingCapacityKw, the generator
// guarantees this by drawing needed from [existing, max].
func NewFacility(id int, position geo.Coordinate, region string,
	existingCapacityKw, neededCapacityKw int) Facility {
	gap := neededCapacityKw - existingCapacityKw
	return Facility{
		id:                 id,
		position:           position,
		region:             region,
		existingCapacityKw: existingCapacityKw,
		neededCapacityKw:   neededCapacityKw,
		capacityGapKw:      gap,
		speedClass:         pkg.GetSpeedClass(gap),
	}
}

func (f Facility) GetId() int {
	return f.id
}

func (f Facility) GetPosition() geo.Coordinate {
	return f.position
}

func (f Facility) GetRegion() string {
	return f.region
}

func (f Facility) GetExistingCapacityKw() int {
	return f.existingCapacityKw
}

func (f Facility) GetNeededCapacityKw() int {
	return f.neededCapacityKw
}

func (f Facility) GetCapacityGapKw() int {
	return f.capacityGapKw
}

func (f Facility) GetSpeedClass() pkg.SpeedClass {
	return f.speedClass
}
