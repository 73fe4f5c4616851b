package ctdf

import (
	"fmt"
	"strings"
)

// Direction is the canonical compass direction of a trip. The numeric values
// are persisted and exposed to the real-time API so must not be reordered.
type Direction int

const (
	DirectionNorth Direction = 0
	DirectionSouth Direction = 1
	DirectionEast  Direction = 2
	DirectionWest  Direction = 3
)

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "NORTH"
	case DirectionSouth:
		return "SOUTH"
	case DirectionEast:
		return "EAST"
	case DirectionWest:
		return "WEST"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func ParseDirection(value string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "NORTH":
		return DirectionNorth, nil
	case "SOUTH":
		return DirectionSouth, nil
	case "EAST":
		return DirectionEast, nil
	case "WEST":
		return DirectionWest, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", value)
	}
}
