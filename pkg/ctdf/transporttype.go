package ctdf

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeBus       TransportType = "Bus"
	TransportTypeCoach     TransportType = "Coach"
	TransportTypeTram      TransportType = "Tram"
	TransportTypeRail      TransportType = "Rail"
	TransportTypeMetro     TransportType = "Metro"
	TransportTypeFerry     TransportType = "Ferry"
	TransportTypeCableCar  TransportType = "CableCar"
	TransportTypeFunicular TransportType = "Funicular"
	TransportTypeUnknown   TransportType = "UNKNOWN"
)

// TransportTypeFromGTFS maps a GTFS route_type onto a transport type
func TransportTypeFromGTFS(routeType int) TransportType {
	switch routeType {
	case 0:
		return TransportTypeTram
	case 1:
		return TransportTypeMetro
	case 2:
		return TransportTypeRail
	case 3:
		return TransportTypeBus
	case 4:
		return TransportTypeFerry
	case 5, 6:
		return TransportTypeCableCar
	case 7:
		return TransportTypeFunicular
	default:
		return TransportTypeUnknown
	}
}
