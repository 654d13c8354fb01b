package catan

// Phase is the server's authoritative game state. The brain mirrors it and
// never advances it unilaterally — every transition arrives as an inbound
// GameState message (spec 4.5).
type Phase int

const (
	InitSettle1A Phase = iota
	InitRoad1B
	InitSettle2A
	InitRoad2B
	InitSettle3A // scenario: ThreeInitialPlacements
	InitRoad3B   // scenario: ThreeInitialPlacements

	Roll
	Play

	PlacingRoad
	PlacingShip
	PlacingSettlement
	PlacingCity
	PlacingFreeRoad1
	PlacingFreeRoad2
	PlacingRobber

	WaitingForRobberOrPirate
	WaitingForDiscards
	WaitingForDiscovery
	WaitingForMonopoly
	WaitingForRobChoosePlayer

	SpecialBuilding

	Over
	Reset
)

func (p Phase) String() string {
	switch p {
	case InitSettle1A:
		return "INIT_SETTLE_1A"
	case InitRoad1B:
		return "INIT_ROAD_1B"
	case InitSettle2A:
		return "INIT_SETTLE_2A"
	case InitRoad2B:
		return "INIT_ROAD_2B"
	case InitSettle3A:
		return "INIT_SETTLE_3A"
	case InitRoad3B:
		return "INIT_ROAD_3B"
	case Roll:
		return "ROLL"
	case Play:
		return "PLAY"
	case PlacingRoad:
		return "PLACING_ROAD"
	case PlacingShip:
		return "PLACING_SHIP"
	case PlacingSettlement:
		return "PLACING_SETTLEMENT"
	case PlacingCity:
		return "PLACING_CITY"
	case PlacingFreeRoad1:
		return "PLACING_FREE_ROAD_1"
	case PlacingFreeRoad2:
		return "PLACING_FREE_ROAD_2"
	case PlacingRobber:
		return "PLACING_ROBBER"
	case WaitingForRobberOrPirate:
		return "WAITING_FOR_ROBBER_OR_PIRATE"
	case WaitingForDiscards:
		return "WAITING_FOR_DISCARDS"
	case WaitingForDiscovery:
		return "WAITING_FOR_DISCOVERY"
	case WaitingForMonopoly:
		return "WAITING_FOR_MONOPOLY"
	case WaitingForRobChoosePlayer:
		return "WAITING_FOR_ROB_CHOOSE_PLAYER"
	case SpecialBuilding:
		return "SPECIAL_BUILDING"
	case Over:
		return "OVER"
	case Reset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// IsInitialPlacement reports whether p is one of the initial-placement phases.
func (p Phase) IsInitialPlacement() bool {
	switch p {
	case InitSettle1A, InitRoad1B, InitSettle2A, InitRoad2B, InitSettle3A, InitRoad3B:
		return true
	default:
		return false
	}
}

// IsPlacing reports whether p is one of the PLACING_* phases.
func (p Phase) IsPlacing() bool {
	switch p {
	case PlacingRoad, PlacingShip, PlacingSettlement, PlacingCity, PlacingFreeRoad1, PlacingFreeRoad2, PlacingRobber:
		return true
	default:
		return false
	}
}

// ScenarioOption is a boolean rules variant flag (spec 3, GLOSSARY Scenario).
type ScenarioOption int

const (
	SeaBoard ScenarioOption = iota
	SixPlayer
	PirateIslands
	ThreeInitialPlacements
	ClothVillages
)
