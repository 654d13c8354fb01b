package catan

// PieceKind identifies the type of a buildable or purchasable piece.
type PieceKind int

const (
	Road PieceKind = iota
	Ship
	Settlement
	City
	BuyDevCard
	PickSpecialItem
)

func (k PieceKind) String() string {
	switch k {
	case Road:
		return "road"
	case Ship:
		return "ship"
	case Settlement:
		return "settlement"
	case City:
		return "city"
	case BuyDevCard:
		return "buy-dev-card"
	case PickSpecialItem:
		return "pick-special-item"
	default:
		return "unknown"
	}
}

// IsOnNode reports whether pieces of this kind are placed on a board node
// (as opposed to an edge, or nowhere for cards).
func (k PieceKind) IsOnNode() bool {
	return k == Settlement || k == City
}

// IsOnEdge reports whether pieces of this kind are placed on a board edge.
func (k PieceKind) IsOnEdge() bool {
	return k == Road || k == Ship
}

// Piece is a placed road/ship/settlement/city on the board, owned by a seat.
// The Game stores these in an arena slice; Trackers and the brain reference
// them by PieceID handle rather than by pointer.
type Piece struct {
	ID    PieceID
	Kind  PieceKind
	Owner SeatID
	Coord int // NodeID for settlement/city, EdgeID for road/ship
}

// PieceID is an arena handle into Game.Pieces.
type PieceID int

// ResourcesToBuild returns the cost multiset for a piece kind, per the
// Legal-Move Oracle's resources_to_build query (spec 4.2). BuyDevCard and
// PickSpecialItem are purchases, not placements, but still have a cost.
func ResourcesToBuild(kind PieceKind) ResourceSet {
	switch kind {
	case Road:
		return NewResourceSet(ResourceCount{Clay, 1}, ResourceCount{Wood, 1})
	case Ship:
		return NewResourceSet(ResourceCount{Sheep, 1}, ResourceCount{Wood, 1})
	case Settlement:
		return NewResourceSet(
			ResourceCount{Clay, 1}, ResourceCount{Sheep, 1},
			ResourceCount{Wheat, 1}, ResourceCount{Wood, 1},
		)
	case City:
		return NewResourceSet(ResourceCount{Ore, 3}, ResourceCount{Wheat, 2})
	case BuyDevCard:
		return NewResourceSet(ResourceCount{Ore, 1}, ResourceCount{Sheep, 1}, ResourceCount{Wheat, 1})
	default:
		return ResourceSet{}
	}
}
