// Package tracker implements C3: one possible-piece lattice per seat,
// recomputed after every placement applied to the mirrored game (catan.Game).
package tracker

import "github.com/settlers/robotbrain/pkg/catan"

// PossibleKind tags what a PossiblePiece represents. Dev-card purchases and
// special-item picks carry no coordinate, so they share the variant with
// placements rather than forcing a second type hierarchy.
type PossibleKind int

const (
	PossibleRoad PossibleKind = iota
	PossibleShip
	PossibleSettlement
	PossibleCity
	PossibleBuyDevCard
	PossiblePickSpecialItem
)

func (k PossibleKind) String() string {
	switch k {
	case PossibleRoad:
		return "road"
	case PossibleShip:
		return "ship"
	case PossibleSettlement:
		return "settlement"
	case PossibleCity:
		return "city"
	case PossibleBuyDevCard:
		return "buy-dev-card"
	case PossiblePickSpecialItem:
		return "pick-special-item"
	default:
		return "unknown"
	}
}

// DummyCancelSeat is the sentinel player identity for our own refused
// placements (spec 4.3). No call takes it as an argument: the CancelWrongX
// methods remove by coordinate from the owning seat's tracker.
const DummyCancelSeat catan.SeatID = -1

// PossiblePiece is a candidate future placement or purchase (spec 3).
type PossiblePiece struct {
	Kind  PossibleKind
	Owner catan.SeatID
	Coord int // unused (0) for BuyDevCard/PickSpecialItem

	ETA   int // turns until attainable, -1 if not presently estimable
	Score float64

	Threats      []*PossiblePiece // opponents' possibles that would invalidate or contest this one
	BiggestThreats []*PossiblePiece // top subset of Threats by Score, recomputed alongside Threats

	Expanded bool // planner bookkeeping: already used to seed a deeper search node
}

// clearThreats resets the threat lists ahead of a recompute pass (spec 4.3
// step 2); ETA and Score survive a clear and are refreshed separately.
func (p *PossiblePiece) clearThreats() {
	p.Threats = nil
	p.BiggestThreats = nil
}
