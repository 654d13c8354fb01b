package tracker

import "github.com/settlers/robotbrain/pkg/catan"

// Tracker owns one seat's possible-piece lattice: coordinate to possible
// road/ship, to possible settlement, to possible city (spec 4.3). It is
// touched only by the brain task; the source's monitor wrapper is omitted
// per spec 9 since single-task access is enforced by construction.
type Tracker struct {
	Seat catan.SeatID

	Roads       map[catan.EdgeID]*PossiblePiece
	Ships       map[catan.EdgeID]*PossiblePiece
	Settlements map[catan.NodeID]*PossiblePiece
	Cities      map[catan.NodeID]*PossiblePiece
}

// NewTracker returns an empty tracker for seat.
func NewTracker(seat catan.SeatID) *Tracker {
	return &Tracker{
		Seat:        seat,
		Roads:       make(map[catan.EdgeID]*PossiblePiece),
		Ships:       make(map[catan.EdgeID]*PossiblePiece),
		Settlements: make(map[catan.NodeID]*PossiblePiece),
		Cities:      make(map[catan.NodeID]*PossiblePiece),
	}
}

// AddNewRoad reconciles a newly-opened road possibility at edge, creating
// one if the oracle still considers it legal for this seat and none exists.
func (t *Tracker) AddNewRoad(o *catan.Oracle, e catan.EdgeID) {
	if !o.IsPotentialRoad(t.Seat, e) {
		delete(t.Roads, e)
		return
	}
	if _, ok := t.Roads[e]; !ok {
		t.Roads[e] = &PossiblePiece{Kind: PossibleRoad, Owner: t.Seat, Coord: int(e), ETA: -1}
	}
}

// CancelWrongRoad removes a road possibility that a placement (real or
// server-rejected) has invalidated. Set.CancelOwnRejected calls it for our
// own refused builds.
func (t *Tracker) CancelWrongRoad(e catan.EdgeID) { delete(t.Roads, e) }

// AddNewShip mirrors AddNewRoad for ships.
func (t *Tracker) AddNewShip(o *catan.Oracle, e catan.EdgeID) {
	if !o.IsPotentialShip(t.Seat, e) {
		delete(t.Ships, e)
		return
	}
	if _, ok := t.Ships[e]; !ok {
		t.Ships[e] = &PossiblePiece{Kind: PossibleShip, Owner: t.Seat, Coord: int(e), ETA: -1}
	}
}

// CancelWrongShip removes a ship possibility.
func (t *Tracker) CancelWrongShip(e catan.EdgeID) { delete(t.Ships, e) }

// AddNewSettlement mirrors AddNewRoad for settlements.
func (t *Tracker) AddNewSettlement(o *catan.Oracle, n catan.NodeID) {
	if !o.IsPotentialSettlement(t.Seat, n) {
		delete(t.Settlements, n)
		return
	}
	if _, ok := t.Settlements[n]; !ok {
		t.Settlements[n] = &PossiblePiece{Kind: PossibleSettlement, Owner: t.Seat, Coord: int(n), ETA: -1}
	}
}

// CancelWrongSettlement removes a settlement possibility.
func (t *Tracker) CancelWrongSettlement(n catan.NodeID) { delete(t.Settlements, n) }

// AddNewCity mirrors AddNewRoad for cities.
func (t *Tracker) AddNewCity(o *catan.Oracle, n catan.NodeID) {
	if !o.IsPotentialCity(t.Seat, n) {
		delete(t.Cities, n)
		return
	}
	if _, ok := t.Cities[n]; !ok {
		t.Cities[n] = &PossiblePiece{Kind: PossibleCity, Owner: t.Seat, Coord: int(n), ETA: -1}
	}
}

// CancelWrongCity removes a city possibility.
func (t *Tracker) CancelWrongCity(n catan.NodeID) { delete(t.Cities, n) }

// all returns every possible piece currently tracked, used by threat
// recomputation and ETA passes which treat the four maps uniformly.
func (t *Tracker) all() []*PossiblePiece {
	out := make([]*PossiblePiece, 0, len(t.Roads)+len(t.Ships)+len(t.Settlements)+len(t.Cities))
	for _, p := range t.Roads {
		out = append(out, p)
	}
	for _, p := range t.Ships {
		out = append(out, p)
	}
	for _, p := range t.Settlements {
		out = append(out, p)
	}
	for _, p := range t.Cities {
		out = append(out, p)
	}
	return out
}

// rebuildFromOracle fully recomputes this tracker's lattice against the
// current board: every node and edge is re-queried rather than patched
// incrementally from the triggering placement.
func (t *Tracker) rebuildFromOracle(g *catan.Game, o *catan.Oracle) {
	for n := range g.Board.Nodes {
		nid := catan.NodeID(n)
		t.AddNewSettlement(o, nid)
		t.AddNewCity(o, nid)
	}
	for e := range g.Board.Edges {
		eid := catan.EdgeID(e)
		t.AddNewRoad(o, eid)
		t.AddNewShip(o, eid)
	}
}
