package tracker

import "github.com/settlers/robotbrain/pkg/catan"

// Set holds one Tracker per seat, including our own (spec 4.3: "one tracker
// per seat"), and runs the three-pass walk that every placement triggers.
type Set struct {
	bySeat [6]*Tracker
}

// NewSet allocates a Set with a tracker for each of numSeats seats.
func NewSet(numSeats int) *Set {
	s := &Set{}
	for i := 0; i < numSeats; i++ {
		s.bySeat[i] = NewTracker(catan.SeatID(i))
	}
	return s
}

// Tracker returns the tracker owned by seat.
func (s *Set) Tracker(seat catan.SeatID) *Tracker {
	if seat < 0 || int(seat) >= len(s.bySeat) {
		return nil
	}
	return s.bySeat[seat]
}

func (s *Set) active() []*Tracker {
	out := make([]*Tracker, 0, len(s.bySeat))
	for _, t := range s.bySeat {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Refresh runs the three-pass walk (spec 4.3) after a real placement has
// already been applied to g: every tracker reconciles its lattice against
// the new board state, threat lists are cleared, then threats and ETAs are
// recomputed observing the post-placement state.
func (s *Set) Refresh(g *catan.Game) {
	o := catan.NewOracle(g)

	// Pass 1: reconcile every tracker's lattice with the world.
	for _, t := range s.active() {
		t.rebuildFromOracle(g, o)
	}

	// Pass 2: clear threat lists on remaining possibles.
	for _, t := range s.active() {
		for _, p := range t.all() {
			p.clearThreats()
		}
	}

	// Pass 3: recompute threats (observing the newly added/removed state),
	// then ETAs.
	s.recomputeThreats()
	s.updateETAs(g, o)
}

// CancelOwnRejected removes the possible for one of our own placements that
// the server rejected, then clears and recomputes threats and ETAs (passes 2
// and 3 of the walk) without rebuilding from the oracle, so the cancelled
// entry stays removed until the next Refresh (spec 4.3).
func (s *Set) CancelOwnRejected(g *catan.Game, seat catan.SeatID, kind PossibleKind, coord int) {
	t := s.Tracker(seat)
	if t != nil {
		switch kind {
		case PossibleRoad:
			t.CancelWrongRoad(catan.EdgeID(coord))
		case PossibleShip:
			t.CancelWrongShip(catan.EdgeID(coord))
		case PossibleSettlement:
			t.CancelWrongSettlement(catan.NodeID(coord))
		case PossibleCity:
			t.CancelWrongCity(catan.NodeID(coord))
		}
	}
	_ = DummyCancelSeat // sentinel identity exists for parity with the source's cancel-call signature; Go's map-keyed lattice needs no separate dummy player object
	o := catan.NewOracle(g)
	for _, t := range s.active() {
		for _, p := range t.all() {
			p.clearThreats()
		}
	}
	s.recomputeThreats()
	s.updateETAs(g, o)
}

// recomputeThreats fills each possible's Threats/BiggestThreats with the
// opposing possibles of the same kind at the same coordinate: placing there
// first would invalidate or contest this one. BiggestThreats keeps the
// single highest-score entry, since at most one opponent can realize a given
// node/edge.
func (s *Set) recomputeThreats() {
	type coordKey struct {
		kind  PossibleKind
		coord int
	}
	byCoord := make(map[coordKey][]*PossiblePiece)
	for _, t := range s.active() {
		for _, p := range t.all() {
			k := coordKey{p.Kind, p.Coord}
			byCoord[k] = append(byCoord[k], p)
		}
	}

	for _, group := range byCoord {
		if len(group) < 2 {
			continue
		}
		for i, p := range group {
			for j, q := range group {
				if i == j || q.Owner == p.Owner {
					continue
				}
				p.Threats = append(p.Threats, q)
			}
			if len(p.Threats) > 0 {
				best := p.Threats[0]
				for _, thr := range p.Threats[1:] {
					if thr.Score > best.Score {
						best = thr
					}
				}
				p.BiggestThreats = []*PossiblePiece{best}
			}
		}
	}
}

// updateETAs estimates, for every possible, how many turns until its owner
// can afford it given their current production (spec 3, glossary ETA). The
// estimate uses the oracle's dice-probability weighting of the owner's
// existing settlements/cities as a proxy for expected resources per turn;
// -1 means "not presently estimable" (e.g. owner has no production yet).
func (s *Set) updateETAs(g *catan.Game, o *catan.Oracle) {
	for _, t := range s.active() {
		perTurn := expectedResourcesPerTurn(g, o, t.Seat)
		for _, p := range t.all() {
			cost := catan.ResourcesToBuild(possibleToPieceKind(p.Kind))
			p.ETA = estimateETA(g.Player(t.Seat), cost, perTurn)
		}
	}
}

// expectedResourcesPerTurn sums, over every node seat has settled or built a
// city on, the dice-pip weight of each adjacent hex — a deterministic proxy
// for average resources produced per turn, independent of which specific
// resource is short.
func expectedResourcesPerTurn(g *catan.Game, o *catan.Oracle, seat catan.SeatID) float64 {
	total := 0.0
	for n := range g.Board.Nodes {
		piece, ok := g.NodeOwner(catan.NodeID(n))
		if !ok || piece.Owner != seat {
			continue
		}
		mult := 1.0
		if piece.Kind == catan.City {
			mult = 2.0
		}
		for _, h := range g.Board.HexesOfNode(catan.NodeID(n)) {
			total += mult * float64(o.DiceProbabilityForHex(h)) / 36.0
		}
	}
	return total
}

// estimateETA returns ceil(still-needed / perTurn), or -1 if perTurn is too
// small to ever reach the cost.
func estimateETA(p *catan.Player, cost catan.ResourceSet, perTurn float64) int {
	if p == nil {
		return -1
	}
	needed := 0
	for _, r := range catan.KnownResources {
		short := cost.Get(r) - p.Hand.Get(r)
		if short > 0 {
			needed += short
		}
	}
	if needed == 0 {
		return 0
	}
	if perTurn <= 0.01 {
		return -1
	}
	turns := float64(needed) / perTurn
	eta := int(turns)
	if float64(eta) < turns {
		eta++
	}
	return eta
}

func possibleToPieceKind(k PossibleKind) catan.PieceKind {
	switch k {
	case PossibleRoad:
		return catan.Road
	case PossibleShip:
		return catan.Ship
	case PossibleSettlement:
		return catan.Settlement
	case PossibleCity:
		return catan.City
	case PossibleBuyDevCard:
		return catan.BuyDevCard
	default:
		return catan.PickSpecialItem
	}
}
