package catan

// Oracle answers pure, read-only legal-move queries over a Game (spec 4.2,
// C2). Results must never be cached across a mutation — callers construct a
// fresh Oracle (or reuse one bound to the same *Game, which is cheap: it
// holds no state of its own) after every applied message.
type Oracle struct {
	g *Game
}

// NewOracle binds an Oracle to a Game. The Oracle never mutates g.
func NewOracle(g *Game) *Oracle { return &Oracle{g: g} }

// IsPotentialSettlement reports whether seat could place a settlement at
// node: vacant, and no adjacent node is occupied (the distance rule), and —
// outside initial placement — touching one of seat's own roads or ships.
func (o *Oracle) IsPotentialSettlement(seat SeatID, n NodeID) bool {
	if _, occupied := o.g.NodeOwner(n); occupied {
		return false
	}
	for _, adj := range o.g.Board.AdjacentNodes(n) {
		if _, occ := o.g.NodeOwner(adj); occ {
			return false
		}
	}
	if o.g.Phase.IsInitialPlacement() {
		return true
	}
	return o.touchesOwnRoadOrShip(seat, n)
}

func (o *Oracle) touchesOwnRoadOrShip(seat SeatID, n NodeID) bool {
	for _, eid := range o.g.Board.Nodes[n].Edges {
		if piece, ok := o.g.EdgeOwner(eid); ok && piece.Owner == seat {
			return true
		}
	}
	return false
}

// IsPotentialCity reports whether seat holds a settlement at node (a city
// only ever upgrades seat's own settlement).
func (o *Oracle) IsPotentialCity(seat SeatID, n NodeID) bool {
	piece, ok := o.g.NodeOwner(n)
	return ok && piece.Owner == seat && piece.Kind == Settlement
}

// IsPotentialRoad reports whether seat could place a road at edge: vacant,
// and touching one of seat's settlements/cities or one of seat's existing
// roads (not cut off by an opponent's settlement sitting between, which the
// oracle approximates conservatively by requiring direct touch only — a
// stricter "not blocked past an opponent node" check belongs to the
// server's authoritative evaluator, out of scope per spec 1).
func (o *Oracle) IsPotentialRoad(seat SeatID, e EdgeID) bool {
	if _, occupied := o.g.EdgeOwner(e); occupied {
		return false
	}
	a, b := o.g.Board.EdgeEndpoints(e)
	return o.touchesOwnNodeOrRoad(seat, a) || o.touchesOwnNodeOrRoad(seat, b)
}

// IsPotentialShip mirrors IsPotentialRoad but additionally requires the edge
// to be coastal (ships may not be built inland).
func (o *Oracle) IsPotentialShip(seat SeatID, e EdgeID) bool {
	if !o.g.Board.Edges[e].IsCoastal {
		return false
	}
	if _, occupied := o.g.EdgeOwner(e); occupied {
		return false
	}
	a, b := o.g.Board.EdgeEndpoints(e)
	return o.touchesOwnNodeOrRoad(seat, a) || o.touchesOwnNodeOrRoad(seat, b)
}

func (o *Oracle) touchesOwnNodeOrRoad(seat SeatID, n NodeID) bool {
	if piece, ok := o.g.NodeOwner(n); ok && piece.Owner == seat {
		return true
	}
	for _, eid := range o.g.Board.Nodes[n].Edges {
		if piece, ok := o.g.EdgeOwner(eid); ok && piece.Owner == seat {
			return true
		}
	}
	return false
}

// ResourcesToBuild returns the cost multiset for a piece kind.
func (o *Oracle) ResourcesToBuild(kind PieceKind) ResourceSet { return ResourcesToBuild(kind) }

// MayPlayKnight reports whether seat holds a playable-now Knight, hasn't
// played a dev card this turn, and the current phase allows it.
func (o *Oracle) MayPlayKnight(seat SeatID) bool {
	p := o.g.Player(seat)
	if p == nil || p.PlayedDevCard {
		return false
	}
	if p.DevCards.PlayableNow[Knight] <= 0 {
		return false
	}
	return o.g.Phase == Roll || o.g.Phase == Play || o.g.Phase == SpecialBuilding
}

// MayPlayRoads reports whether seat may play a Road-Building card now.
func (o *Oracle) MayPlayRoads(seat SeatID) bool {
	return o.mayPlayNonKnight(seat, RoadBuilding)
}

// MayPlayMono reports whether seat may play a Monopoly card now.
func (o *Oracle) MayPlayMono(seat SeatID) bool {
	return o.mayPlayNonKnight(seat, Monopoly)
}

// MayPlayDisc reports whether seat may play a Discovery (Year of Plenty) card now.
func (o *Oracle) MayPlayDisc(seat SeatID) bool {
	return o.mayPlayNonKnight(seat, Discovery)
}

func (o *Oracle) mayPlayNonKnight(seat SeatID, kind DevCardKind) bool {
	p := o.g.Player(seat)
	if p == nil || p.PlayedDevCard {
		return false
	}
	if p.DevCards.PlayableNow[kind] <= 0 {
		return false
	}
	return o.g.Phase == Play || o.g.Phase == SpecialBuilding
}

// DiceProbabilityForHex returns the relative pip-count weight of a hex's
// dice number (36ths, matching the standard 2d6 distribution; 0 for desert).
func (o *Oracle) DiceProbabilityForHex(h HexID) int {
	return dicePips(o.g.Board.Hexes[h].DiceNum)
}

func dicePips(n int) int {
	switch n {
	case 2, 12:
		return 1
	case 3, 11:
		return 2
	case 4, 10:
		return 3
	case 5, 9:
		return 4
	case 6, 8:
		return 5
	default:
		return 0
	}
}

// EstimateResourceRarity returns, for each of the 5 known resources, the sum
// of pip weights across all non-robbed hexes producing it — a higher number
// means more common (less rare).
func (o *Oracle) EstimateResourceRarity() [5]int {
	var weight [5]int
	for _, h := range o.g.Board.Hexes {
		if h.IsDesert || h.Robber {
			continue
		}
		r, ok := hexResource(h.ID, o.g.Board)
		if !ok {
			continue
		}
		weight[r] += dicePips(h.DiceNum)
	}
	return weight
}

// hexResource maps a hex to the resource it produces. The standard board
// assigns resources by hex index cyclically in the same deterministic order
// dice numbers were assigned (NewStandardBoard); this keeps board.go free of
// a resource field while still letting the oracle reason about rarity.
func hexResource(h HexID, b *Board) (Resource, bool) {
	if b.Hexes[h].IsDesert {
		return 0, false
	}
	order := []Resource{Wood, Sheep, Wheat, Clay, Ore}
	return order[int(h)%len(order)], true
}

// CanAttackPirateFortress reports whether seat may attack the pirate
// fortress scenario piece, returning the fortress's hex if so. Pirate-island
// scenario only.
func (o *Oracle) CanAttackPirateFortress(seat SeatID) (HexID, bool) {
	if !o.g.Scenario[PirateIslands] {
		return 0, false
	}
	if o.g.Board.PirateHex < 0 {
		return 0, false
	}
	// A seat may attack only from a ship touching the pirate hex.
	for _, n := range o.g.Board.NodesOfHex(o.g.Board.PirateHex) {
		for _, eid := range o.g.Board.Nodes[n].Edges {
			if piece, ok := o.g.EdgeOwner(eid); ok && piece.Owner == seat && piece.Kind == Ship {
				return o.g.Board.PirateHex, true
			}
		}
	}
	return 0, false
}

// IsInitialPlacement reports whether the current phase is an initial-placement phase.
func (o *Oracle) IsInitialPlacement() bool { return o.g.Phase.IsInitialPlacement() }

// IsSpecialBuilding reports whether the current phase is Special Building.
func (o *Oracle) IsSpecialBuilding() bool { return o.g.Phase == SpecialBuilding }
