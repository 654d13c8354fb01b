package catan

// Game is the local replica of the full authoritative game state (spec 3
// Game). Fields are mutated by the C1 mutator methods below, invoked from
// the brain's dispatch loop as it applies inbound messages; the brain also
// assigns a few plain fields directly (DevCardsRemaining, and a player's
// PlayedDevCard and OpenOffer). No mutation performs any I/O.
type Game struct {
	Board *Board

	Players       [6]*Player // arena of up to 6 seats; unused seats are Vacant
	NumSeats      int

	Phase    Phase
	OldPhase Phase

	CurrentPlayer SeatID
	Dice          int

	DevCardsRemaining int

	Scenario map[ScenarioOption]bool

	Pieces []Piece // arena of all placed pieces, indexed by PieceID

	// nodeOwner/edgeOwner give O(1) occupancy lookups for the oracle.
	nodeOwner map[NodeID]PieceID
	edgeOwner map[EdgeID]PieceID
}

// NewGame creates a fresh Game with a standard board and numSeats players,
// all vacant, in the initial-placement phase.
func NewGame(numSeats int) *Game {
	g := &Game{
		Board:     NewStandardBoard(),
		NumSeats:  numSeats,
		Phase:     InitSettle1A,
		Scenario:  make(map[ScenarioOption]bool),
		nodeOwner: make(map[NodeID]PieceID),
		edgeOwner: make(map[EdgeID]PieceID),
	}
	for i := 0; i < numSeats; i++ {
		g.Players[i] = NewPlayer(SeatID(i))
	}
	g.DevCardsRemaining = 25
	return g
}

// Player returns the player at seat, or nil if seat is out of range.
func (g *Game) Player(seat SeatID) *Player {
	if seat < 0 || int(seat) >= len(g.Players) {
		return nil
	}
	return g.Players[seat]
}

// SetPhase records the previous phase before overwriting, per spec 4.1.
func (g *Game) SetPhase(newPhase Phase) {
	g.OldPhase = g.Phase
	g.Phase = newPhase
}

// SetCurrentPlayer sets whose turn it is without rotating per-turn state.
func (g *Game) SetCurrentPlayer(seat SeatID) {
	g.CurrentPlayer = seat
}

// AdvanceTurn clears per-turn flags and rotates to the next seat, per spec
// 4.1. It ages each player's dev cards (NewThisTurn -> PlayableNow) only for
// the player whose turn is beginning, matching JSettlers semantics where a
// card bought this turn becomes playable starting the player's next turn.
func (g *Game) AdvanceTurn(nextSeat SeatID) {
	if p := g.Player(g.CurrentPlayer); p != nil {
		p.PlayedDevCard = false
	}
	g.CurrentPlayer = nextSeat
	if p := g.Player(nextSeat); p != nil {
		p.DevCards.AgeCards()
		p.PlayedDevCard = false
	}
}

// ApplyPutPiece places a piece with no legality check (the server already
// validated it; spec 4.1).
func (g *Game) ApplyPutPiece(seat SeatID, coord int, kind PieceKind) PieceID {
	id := PieceID(len(g.Pieces))
	g.Pieces = append(g.Pieces, Piece{ID: id, Kind: kind, Owner: seat, Coord: coord})

	p := g.Player(seat)
	switch kind {
	case Road:
		if p != nil {
			p.Pieces.Roads--
		}
		g.edgeOwner[EdgeID(coord)] = id
	case Ship:
		if p != nil {
			p.Pieces.Ships--
		}
		g.edgeOwner[EdgeID(coord)] = id
	case Settlement:
		if p != nil {
			p.Pieces.Settlements--
		}
		g.nodeOwner[NodeID(coord)] = id
	case City:
		// A city replaces a settlement at the same node: the settlement
		// piece returns to supply, the node's owning piece becomes the city.
		if existing, ok := g.nodeOwner[NodeID(coord)]; ok && g.Pieces[existing].Owner == seat {
			g.Pieces[existing].Kind = City
			if p != nil {
				p.Pieces.Settlements++
				p.Pieces.Cities--
			}
			g.Pieces = g.Pieces[:len(g.Pieces)-1] // drop the just-appended duplicate
			return existing
		}
		if p != nil {
			p.Pieces.Cities--
		}
		g.nodeOwner[NodeID(coord)] = id
	}
	if p != nil {
		p.Placed = append(p.Placed, id)
	}
	return id
}

// ApplyMovePiece relocates a ship from one edge to another (ships only).
func (g *Game) ApplyMovePiece(seat SeatID, from, to int, kind PieceKind) {
	id, ok := g.edgeOwner[EdgeID(from)]
	if !ok {
		return
	}
	delete(g.edgeOwner, EdgeID(from))
	g.Pieces[id].Coord = to
	g.edgeOwner[EdgeID(to)] = id
}

// RemovePiece un-places a piece and returns it to the owning player's
// supply, reversing ApplyPutPiece exactly.
func (g *Game) RemovePiece(id PieceID) {
	if int(id) < 0 || int(id) >= len(g.Pieces) {
		return
	}
	piece := g.Pieces[id]
	p := g.Player(piece.Owner)
	switch piece.Kind {
	case Road:
		delete(g.edgeOwner, EdgeID(piece.Coord))
		if p != nil {
			p.Pieces.Roads++
		}
	case Ship:
		delete(g.edgeOwner, EdgeID(piece.Coord))
		if p != nil {
			p.Pieces.Ships++
		}
	case Settlement:
		delete(g.nodeOwner, NodeID(piece.Coord))
		if p != nil {
			p.Pieces.Settlements++
		}
	case City:
		delete(g.nodeOwner, NodeID(piece.Coord))
		if p != nil {
			p.Pieces.Cities++
		}
	}
	if p != nil {
		for i, pid := range p.Placed {
			if pid == id {
				p.Placed = append(p.Placed[:i], p.Placed[i+1:]...)
				break
			}
		}
		if len(p.Placed) == 0 {
			p.Placed = nil
		}
	}
	if int(id) == len(g.Pieces)-1 {
		g.Pieces = g.Pieces[:id]
	}
}

// ApplyDice records the dice roll.
func (g *Game) ApplyDice(n int) { g.Dice = n }

// ApplyRobberHex moves the robber. A negative incoming coordinate means a
// pirate move instead (spec 4.1); the sign is already stripped by the caller
// via ApplyPirateHex, this method always sets the robber.
func (g *Game) ApplyRobberHex(hex HexID) {
	for i := range g.Board.Hexes {
		g.Board.Hexes[i].Robber = false
	}
	g.Board.Hexes[hex].Robber = true
	g.Board.RobberHex = hex
}

// ApplyPirateHex moves the pirate ship (scenario).
func (g *Game) ApplyPirateHex(hex HexID) {
	for i := range g.Board.Hexes {
		g.Board.Hexes[i].Pirate = false
	}
	g.Board.Hexes[hex].Pirate = true
	g.Board.PirateHex = hex
}

// ApplyPlayerElement updates a single resource or counter per spec 4.1. When
// losing more of a specific resource than we believe the player holds, the
// excess is debited from that player's Unknown pool (our mirror of an
// opponent's hand may simply be wrong about composition, never about total).
func (g *Game) ApplyPlayerElement(seat SeatID, field PlayerFieldKind, op PlayerElementOp, value int) {
	p := g.Player(seat)
	if p == nil {
		return
	}
	if r, ok := resourceForField(field); ok {
		switch op {
		case OpSet:
			p.Hand.Add(r, value-p.Hand.Get(r))
		case OpGain:
			p.Hand.Add(r, value)
		case OpLose:
			have := p.Hand.Get(r)
			if value > have {
				excess := value - have
				p.Hand.Add(r, -have)
				unknownHave := p.Hand.Get(Unknown)
				if excess > unknownHave {
					excess = unknownHave
				}
				p.Hand.Add(Unknown, -excess)
			} else {
				p.Hand.Add(r, -value)
			}
		}
		return
	}
	applyCounterField(p, field, op, value)
}

func resourceForField(field PlayerFieldKind) (Resource, bool) {
	switch field {
	case FieldClay:
		return Clay, true
	case FieldOre:
		return Ore, true
	case FieldSheep:
		return Sheep, true
	case FieldWheat:
		return Wheat, true
	case FieldWood:
		return Wood, true
	case FieldUnknown:
		return Unknown, true
	default:
		return 0, false
	}
}

func applyCounterField(p *Player, field PlayerFieldKind, op PlayerElementOp, value int) {
	var cur *int
	switch field {
	case FieldSettlements:
		cur = &p.Pieces.Settlements
	case FieldCities:
		cur = &p.Pieces.Cities
	case FieldRoads:
		cur = &p.Pieces.Roads
	case FieldShips:
		cur = &p.Pieces.Ships
	case FieldKnights:
		cur = &p.KnightsPlayed
	default:
		return
	}
	switch op {
	case OpSet:
		*cur = value
	case OpGain:
		*cur += value
	case OpLose:
		*cur -= value
	}
}

// ApplyResourceCountAssert reconciles a total-resource-count assertion from
// the server. Our own hand must always match exactly (a mismatch there is
// only ever logged, never corrected, by the brain's diagnostic path). An
// opponent's hand whose total disagrees is flattened to all-Unknown of the
// asserted total (spec 3's resource hand invariant).
func (g *Game) ApplyResourceCountAssert(seat SeatID, total int, ours SeatID) bool {
	p := g.Player(seat)
	if p == nil {
		return true
	}
	if p.Hand.Total() == total {
		return true
	}
	if seat == ours {
		return false // mismatch on our own hand: diagnostic-only, not corrected here
	}
	p.Hand = ResourceSet{}
	p.Hand.Add(Unknown, total)
	return true
}

// ApplyDevCardAction updates a player's dev card inventory per spec 4.1.
func (g *Game) ApplyDevCardAction(seat SeatID, kind DevCardKind, op DevCardOp) {
	p := g.Player(seat)
	if p == nil {
		return
	}
	switch op {
	case DevCardDraw, DevCardAddNew:
		p.DevCards.NewThisTurn[kind]++
		g.DevCardsRemaining--
	case DevCardAddOld:
		p.DevCards.PlayableNow[kind]++
	case DevCardPlay:
		if p.DevCards.PlayableNow[kind] > 0 {
			p.DevCards.PlayableNow[kind]--
		}
		p.PlayedDevCard = true
		if kind == Knight {
			p.KnightsPlayed++
		}
	case DevCardCannotPlay:
		// no state change; the brain records rejected_play_devcard_type itself.
	}
}

// NodeOwner returns the piece occupying a node, if any.
func (g *Game) NodeOwner(n NodeID) (Piece, bool) {
	id, ok := g.nodeOwner[n]
	if !ok {
		return Piece{}, false
	}
	return g.Pieces[id], true
}

// EdgeOwner returns the piece occupying an edge, if any.
func (g *Game) EdgeOwner(e EdgeID) (Piece, bool) {
	id, ok := g.edgeOwner[e]
	if !ok {
		return Piece{}, false
	}
	return g.Pieces[id], true
}

// Snapshot returns a deep-enough copy of mutable state to support the
// idempotence law "apply-then-revert of a PutPiece leaves the mirror
// bitwise equal to its pre-apply state" (spec 8). Tests compare Snapshots
// rather than the live *Game (which holds map/slice internals) to avoid
// false mismatches from map iteration order or slice capacity growth.
type Snapshot struct {
	Players   [6]Player
	Pieces    []Piece
	NodeOwner map[NodeID]PieceID
	EdgeOwner map[EdgeID]PieceID
	Phase     Phase
	Dice      int
}

// Snap captures the current mutable state.
func (g *Game) Snap() Snapshot {
	s := Snapshot{
		Pieces:    append([]Piece(nil), g.Pieces...),
		NodeOwner: make(map[NodeID]PieceID, len(g.nodeOwner)),
		EdgeOwner: make(map[EdgeID]PieceID, len(g.edgeOwner)),
		Phase:     g.Phase,
		Dice:      g.Dice,
	}
	for i := 0; i < 6; i++ {
		if g.Players[i] != nil {
			s.Players[i] = *g.Players[i]
		}
	}
	for k, v := range g.nodeOwner {
		s.NodeOwner[k] = v
	}
	for k, v := range g.edgeOwner {
		s.EdgeOwner[k] = v
	}
	return s
}
