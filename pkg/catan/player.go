package catan

// SeatID is a small-integer handle identifying a seat at the table. The
// dummy-cancel sentinel seat (GLOSSARY) uses SeatID -1 and is never a real
// player; see tracker.DummyCancelSeat in internal/tracker.
type SeatID int

// PieceInventory tracks remaining (unbuilt) pieces per kind for a player.
type PieceInventory struct {
	Settlements int
	Cities      int
	Roads       int
	Ships       int
}

// StandardPieceInventory returns the standard Catan starting counts.
func StandardPieceInventory() PieceInventory {
	return PieceInventory{Settlements: 5, Cities: 4, Roads: 15, Ships: 15}
}

// Offer is a player's currently open trade proposal (spec 3, 4.4).
type Offer struct {
	From     SeatID
	Give     ResourceSet
	Get      ResourceSet
	ToSeats  []SeatID // mask of target seats; empty means "all"
}

// Player mirrors one seat's full state (spec 3 Player).
type Player struct {
	Seat     SeatID
	Nickname string
	Vacant   bool

	Hand ResourceSet

	Pieces  PieceInventory
	Placed  []PieceID

	DevCards       DevCardInventory
	PlayedDevCard  bool // played a dev card already this turn
	KnightsPlayed  int  // army size
	LongestRoad    bool
	LargestArmy    bool

	PortTrade [5]bool // per-resource 2:1 port flags (index by Resource 0..4)

	OpenOffer *Offer
}

// NewPlayer creates a vacant seat.
func NewPlayer(seat SeatID) *Player {
	return &Player{
		Seat:     seat,
		Vacant:   true,
		Pieces:   StandardPieceInventory(),
		DevCards: NewDevCardInventory(),
	}
}

// SitDown occupies a vacant seat with a named player, resetting per-game state.
func (p *Player) SitDown(nickname string) {
	p.Nickname = nickname
	p.Vacant = false
}

// VictoryPoints returns the player's public+hidden VP count (settlements=1,
// cities=2, longest road/largest army=2 each, VP dev cards=1 each).
func (p *Player) VictoryPoints() int {
	vp := 0
	vp += (StandardPieceInventory().Settlements - p.Pieces.Settlements)
	vp += 2 * (StandardPieceInventory().Cities - p.Pieces.Cities)
	if p.LongestRoad {
		vp += 2
	}
	if p.LargestArmy {
		vp += 2
	}
	vp += p.DevCards.PlayableNow[VictoryPoint] + p.DevCards.NewThisTurn[VictoryPoint]
	return vp
}
