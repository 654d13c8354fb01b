package brain

import "github.com/settlers/robotbrain/pkg/catan"

// MaxDeniedBuildingPerTurn is the ordinary-play threshold past which the
// brain stops attempting further builds and ends its turn (spec 4.5 Tick
// and timeouts). During initial placement the threshold is doubled before
// the brain gives up and leaves the game entirely.
const MaxDeniedBuildingPerTurn = 3

// Tick thresholds (spec 4.5).
const (
	tradeMsgAbandonTicks      = 10
	tradeResponseTimeoutTicks = 100
	gameStateResendTicks      = 10000
	deadlockTicks             = 15000
)

// State holds every expect_*/waiting_for_* flag plus per-turn transient
// bookkeeping the driver needs across dequeues (spec 4.5). At most one
// expect_X may be true at a time; WaitingForGameState may coexist with
// exactly one expect_X, matching the flag-discipline invariant.
type State struct {
	Seat catan.SeatID
	Us   catan.SeatID

	// expect_X: which phase transition we are waiting to observe next.
	Expect catan.Phase
	HasExpect bool

	WaitingForGameState      bool
	WaitingForTradeResponse  bool
	WaitingForTradeMsg       bool
	WaitingForDevCard        bool
	WaitingForPickSpecialItem bool
	WaitingForFortressAttack bool
	WaitingForDiscards       bool

	Counter int // incremented once per Ping, reset on forward progress

	// Per-turn transient state, reset on Turn.
	TurnEvents           []catan.Message
	DeniedBuildingsThisTurn int
	DeniedInitialPlacements int
	WhatWeFailedToBuild  *FailedBuild
	RejectedPlayDevCardType catan.DevCardKind
	HasRejectedDevCardType  bool
	MoveRobberOnSeven    bool
	DoneTrading          bool

	Alive bool
}

// FailedBuild records the last placement/purchase the server rejected this
// turn so the brain never re-requests an identical build (spec 4.5 Failure
// recovery: "never re-requests a build equal to what_we_failed_to_build").
type FailedBuild struct {
	Kind  catan.PieceKind
	Coord int
}

// NewState returns a fresh State for seat us.
func NewState(us catan.SeatID) *State {
	return &State{Us: us, Alive: true}
}

// ResetTurn clears per-turn transient state (spec 4.5 step 2: "rotate
// per-turn state on Turn").
func (s *State) ResetTurn() {
	s.TurnEvents = nil
	s.DeniedBuildingsThisTurn = 0
	s.WhatWeFailedToBuild = nil
	s.HasRejectedDevCardType = false
	s.MoveRobberOnSeven = false
	s.DoneTrading = false
	s.WaitingForDiscards = false
}

// SetExpect records which phase we now expect next, enforcing "at most one
// expect_X at a time" by simply overwriting.
func (s *State) SetExpect(phase catan.Phase) {
	s.Expect = phase
	s.HasExpect = true
}

// ClearExpect clears the expectation once the awaited phase is observed.
func (s *State) ClearExpect() {
	s.HasExpect = false
}

// ResetCounter is called on any forward progress or emitted action (spec
// 4.5 Tick and timeouts).
func (s *State) ResetCounter() { s.Counter = 0 }

// RecordTurnEvent appends a non-ping, non-chat message to turn_events_current.
func (s *State) RecordTurnEvent(m catan.Message) {
	if m.Kind == catan.MsgTimingPing {
		return
	}
	s.TurnEvents = append(s.TurnEvents, m)
}

// OurTurn reports whether it is currently our seat's turn.
func (s *State) OurTurn(g *catan.Game) bool {
	return g.CurrentPlayer == s.Us
}
