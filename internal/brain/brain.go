package brain

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/settlers/robotbrain/internal/planner"
	"github.com/settlers/robotbrain/internal/tracker"
	"github.com/settlers/robotbrain/pkg/catan"
)

// Emitter sends an outbound action to the server. Implemented by
// internal/transport in production, and by a recording fake in tests.
type Emitter interface {
	Emit(catan.Action)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(catan.Action)

func (f EmitterFunc) Emit(a catan.Action) { f(a) }

// Brain is one C5 driver instance: one per game per bot, run by a dedicated
// cooperative actor per spec 5. All fields below are touched only by the
// goroutine running Run; there is no lock because there is no concurrent
// access by construction.
type Brain struct {
	game     *catan.Game
	state    *State
	trackers *tracker.Set
	strategy planner.Strategy
	negotiator *planner.Negotiator
	plan     *planner.Plan

	queue  *Queue
	out    Emitter
	log    zerolog.Logger

	tradeEnabled     bool
	maxDeniedPerTurn int

	lastOffer catan.Offer // most recent offer we proposed, for tickTimeoutTradeResponse bookkeeping
}

// Config bundles Brain construction parameters.
type Config struct {
	Seats            int
	Us               catan.SeatID
	Strategy         planner.Strategy
	QueueDepth       int
	TradeEnabled     bool // spec 6 trade_flag: if false, trading is entirely disabled
	MaxDeniedPerTurn int  // spec 6 max_denied_per_turn; defaults to MaxDeniedBuildingPerTurn if zero
	Log              zerolog.Logger
}

// New constructs a Brain ready to Run.
func New(cfg Config) *Brain {
	maxDenied := cfg.MaxDeniedPerTurn
	if maxDenied <= 0 {
		maxDenied = MaxDeniedBuildingPerTurn
	}
	return &Brain{
		game:             catan.NewGame(cfg.Seats),
		state:            NewState(cfg.Us),
		trackers:         tracker.NewSet(cfg.Seats),
		strategy:         cfg.Strategy,
		negotiator:       planner.NewNegotiator(),
		queue:            NewQueue(cfg.QueueDepth),
		tradeEnabled:     cfg.TradeEnabled,
		maxDeniedPerTurn: maxDenied,
		log:              cfg.Log,
	}
}

// Queue exposes the brain's event queue so the transport layer can push
// inbound messages and the orchestrator can trigger a clean shutdown.
func (b *Brain) Queue() *Queue { return b.queue }

// Seat returns the seat this brain instance plays.
func (b *Brain) Seat() catan.SeatID { return b.state.Us }

// Attach wires the outbound emitter (normally internal/transport's client).
func (b *Brain) Attach(out Emitter) { b.out = out }

func (b *Brain) emit(a catan.Action) {
	b.state.ResetCounter()
	if b.out != nil {
		b.out.Emit(a)
	}
}

func (b *Brain) oracle() *catan.Oracle { return catan.NewOracle(b.game) }

// Run drains the queue until ctx is cancelled, the queue is closed, or the
// brain observes its own kill (spec 5 Suspension points / Cancellation).
// This is the single task that ever reads or mutates b's fields.
func (b *Brain) Run(ctx context.Context) {
	for b.state.Alive {
		select {
		case <-ctx.Done():
			return
		case <-b.queue.Done():
			return
		case m, ok := <-b.queue.Events():
			if !ok {
				return
			}
			b.handle(m)
		}
	}
}

// handle runs the full per-message pipeline (spec 4.5 "The main loop").
func (b *Brain) handle(m catan.Message) {
	b.state.RecordTurnEvent(m) // step 1

	if m.Kind == catan.MsgTimingPing {
		b.state.Counter++
		b.applyTick(b.evaluateTick())
		return
	}

	b.preHandle(m) // step 2

	ourTurn := b.state.OurTurn(b.game) // step 3

	switch {
	case b.game.Phase == catan.Roll && !b.state.WaitingForGameState:
		b.stepRoll(ourTurn) // step 4
	case b.game.Phase == catan.WaitingForRobberOrPirate && ourTurn:
		b.stepChooseRobberOrPirate() // step 5
	case b.game.Phase == catan.PlacingRobber && ourTurn && !b.state.WaitingForGameState:
		b.stepMoveRobber() // step 6
	case b.game.Phase == catan.WaitingForDiscovery:
		b.stepDiscoveryPick() // step 7
	case b.game.Phase == catan.WaitingForMonopoly:
		b.stepMonopolyPick() // step 8
	case (b.game.Phase == catan.Play || b.game.Phase == catan.SpecialBuilding) && !b.anyWaiting() && !b.state.HasExpect:
		b.stepPlayOrSpecialBuilding(ourTurn) // step 9
	}

	if b.state.HasExpect && b.game.Phase.IsPlacing() {
		b.stepEmitPlacement() // step 10
	}

	b.postHandle(m) // step 11
}

func (b *Brain) anyWaiting() bool {
	s := b.state
	return s.WaitingForGameState || s.WaitingForTradeResponse || s.WaitingForTradeMsg ||
		s.WaitingForDevCard || s.WaitingForPickSpecialItem || s.WaitingForFortressAttack
}
