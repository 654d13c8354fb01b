package brain

import (
	"fmt"

	"github.com/settlers/robotbrain/pkg/catan"
)

// tickOutcome describes what, if anything, a Ping should do given the
// current wait flags and counter (spec 4.5 Tick and timeouts).
type tickOutcome int

const (
	tickNoop tickOutcome = iota
	tickAbandonTradeMsg
	tickTimeoutTradeResponse
	tickResendLastMessage
	tickDeadlockLeave
)

// evaluateTick inspects counter against the wait flags currently set and
// returns the single highest-priority timeout action to take, in the order
// the spec lists them (most severe checked first so deadlock always wins).
func (b *Brain) evaluateTick() tickOutcome {
	s := b.state
	if s.Counter > deadlockTicks {
		return tickDeadlockLeave
	}
	if s.WaitingForGameState && s.Counter > gameStateResendTicks {
		return tickResendLastMessage
	}
	if s.WaitingForTradeResponse && s.Counter > tradeResponseTimeoutTicks {
		return tickTimeoutTradeResponse
	}
	if s.WaitingForTradeMsg && s.Counter > tradeMsgAbandonTicks {
		return tickAbandonTradeMsg
	}
	return tickNoop
}

// applyTick runs the side effects of a tick outcome.
func (b *Brain) applyTick(outcome tickOutcome) {
	switch outcome {
	case tickAbandonTradeMsg:
		b.state.WaitingForTradeMsg = false
		b.state.ResetCounter()
	case tickTimeoutTradeResponse:
		b.state.WaitingForTradeResponse = false
		if me := b.game.Player(b.state.Us); me != nil {
			me.OpenOffer = nil
		}
		for _, seat := range b.lastOffer.ToSeats {
			for _, r := range catan.KnownResources {
				if b.lastOffer.Get.Get(r) > 0 {
					b.negotiator.MarkNotSelling(seat, r)
				}
			}
		}
		b.emit(catan.Action{Kind: catan.ActClearOffer})
		b.state.ResetCounter()
	case tickResendLastMessage:
		b.emit(catan.Action{Kind: catan.ActResend})
		b.state.ResetCounter()
	case tickDeadlockLeave:
		b.emit(catan.Action{Kind: catan.ActLeaveGame, Reason: fmt.Sprintf("counter %d", deadlockTicks)})
		b.state.Alive = false
	}
}

// recordDeniedBuild tracks a refused build/buy within the current turn and
// decides whether the brain should stop building, or leave the game during
// initial placement (spec 4.5 Tick and timeouts).
func (b *Brain) recordDeniedBuild() (stopBuilding, leaveGame bool) {
	b.state.DeniedBuildingsThisTurn++
	if b.oracle().IsInitialPlacement() {
		b.state.DeniedInitialPlacements++
		if b.state.DeniedInitialPlacements > 2*b.maxDeniedPerTurn {
			return true, true
		}
		return false, false
	}
	if b.state.DeniedBuildingsThisTurn > b.maxDeniedPerTurn {
		return true, false
	}
	return false, false
}
