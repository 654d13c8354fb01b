package brain

import (
	"github.com/settlers/robotbrain/pkg/catan"
	"github.com/settlers/robotbrain/internal/tracker"
)

// handleCancelBuildRequest implements spec 4.5 Failure recovery: the server
// is telling us our last placement/purchase was illegal.
func (b *Brain) handleCancelBuildRequest(m catan.Message) {
	b.state.WhatWeFailedToBuild = &FailedBuild{Kind: m.Piece, Coord: m.Coord}

	if b.oracle().IsInitialPlacement() {
		b.state.SetExpect(initExpectationFor(m.Piece, b.game.Phase))
		stop, leave := b.recordDeniedBuild()
		if leave {
			b.emit(catan.Action{Kind: catan.ActLeaveGame, Reason: "too many refused initial placements"})
			b.state.Alive = false
		}
		_ = stop // initial placement never "stops building": the only options are retry or leave
		return
	}

	kind := possibleKindFor(m.Piece)
	b.trackers.CancelOwnRejected(b.game, b.state.Us, kind, m.Coord)
	b.plan = nil

	stop, _ := b.recordDeniedBuild()
	if b.game.Phase == catan.Play || b.game.Phase == catan.SpecialBuilding {
		b.emit(catan.Action{Kind: catan.ActCancelBuildRequest, PieceKind: m.Piece})
		b.emit(catan.Action{Kind: catan.ActEndTurn})
		return
	}
	if stop {
		b.emit(catan.Action{Kind: catan.ActEndTurn})
	}
}

// initExpectationFor maps a failed initial-placement piece kind back to the
// INIT_* phase the brain should re-enter so the planner retries.
func initExpectationFor(kind catan.PieceKind, current catan.Phase) catan.Phase {
	if kind.IsOnNode() {
		switch current {
		case catan.InitRoad1B, catan.InitSettle1A:
			return catan.InitSettle1A
		case catan.InitRoad2B, catan.InitSettle2A:
			return catan.InitSettle2A
		default:
			return catan.InitSettle3A
		}
	}
	switch current {
	case catan.InitSettle1A, catan.InitRoad1B:
		return catan.InitRoad1B
	case catan.InitSettle2A, catan.InitRoad2B:
		return catan.InitRoad2B
	default:
		return catan.InitRoad3B
	}
}

func possibleKindFor(k catan.PieceKind) tracker.PossibleKind {
	switch k {
	case catan.Road:
		return tracker.PossibleRoad
	case catan.Ship:
		return tracker.PossibleShip
	case catan.Settlement:
		return tracker.PossibleSettlement
	case catan.City:
		return tracker.PossibleCity
	case catan.BuyDevCard:
		return tracker.PossibleBuyDevCard
	default:
		return tracker.PossiblePickSpecialItem
	}
}

// handleDevCardCannotPlay records rejected_play_devcard_type so that card
// type is not retried this turn, and clears whichever wait was tied to it.
func (b *Brain) handleDevCardCannotPlay(m catan.Message) {
	b.state.RejectedPlayDevCardType = m.DevCardKind
	b.state.HasRejectedDevCardType = true
	b.state.WaitingForDevCard = false
}

// sameAsFailedBuild reports whether (kind, coord) is identical to the build
// the server refused earlier this turn — the brain must never retry it
// unchanged this turn (spec 4.5 Failure recovery special rule).
func (b *Brain) sameAsFailedBuild(kind catan.PieceKind, coord int) bool {
	f := b.state.WhatWeFailedToBuild
	return f != nil && f.Kind == kind && f.Coord == coord
}
