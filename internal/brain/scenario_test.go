package brain

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/settlers/robotbrain/internal/planner"
	"github.com/settlers/robotbrain/pkg/catan"
)

func newTestBrain(t *testing.T) (*Brain, *[]catan.Action) {
	t.Helper()
	var emitted []catan.Action
	b := New(Config{
		Seats:        4,
		Us:           0,
		Strategy:     planner.NewStrategy(planner.FastStrategy, nil),
		QueueDepth:   16,
		TradeEnabled: true,
		Log:          zerolog.Nop(),
	})
	b.Attach(EmitterFunc(func(a catan.Action) { emitted = append(emitted, a) }))
	return b, &emitted
}

func TestScenario_InitialPlacement_PutPieceRefreshesTrackers(t *testing.T) {
	b, _ := newTestBrain(t)
	b.game.SetPhase(catan.InitSettle1A)

	n := catan.NodeID(0)
	b.handle(catan.Message{Kind: catan.MsgPutPiece, Seat: 0, Coord: int(n), Piece: catan.Settlement})

	if _, occupied := b.game.NodeOwner(n); !occupied {
		t.Fatal("expected the mirrored model to record the placed settlement")
	}
	tr := b.trackers.Tracker(1)
	if _, open := tr.Settlements[n]; open {
		t.Error("other seats' tracker must no longer list the now-occupied node as a possible settlement")
	}
}

func TestScenario_CancelBuildRequest_DuringInitialPlacement_ReEntersExpectation(t *testing.T) {
	b, _ := newTestBrain(t)
	b.game.SetPhase(catan.InitSettle1A)
	b.state.SetExpect(catan.InitSettle1A)

	b.handle(catan.Message{Kind: catan.MsgCancelBuildRequest, Seat: 0, Coord: 0, Piece: catan.Settlement})

	if !b.state.HasExpect || b.state.Expect != catan.InitSettle1A {
		t.Errorf("expected brain to re-enter InitSettle1A after a refused initial settlement, got expect=%v has=%v", b.state.Expect, b.state.HasExpect)
	}
	if b.state.WhatWeFailedToBuild == nil || b.state.WhatWeFailedToBuild.Kind != catan.Settlement {
		t.Error("expected the failed build to be recorded")
	}
}

func TestScenario_CancelBuildRequest_DuringPlay_EndsTurnAndRestoresResources(t *testing.T) {
	b, emitted := newTestBrain(t)
	b.game.SetPhase(catan.Play)
	b.plan = planner.PlanStuff(b.game, b.trackers, 0, b.strategy, 4)

	b.handle(catan.Message{Kind: catan.MsgCancelBuildRequest, Seat: 0, Coord: 5, Piece: catan.Road})

	var sawCancel, sawEndTurn bool
	for _, a := range *emitted {
		if a.Kind == catan.ActCancelBuildRequest {
			sawCancel = true
		}
		if a.Kind == catan.ActEndTurn {
			sawEndTurn = true
		}
	}
	if !sawCancel || !sawEndTurn {
		t.Errorf("expected a cancel_build_request then end_turn during PLAY, got %+v", *emitted)
	}
}

func TestScenario_DiceSeven_SetsDiscardExpectationOverSevenCards(t *testing.T) {
	b, _ := newTestBrain(t)
	b.game.SetPhase(catan.Roll)
	me := b.game.Player(0)
	me.Hand.Add(catan.Clay, 8)

	b.handle(catan.Message{Kind: catan.MsgDiceResult, Dice: 7})

	if !b.state.MoveRobberOnSeven {
		t.Error("expected move_robber_on_seven to be set")
	}
	if !b.state.WaitingForDiscards {
		t.Error("expected expect_discard analog to be set when hand exceeds 7")
	}
}

func TestScenario_DiscardRequest_EmitsDiscardMatchingCount(t *testing.T) {
	b, emitted := newTestBrain(t)
	me := b.game.Player(0)
	me.Hand.Add(catan.Clay, 6)
	me.Hand.Add(catan.Ore, 2)

	b.handle(catan.Message{Kind: catan.MsgDiscardRequest, Total: 4})

	var discard catan.Action
	found := false
	for _, a := range *emitted {
		if a.Kind == catan.ActDiscard {
			discard = a
			found = true
		}
	}
	if !found {
		t.Fatal("expected a discard action to be emitted")
	}
	if discard.Resources.Total() != 4 {
		t.Errorf("expected discard of exactly 4 cards, got %d", discard.Resources.Total())
	}
}

func TestScenario_DevCardCannotPlay_RecordsRejectionAndClearsWait(t *testing.T) {
	b, _ := newTestBrain(t)
	b.state.WaitingForDevCard = true

	b.handle(catan.Message{Kind: catan.MsgDevCardAction, Seat: 0, DevCardKind: catan.Knight, DevCardOp: catan.DevCardCannotPlay})

	if b.state.WaitingForDevCard {
		t.Error("expected waiting_for_devcard to clear on CANNOT_PLAY")
	}
	if !b.state.HasRejectedDevCardType || b.state.RejectedPlayDevCardType != catan.Knight {
		t.Error("expected rejected_play_devcard_type recorded as Knight")
	}
}

func TestScenario_TickDeadlock_LeavesGame(t *testing.T) {
	b, emitted := newTestBrain(t)
	b.state.Counter = deadlockTicks + 1

	b.handle(catan.Message{Kind: catan.MsgTimingPing})

	if b.state.Alive {
		t.Error("expected brain to mark itself not-alive after a deadlock tick")
	}
	found := false
	for _, a := range *emitted {
		if a.Kind == catan.ActLeaveGame {
			found = true
		}
	}
	if !found {
		t.Error("expected a leave_game action on deadlock")
	}
}

func TestScenario_TurnRotation_ResetsPerTurnState(t *testing.T) {
	b, _ := newTestBrain(t)
	b.state.DeniedBuildingsThisTurn = 2
	b.state.DoneTrading = true

	b.handle(catan.Message{Kind: catan.MsgTurn, Seat: 1})

	if b.state.DeniedBuildingsThisTurn != 0 || b.state.DoneTrading {
		t.Error("expected per-turn state to reset on Turn")
	}
	if b.game.CurrentPlayer != 1 {
		t.Errorf("expected current player to rotate to seat 1, got %d", b.game.CurrentPlayer)
	}
}
