package catan

import (
	"reflect"
	"testing"
)

func TestNewStandardBoard_NodeAndEdgeCounts(t *testing.T) {
	b := NewStandardBoard()
	if len(b.Hexes) != 19 {
		t.Fatalf("expected 19 hexes, got %d", len(b.Hexes))
	}
	if len(b.Nodes) != 54 {
		t.Errorf("expected 54 nodes, got %d", len(b.Nodes))
	}
	if len(b.Edges) != 72 {
		t.Errorf("expected 72 edges, got %d", len(b.Edges))
	}

	desertCount := 0
	for _, h := range b.Hexes {
		if h.IsDesert {
			desertCount++
		}
	}
	if desertCount != 1 {
		t.Errorf("expected exactly 1 desert hex, got %d", desertCount)
	}
}

func TestApplyPutPiece_SettlementThenCity_PreservesHandle(t *testing.T) {
	g := NewGame(4)
	n := NodeID(0)

	g.ApplyPutPiece(0, int(n), Settlement)
	p := g.Player(0)
	if p.Pieces.Settlements != 4 {
		t.Fatalf("expected 4 settlements remaining, got %d", p.Pieces.Settlements)
	}

	g.ApplyPutPiece(0, int(n), City)
	if p.Pieces.Settlements != 5 {
		t.Errorf("settlement should return to supply on city upgrade, got %d remaining", p.Pieces.Settlements)
	}
	if p.Pieces.Cities != 3 {
		t.Errorf("expected 3 cities remaining, got %d", p.Pieces.Cities)
	}

	piece, ok := g.NodeOwner(n)
	if !ok || piece.Kind != City || piece.Owner != 0 {
		t.Fatalf("expected node to hold our city, got %+v ok=%v", piece, ok)
	}
	if len(p.Placed) != 1 {
		t.Errorf("city upgrade must not add a second placed piece, got %d", len(p.Placed))
	}
}

func TestApplyPutPiece_CancelBuildRequest_RestoresSnapshot(t *testing.T) {
	g := NewGame(4)
	before := g.Snap()

	id := g.ApplyPutPiece(1, 5, Road)
	g.RemovePiece(id)

	after := g.Snap()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("apply-then-revert must be bitwise equal:\nbefore=%+v\nafter=%+v", before, after)
	}
}

func TestApplyPlayerElement_LoseExceedsHand_DebitsUnknown(t *testing.T) {
	g := NewGame(4)
	p := g.Player(2)
	p.Hand.Add(Clay, 1)
	p.Hand.Add(Unknown, 5)

	g.ApplyPlayerElement(2, FieldClay, OpLose, 3)

	if got := p.Hand.Get(Clay); got != 0 {
		t.Errorf("clay should floor at 0, got %d", got)
	}
	if got := p.Hand.Get(Unknown); got != 3 {
		t.Errorf("expected unknown debited by the 2-card excess, got %d", got)
	}
}

func TestApplyResourceCountAssert_OpponentMismatch_Flattens(t *testing.T) {
	g := NewGame(4)
	p := g.Player(3)
	p.Hand.Add(Clay, 2)
	p.Hand.Add(Ore, 1)

	ok := g.ApplyResourceCountAssert(3, 5, 0)
	if !ok {
		t.Fatal("opponent mismatch must be absorbed, not reported as a failure")
	}
	if p.Hand.Total() != 5 {
		t.Errorf("expected total 5 after flatten, got %d", p.Hand.Total())
	}
	if p.Hand.Get(Unknown) != 5 {
		t.Errorf("expected hand flattened entirely to unknown, got %+v", p.Hand)
	}
}

func TestApplyResourceCountAssert_OwnHandMismatch_ReportsFalse(t *testing.T) {
	g := NewGame(4)
	p := g.Player(0)
	p.Hand.Add(Clay, 1)

	ok := g.ApplyResourceCountAssert(0, 9, 0)
	if ok {
		t.Error("our own hand mismatching the server must be reported (logged), not silently accepted")
	}
}

func TestApplyPlayerElement_SetIsIdempotent(t *testing.T) {
	g := NewGame(4)
	g.ApplyPlayerElement(1, FieldClay, OpSet, 3)
	snap1 := g.Snap()
	g.ApplyPlayerElement(1, FieldClay, OpSet, 3)
	snap2 := g.Snap()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Error("re-applying an identical SET must be a no-op")
	}
}

func TestAdvanceTurn_AgesDevCardsForNextPlayer(t *testing.T) {
	g := NewGame(4)
	g.ApplyDevCardAction(1, Knight, DevCardAddNew)
	g.AdvanceTurn(1)

	p := g.Player(1)
	if p.DevCards.PlayableNow[Knight] != 1 {
		t.Errorf("expected the newly-bought knight to age into playable-now, got %+v", p.DevCards)
	}
	if len(p.DevCards.NewThisTurn) != 0 {
		t.Errorf("expected NewThisTurn cleared after aging, got %+v", p.DevCards.NewThisTurn)
	}
}
