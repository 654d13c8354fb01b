package catan

import "testing"

func TestIsPotentialSettlement_DistanceRule(t *testing.T) {
	g := NewGame(4)
	o := NewOracle(g)

	n := NodeID(0)
	adj := g.Board.AdjacentNodes(n)
	if len(adj) == 0 {
		t.Fatal("test board node 0 has no adjacents, fixture assumption broken")
	}

	if !o.IsPotentialSettlement(0, n) {
		t.Fatalf("expected node %d to be open during initial placement", n)
	}

	g.ApplyPutPiece(0, int(n), Settlement)
	if o.IsPotentialSettlement(1, adj[0]) {
		t.Errorf("adjacent node %d should be blocked by the distance rule", adj[0])
	}
}

func TestIsPotentialSettlement_OutsideInitialPlacement_RequiresRoad(t *testing.T) {
	g := NewGame(4)
	g.SetPhase(Play)
	o := NewOracle(g)

	n := NodeID(10)
	if o.IsPotentialSettlement(0, n) {
		t.Error("settlement with no connecting road/ship should be rejected outside initial placement")
	}

	eid := g.Board.Nodes[n].Edges[0]
	g.ApplyPutPiece(0, int(eid), Road)
	if !o.IsPotentialSettlement(0, n) {
		t.Error("settlement touching our own road should now be legal")
	}
}

func TestIsPotentialCity_RequiresOwnSettlement(t *testing.T) {
	g := NewGame(4)
	o := NewOracle(g)
	n := NodeID(3)

	if o.IsPotentialCity(0, n) {
		t.Error("empty node cannot be upgraded to a city")
	}

	g.ApplyPutPiece(0, int(n), Settlement)
	if !o.IsPotentialCity(0, n) {
		t.Error("expected city upgrade to be legal over our own settlement")
	}
	if o.IsPotentialCity(1, n) {
		t.Error("city upgrade must not be legal over another seat's settlement")
	}
}

func TestIsPotentialShip_RequiresCoastalEdge(t *testing.T) {
	g := NewGame(4)
	o := NewOracle(g)

	var inland EdgeID = -1
	var coastal EdgeID = -1
	for _, e := range g.Board.Edges {
		if e.IsCoastal && coastal < 0 {
			coastal = e.ID
		}
		if !e.IsCoastal && inland < 0 {
			inland = e.ID
		}
	}
	if inland < 0 || coastal < 0 {
		t.Fatal("expected both coastal and inland edges on the standard board")
	}

	a, _ := g.Board.EdgeEndpoints(inland)
	g.ApplyPutPiece(0, int(a), Settlement)
	if o.IsPotentialShip(0, inland) {
		t.Error("ship must be rejected on an inland edge even if touching our settlement")
	}
}

func TestMayPlayKnight_RestrictedByTurnAndPhase(t *testing.T) {
	g := NewGame(4)
	o := NewOracle(g)

	if o.MayPlayKnight(0) {
		t.Error("no knight in hand yet, must not be playable")
	}

	g.ApplyDevCardAction(0, Knight, DevCardAddOld)
	g.SetPhase(InitSettle1A)
	if o.MayPlayKnight(0) {
		t.Error("knight must not be playable during initial placement")
	}

	g.SetPhase(Play)
	if !o.MayPlayKnight(0) {
		t.Error("expected knight to be playable in the Play phase")
	}

	g.Player(0).PlayedDevCard = true
	if o.MayPlayKnight(0) {
		t.Error("at most one dev card per turn: must not be playable again")
	}
}

func TestDiceProbabilityForHex_MatchesPipTable(t *testing.T) {
	cases := map[int]int{2: 1, 7: 0, 6: 5, 8: 5, 12: 1}
	for roll, want := range cases {
		if got := dicePips(roll); got != want {
			t.Errorf("dicePips(%d) = %d, want %d", roll, got, want)
		}
	}
}

func TestCanAttackPirateFortress_GatedByScenario(t *testing.T) {
	g := NewGame(4)
	o := NewOracle(g)

	if _, ok := o.CanAttackPirateFortress(0); ok {
		t.Error("pirate fortress attack must be unavailable without the scenario flag")
	}

	g.Scenario[PirateIslands] = true
	g.Board.PirateHex = g.Board.Hexes[0].ID
	n := g.Board.NodesOfHex(g.Board.PirateHex)[0]
	eid := g.Board.Nodes[n].Edges[0]
	g.ApplyPutPiece(0, int(eid), Ship)

	hex, ok := o.CanAttackPirateFortress(0)
	if !ok || hex != g.Board.PirateHex {
		t.Errorf("expected seat 0 to be able to attack the pirate hex, got hex=%v ok=%v", hex, ok)
	}
}
