package tracker

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/settlers/robotbrain/pkg/catan"
)

func TestTrackerLattice(t *testing.T) {
	Convey("Given a fresh game and a tracker set", t, func() {
		g := catan.NewGame(4)
		g.SetPhase(catan.Play)
		set := NewSet(4)

		Convey("Refresh populates potential settlements for every seat", func() {
			set.Refresh(g)
			t0 := set.Tracker(0)
			So(t0, ShouldNotBeNil)
			So(len(t0.Settlements), ShouldBeGreaterThan, 0)
		})

		Convey("When seat 0 places a settlement, adjacent nodes become unavailable everywhere", func() {
			n := catan.NodeID(0)
			g.ApplyPutPiece(0, int(n), catan.Settlement)
			set.Refresh(g)

			adj := g.Board.AdjacentNodes(n)
			So(len(adj), ShouldBeGreaterThan, 0)

			for seat := catan.SeatID(0); int(seat) < 4; seat++ {
				tr := set.Tracker(seat)
				if _, ok := tr.Settlements[adj[0]]; ok {
					t.Errorf("seat %d should not retain a settlement possible at a node blocked by the distance rule", seat)
				}
			}
		})

		Convey("A rejected build is cancelled via the dummy-cancel path without crashing", func() {
			e := catan.EdgeID(0)
			set.Refresh(g)
			So(func() { set.CancelOwnRejected(g, 0, PossibleRoad, int(e)) }, ShouldNotPanic)
		})

		Convey("ETA is non-negative once a seat has production", func() {
			n := catan.NodeID(0)
			g.ApplyPutPiece(1, int(n), catan.Settlement)
			set.Refresh(g)

			tr := set.Tracker(1)
			for _, p := range tr.all() {
				So(p.ETA, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})
	})
}

func TestRecomputeThreats_ContestedSettlement(t *testing.T) {
	Convey("Given two seats whose settlement possibles overlap the same node", t, func() {
		g := catan.NewGame(4)
		set := NewSet(4)
		set.Refresh(g)

		n := catan.NodeID(0)
		t0 := set.Tracker(0)
		t1 := set.Tracker(1)
		delete(set.Tracker(2).Settlements, n)
		delete(set.Tracker(3).Settlements, n)
		t0.Settlements[n] = &PossiblePiece{Kind: PossibleSettlement, Owner: 0, Coord: int(n), ETA: -1, Score: 3}
		t1.Settlements[n] = &PossiblePiece{Kind: PossibleSettlement, Owner: 1, Coord: int(n), ETA: -1, Score: 5}

		Convey("recomputeThreats cross-links them as mutual threats", func() {
			set.recomputeThreats()
			So(len(t0.Settlements[n].Threats), ShouldEqual, 1)
			So(len(t1.Settlements[n].Threats), ShouldEqual, 1)
			So(t0.Settlements[n].BiggestThreats[0].Owner, ShouldEqual, catan.SeatID(1))
		})
	})
}
