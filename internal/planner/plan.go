// Package planner implements C4: turns a seat's possible-piece lattice into
// an ordered building plan, and answers the negotiator's trade questions.
package planner

import (
	"container/heap"

	"github.com/settlers/robotbrain/pkg/catan"
	"github.com/settlers/robotbrain/internal/tracker"
)

// BuildStep is one entry in a building plan: a possible piece together with
// the score it was ranked by at plan time.
type BuildStep struct {
	Piece *tracker.PossiblePiece
	Score float64
}

// Plan is a LIFO stack: Top returns (without removing) the next piece to
// pursue, matching the source's "shared building plan" that C5 pops from as
// each step is realized or invalidated.
type Plan struct {
	steps []BuildStep
}

// Empty reports whether the plan has no remaining steps.
func (p *Plan) Empty() bool { return p == nil || len(p.steps) == 0 }

// Top returns the next step without removing it, or (BuildStep{}, false) if
// the plan is empty.
func (p *Plan) Top() (BuildStep, bool) {
	if p.Empty() {
		return BuildStep{}, false
	}
	return p.steps[len(p.steps)-1], true
}

// Pop removes and returns the top step.
func (p *Plan) Pop() (BuildStep, bool) {
	top, ok := p.Top()
	if ok {
		p.steps = p.steps[:len(p.steps)-1]
	}
	return top, ok
}

// rankedHeap is a min-heap of BuildStep by Score, used to retain only the
// top-N candidates while scoring every possible piece in the lattice. The
// shape mirrors the teacher's comboHeap over RankedCombo (search_util.go):
// push everything seen so far up to N, then replace-and-fix the minimum
// whenever a better candidate appears.
type rankedHeap []BuildStep

func (h rankedHeap) Len() int            { return len(h) }
func (h rankedHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h rankedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rankedHeap) Push(x any)         { *h = append(*h, x.(BuildStep)) }
func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// PlanStuff writes a fresh plan by scoring every currently-legal possible
// piece in seat's tracker with strategy, keeping the top N, and ordering the
// stack so the single best candidate is on Top() (spec 4.4: "plan contains
// only pieces for which is_potential_* is currently true, in an order the
// planner considers decreasing value").
func PlanStuff(g *catan.Game, set *tracker.Set, seat catan.SeatID, strat Strategy, topN int) *Plan {
	o := catan.NewOracle(g)
	t := set.Tracker(seat)
	if t == nil {
		return &Plan{}
	}

	h := &rankedHeap{}
	heap.Init(h)

	consider := func(kind tracker.PossibleKind, p *tracker.PossiblePiece, legal bool) {
		if !legal {
			return
		}
		score := strat.Score(g, o, seat, p)
		p.Score = score
		step := BuildStep{Piece: p, Score: score}
		if h.Len() < topN {
			heap.Push(h, step)
		} else if score > (*h)[0].Score {
			(*h)[0] = step
			heap.Fix(h, 0)
		}
	}

	for n, p := range t.Settlements {
		consider(tracker.PossibleSettlement, p, o.IsPotentialSettlement(seat, n))
	}
	for n, p := range t.Cities {
		consider(tracker.PossibleCity, p, o.IsPotentialCity(seat, n))
	}
	for e, p := range t.Roads {
		consider(tracker.PossibleRoad, p, o.IsPotentialRoad(seat, e))
	}
	for e, p := range t.Ships {
		consider(tracker.PossibleShip, p, o.IsPotentialShip(seat, e))
	}

	// Extract ascending (heap pop order), which places the best step last —
	// i.e. on top of the stack, matching Plan.Top()'s LIFO contract.
	steps := make([]BuildStep, h.Len())
	for i := range steps {
		steps[i] = heap.Pop(h).(BuildStep)
	}
	return &Plan{steps: steps}
}
