package planner

import "github.com/settlers/robotbrain/pkg/catan"
import "github.com/settlers/robotbrain/internal/tracker"

// StrategyKind selects the heuristic PlanStuff scores candidates with (spec
// 4.4: "Strategy is an enum whose behavior is a replaceable heuristic").
type StrategyKind int

const (
	// FastStrategy scores with the cheap kind/ETA/threat heuristic only.
	FastStrategy StrategyKind = iota
	// SmartStrategy layers the optional neural scorer over the fast
	// heuristic, falling back to it when no model is loaded.
	SmartStrategy
)

// Strategy scores a single possible piece; higher is more desirable.
type Strategy interface {
	Score(g *catan.Game, o *catan.Oracle, seat catan.SeatID, p *tracker.PossiblePiece) float64
}

// NewStrategy returns the Strategy implementation for kind. SmartStrategy
// requires a loaded *NeuralScorer; pass nil to fall back to FastStrategy's
// heuristic automatically.
func NewStrategy(kind StrategyKind, neural *NeuralScorer) Strategy {
	fast := fastStrategy{}
	if kind == SmartStrategy && neural != nil {
		return smartStrategy{fast: fast, neural: neural}
	}
	return fast
}

// fastStrategy favors low ETA, contested spots (any biggest threat), and a
// piece-kind base value (settlements and cities outrank roads/ships/cards,
// matching typical opening-priority heuristics). Resource rarity is not used.
type fastStrategy struct{}

func (fastStrategy) Score(g *catan.Game, o *catan.Oracle, seat catan.SeatID, p *tracker.PossiblePiece) float64 {
	base := baseValue(p.Kind)

	etaPenalty := 0.0
	if p.ETA < 0 {
		etaPenalty = 6.0
	} else {
		etaPenalty = float64(p.ETA)
	}

	threatBonus := 0.0
	if len(p.BiggestThreats) > 0 {
		threatBonus = 1.5 // contested spots are worth grabbing sooner
	}

	return base - etaPenalty + threatBonus
}

func baseValue(k tracker.PossibleKind) float64 {
	switch k {
	case tracker.PossibleSettlement:
		return 10
	case tracker.PossibleCity:
		return 8
	case tracker.PossibleRoad, tracker.PossibleShip:
		return 3
	case tracker.PossibleBuyDevCard:
		return 4
	default:
		return 2
	}
}
