package planner

import (
	"fmt"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"gorgonia.org/tensor"

	"github.com/rs/zerolog/log"
	"github.com/settlers/robotbrain/pkg/catan"
	"github.com/settlers/robotbrain/internal/tracker"
)

// NeuralScorerModelPath is the directory containing possible_piece_value.onnx.
// The orchestrator sets it from the gonnx_model_path config setting
// (ROBOT_GONNX_MODEL_PATH) when non-empty; LoadNeuralScorer uses "models"
// when it is empty.
var NeuralScorerModelPath string

const (
	numFeatures = 12 // per-possible feature vector width, see encodeFeatures
)

// NeuralScorer runs a small ONNX value network over a possible piece's
// feature encoding to produce a single desirability score, used by
// smartStrategy in place of (or blended with) the fast heuristic.
type NeuralScorer struct {
	model *gonnx.Model
	mu    sync.Mutex
}

// LoadNeuralScorer loads possible_piece_value.onnx from
// NeuralScorerModelPath. Returns (nil, err) on any failure; callers should
// fall back to FastStrategy rather than treat this as fatal, matching the
// source's model-or-fallback pattern for its own neural strategy.
func LoadNeuralScorer() (*NeuralScorer, error) {
	path := NeuralScorerModelPath
	if path == "" {
		path = "models"
	}
	modelPath := path + "/possible_piece_value.onnx"
	m, err := gonnx.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("planner: loading %s: %w", modelPath, err)
	}
	return &NeuralScorer{model: m}, nil
}

// Score runs inference over a single possible piece's feature vector.
func (n *NeuralScorer) Score(g *catan.Game, o *catan.Oracle, seat catan.SeatID, p *tracker.PossiblePiece) (float64, error) {
	feats := encodeFeatures(g, o, seat, p)

	input := tensor.New(
		tensor.WithShape(1, numFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(feats),
	)

	n.mu.Lock()
	outputs, err := n.model.Run(gonnx.Tensors{"features": input})
	n.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("planner: model run: %w", err)
	}

	out, ok := outputs["value"]
	if !ok {
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return 0, fmt.Errorf("planner: no output tensor from value model")
	}

	switch d := out.Data().(type) {
	case []float32:
		if len(d) == 0 {
			return 0, fmt.Errorf("planner: empty value output")
		}
		return float64(d[0]), nil
	case []float64:
		if len(d) == 0 {
			return 0, fmt.Errorf("planner: empty value output")
		}
		return d[0], nil
	default:
		return 0, fmt.Errorf("planner: unexpected value output type %T", d)
	}
}

// encodeFeatures flattens a possible piece and its owner's context into a
// fixed-width vector: piece kind as a scalar, ETA, threat count, biggest-
// threat count, cost times resource rarity for each of the 5 resources, the
// owner's current victory points, a coarse coordinate signal, and a bias.
func encodeFeatures(g *catan.Game, o *catan.Oracle, seat catan.SeatID, p *tracker.PossiblePiece) []float32 {
	feats := make([]float32, numFeatures)
	feats[0] = float32(p.Kind)
	feats[1] = float32(p.ETA)
	feats[2] = float32(len(p.Threats))
	feats[3] = float32(len(p.BiggestThreats))

	rarity := o.EstimateResourceRarity()
	cost := catan.ResourcesToBuild(possibleKindToPieceKind(p.Kind))
	for i, r := range catan.KnownResources {
		if i >= 5 {
			break
		}
		feats[4+i] = float32(cost.Get(r)) * float32(rarity[r])
	}

	if pl := g.Player(seat); pl != nil {
		feats[9] = float32(pl.VictoryPoints())
	}
	feats[10] = float32(p.Coord % 997) // coarse positional signal, stable across a single board
	feats[11] = 1
	return feats
}

func possibleKindToPieceKind(k tracker.PossibleKind) catan.PieceKind {
	switch k {
	case tracker.PossibleRoad:
		return catan.Road
	case tracker.PossibleShip:
		return catan.Ship
	case tracker.PossibleSettlement:
		return catan.Settlement
	case tracker.PossibleCity:
		return catan.City
	case tracker.PossibleBuyDevCard:
		return catan.BuyDevCard
	default:
		return catan.PickSpecialItem
	}
}

// smartStrategy blends the neural value estimate with the fast heuristic,
// and falls back to the heuristic alone if inference errors.
type smartStrategy struct {
	fast   fastStrategy
	neural *NeuralScorer
}

func (s smartStrategy) Score(g *catan.Game, o *catan.Oracle, seat catan.SeatID, p *tracker.PossiblePiece) float64 {
	base := s.fast.Score(g, o, seat, p)
	v, err := s.neural.Score(g, o, seat, p)
	if err != nil {
		log.Warn().Err(err).Str("strategy", "smart").Msg("neural scorer failed, using fast heuristic only")
		return base
	}
	return 0.5*base + 0.5*v
}
