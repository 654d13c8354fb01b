// Package orchestrator fans out one robot brain per seat across a shared
// game, the way the teacher's bot.Orchestrator drove one Client per power
// through a full Diplomacy game.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/settlers/robotbrain/internal/brain"
	"github.com/settlers/robotbrain/internal/diagnostics"
	"github.com/settlers/robotbrain/internal/planner"
	"github.com/settlers/robotbrain/internal/transport"
	"github.com/settlers/robotbrain/pkg/catan"
)

// Seat pairs one connected bot account with the seat it occupies.
type Seat struct {
	Client *transport.Client
	Brain  *brain.Brain
}

// Orchestrator owns every seated bot in one game and runs their brains
// concurrently under a single errgroup, the same fan-out shape the
// teacher used for its seven Diplomacy powers, but event-driven rather
// than poll-and-submit: each brain reacts to its own message queue
// instead of waiting on a shared phase-advance loop.
type Orchestrator struct {
	baseURL          string
	gameID           string
	numSeats         int
	strategy         string
	modelPath        string
	tradeEnabled     bool
	maxDeniedPerTurn int
	log              zerolog.Logger
	diag             diagnostics.Sink
	seats            []*Seat
}

// Config configures one orchestrator run.
type Config struct {
	BaseURL          string
	GameID           string
	NumSeats         int
	Strategy         string // "fast" or "smart"
	ModelPath        string // ONNX model path for the "smart" strategy
	TradeEnabled     bool   // spec 6 trade_flag
	MaxDeniedPerTurn int    // spec 6 max_denied_per_turn; 0 defaults to brain.MaxDeniedBuildingPerTurn
	Log              zerolog.Logger
	Diagnostics      diagnostics.Sink // optional; defaults to diagnostics.NoopSink{}
}

// New creates an Orchestrator for a single game.
func New(cfg Config) *Orchestrator {
	diag := cfg.Diagnostics
	if diag == nil {
		diag = diagnostics.NoopSink{}
	}
	return &Orchestrator{
		baseURL:          cfg.BaseURL,
		gameID:           cfg.GameID,
		numSeats:         cfg.NumSeats,
		strategy:         cfg.Strategy,
		modelPath:        cfg.ModelPath,
		tradeEnabled:     cfg.TradeEnabled,
		maxDeniedPerTurn: cfg.MaxDeniedPerTurn,
		log:              cfg.Log,
		diag:             diag,
	}
}

// Run logs every bot in, connects its websocket, wires its brain, and
// blocks running all seats' brains until ctx is cancelled or every
// brain has left the game.
func (o *Orchestrator) Run(ctx context.Context) error {
	strat, err := o.buildStrategy()
	if err != nil {
		return fmt.Errorf("orchestrator: build strategy: %w", err)
	}

	for i := 0; i < o.numSeats; i++ {
		seat := catan.SeatID(i)
		name := fmt.Sprintf("RobotBrain-%d", i)
		log := o.log.With().Str("bot", name).Int("seat", i).Logger()

		b := brain.New(brain.Config{
			Seats:            o.numSeats,
			Us:               seat,
			Strategy:         strat,
			QueueDepth:       64,
			TradeEnabled:     o.tradeEnabled,
			MaxDeniedPerTurn: o.maxDeniedPerTurn,
			Log:              log,
		})

		c := transport.NewClient(name, o.baseURL, b.Queue(), log)
		if err := c.Login(); err != nil {
			return fmt.Errorf("orchestrator: login seat %d: %w", i, err)
		}
		if err := c.JoinGame(o.gameID); err != nil {
			return fmt.Errorf("orchestrator: join game seat %d: %w", i, err)
		}
		b.Attach(diagnosingEmitter{inner: c, diag: o.diag, gameID: o.gameID, seat: i})

		o.seats = append(o.seats, &Seat{Client: c, Brain: b})
	}

	if err := o.seats[0].Client.StartGame(o.gameID); err != nil {
		o.log.Warn().Err(err).Msg("start game request failed, assuming another seat already started it")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range o.seats {
		s := s
		g.Go(func() error {
			if err := s.Client.Connect(gctx, o.gameID); err != nil {
				return fmt.Errorf("connect %s: %w", s.Client.Name(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	runGroup, runCtx := errgroup.WithContext(ctx)
	for _, s := range o.seats {
		s := s
		runGroup.Go(func() error {
			brain.RunPinger(runCtx, s.Brain.Queue())
			return nil
		})
		runGroup.Go(func() error {
			s.Brain.Run(runCtx)
			o.diag.Record(context.Background(), diagnostics.Event{
				GameID: o.gameID,
				Seat:   int(s.Brain.Seat()),
				Kind:   "brain_exit",
				Detail: "run loop returned",
			})
			return nil
		})
	}
	defer func() {
		for _, s := range o.seats {
			s.Client.Close()
		}
	}()
	return runGroup.Wait()
}

// diagnosingEmitter wraps an Emitter to additionally record every
// emitted action to a diagnostics.Sink, without altering what reaches
// the transport layer.
type diagnosingEmitter struct {
	inner  brain.Emitter
	diag   diagnostics.Sink
	gameID string
	seat   int
}

func (d diagnosingEmitter) Emit(a catan.Action) {
	d.diag.Record(context.Background(), diagnostics.Event{
		GameID: d.gameID,
		Seat:   d.seat,
		Kind:   "action",
		Detail: fmt.Sprintf("%+v", a),
	})
	d.inner.Emit(a)
}

func (o *Orchestrator) buildStrategy() (planner.Strategy, error) {
	if o.strategy != "smart" {
		return planner.NewStrategy(planner.FastStrategy, nil), nil
	}
	if o.modelPath != "" {
		planner.NeuralScorerModelPath = o.modelPath
	}
	neural, err := planner.LoadNeuralScorer()
	if err != nil {
		o.log.Warn().Err(err).Msg("failed to load neural scorer, falling back to fast strategy")
		return planner.NewStrategy(planner.FastStrategy, nil), nil
	}
	return planner.NewStrategy(planner.SmartStrategy, neural), nil
}
