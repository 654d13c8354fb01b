package brain

import (
	"github.com/settlers/robotbrain/internal/planner"
	"github.com/settlers/robotbrain/pkg/catan"
)

const planTopN = 8

// stepRoll implements spec 4.5 step 4.
func (b *Brain) stepRoll(ourTurn bool) {
	if !ourTurn {
		b.state.SetExpect(catan.Play) // expect_dice_result, modeled as waiting on the post-roll phase
		return
	}
	if b.wantsPreRollKnight() {
		b.emit(catan.Action{Kind: catan.ActPlayDevCard, DevCard: catan.Knight})
		b.state.WaitingForDevCard = true
		return
	}
	b.emit(catan.Action{Kind: catan.ActSimpleRequest, SimpleKind: 0}) // roll-dice
	b.state.WaitingForGameState = true
}

// wantsPreRollKnight reports whether playing Knight now would unblock one of
// our production hexes (the robber currently sits on a hex we touch) and we
// haven't played a dev card yet this turn.
func (b *Brain) wantsPreRollKnight() bool {
	if b.state.HasRejectedDevCardType && b.state.RejectedPlayDevCardType == catan.Knight {
		return false
	}
	if !b.oracle().MayPlayKnight(b.state.Us) {
		return false
	}
	robberHex := b.game.Board.RobberHex
	for n := range b.game.Board.Nodes {
		piece, ok := b.game.NodeOwner(catan.NodeID(n))
		if !ok || piece.Owner != b.state.Us {
			continue
		}
		for _, h := range b.game.Board.HexesOfNode(catan.NodeID(n)) {
			if h == robberHex {
				return true
			}
		}
	}
	return false
}

// stepChooseRobberOrPirate implements spec 4.5 step 5.
func (b *Brain) stepChooseRobberOrPirate() {
	b.emit(catan.Action{Kind: catan.ActSimpleRequest, SimpleKind: 1}) // choose-move-robber
	b.state.WaitingForGameState = true
}

// stepMoveRobber implements spec 4.5 step 6: pick the hex with the richest
// concentration of opponent production that isn't already robbed.
func (b *Brain) stepMoveRobber() {
	o := b.oracle()
	best := b.game.Board.RobberHex
	bestScore := -1
	for _, h := range b.game.Board.Hexes {
		if h.ID == b.game.Board.RobberHex || h.IsDesert {
			continue
		}
		score := 0
		for _, n := range b.game.Board.NodesOfHex(h.ID) {
			if piece, ok := b.game.NodeOwner(n); ok && piece.Owner != b.state.Us {
				score += o.DiceProbabilityForHex(h.ID)
			}
		}
		if score > bestScore {
			bestScore = score
			best = h.ID
		}
	}
	b.emit(catan.Action{Kind: catan.ActMoveRobber, Hex: int(best)})
	b.state.WaitingForGameState = true
}

// stepDiscoveryPick implements spec 4.5 step 7.
func (b *Brain) stepDiscoveryPick() {
	cost, ok := b.topPlanCost()
	if !ok {
		b.emit(catan.Action{Kind: catan.ActDiscoveryPick, Resources: catan.NewResourceSet(catan.ResourceCount{R: catan.Wood, N: 1}, catan.ResourceCount{R: catan.Clay, N: 1})})
		return
	}
	me := b.game.Player(b.state.Us)
	var pick catan.ResourceSet
	taken := 0
	for _, r := range catan.KnownResources {
		if taken >= 2 {
			break
		}
		short := cost.Get(r) - me.Hand.Get(r)
		for short > 0 && taken < 2 {
			pick.Add(r, 1)
			taken++
			short--
		}
	}
	for taken < 2 {
		pick.Add(catan.Wood, 1)
		taken++
	}
	b.emit(catan.Action{Kind: catan.ActDiscoveryPick, Resources: pick})
}

// stepMonopolyPick implements spec 4.5 step 8: target whichever known
// resource the oracle estimates is rarest, on the theory opponents hold
// proportionally more of what's scarce on the board relative to demand.
func (b *Brain) stepMonopolyPick() {
	rarity := b.oracle().EstimateResourceRarity()
	worst := catan.Clay
	worstScore := int(^uint(0) >> 1)
	for _, r := range catan.KnownResources {
		if rarity[r] < worstScore {
			worstScore = rarity[r]
			worst = r
		}
	}
	b.emit(catan.Action{Kind: catan.ActMonopolyPick, Resources: catan.Single(worst, 1)})
}

// stepPlayOrSpecialBuilding implements spec 4.5 step 9, the largest branch
// of the main loop.
func (b *Brain) stepPlayOrSpecialBuilding(ourTurn bool) {
	if !ourTurn {
		b.considerSpecialBuildingRequest()
		return
	}

	if b.game.Phase == catan.Play && b.wantsKnightNow() {
		b.emit(catan.Action{Kind: catan.ActPlayDevCard, DevCard: catan.Knight})
		b.state.WaitingForDevCard = true
		return
	}

	if b.plan == nil || b.plan.Empty() {
		b.plan = planner.PlanStuff(b.game, b.trackers, b.state.Us, b.strategy, planTopN)
	}
	if b.plan.Empty() {
		b.emit(catan.Action{Kind: catan.ActEndTurn})
		return
	}

	top, _ := b.plan.Top()
	o := b.oracle()
	cost := catan.ResourcesToBuild(pieceKindFor(top.Piece.Kind))
	me := b.game.Player(b.state.Us)

	if top.Piece.Kind.String() == "road" && o.MayPlayRoads(b.state.Us) &&
		!(b.state.HasRejectedDevCardType && b.state.RejectedPlayDevCardType == catan.RoadBuilding) {
		b.emit(catan.Action{Kind: catan.ActPlayDevCard, DevCard: catan.RoadBuilding})
		b.state.WaitingForDevCard = true
		b.state.SetExpect(catan.PlacingFreeRoad1)
		return
	}

	if needsTwoWeLack(me, cost) && o.MayPlayDisc(b.state.Us) &&
		!(b.state.HasRejectedDevCardType && b.state.RejectedPlayDevCardType == catan.Discovery) {
		b.emit(catan.Action{Kind: catan.ActPlayDevCard, DevCard: catan.Discovery})
		b.state.WaitingForDevCard = true
		return
	}

	if o.MayPlayMono(b.state.Us) && monopolyHelpsPlan(me, cost) &&
		!(b.state.HasRejectedDevCardType && b.state.RejectedPlayDevCardType == catan.Monopoly) {
		b.emit(catan.Action{Kind: catan.ActPlayDevCard, DevCard: catan.Monopoly})
		b.state.WaitingForDevCard = true
		return
	}

	if offer, ok := b.attemptPeerTrade(cost); ok {
		b.emit(catan.Action{Kind: catan.ActOfferTrade, Offer: offer})
		b.state.WaitingForTradeResponse = true
		return
	}

	if me.Hand.Has(cost) {
		b.emitBuild(top, cost)
		return
	}

	if bankOffer, ok := b.attemptBankTrade(cost); ok {
		b.emit(catan.Action{Kind: catan.ActBankTrade, Give: bankOffer.Give, Get: bankOffer.Get})
		b.state.WaitingForGameState = true
		return
	}

	b.emit(catan.Action{Kind: catan.ActEndTurn})
}

// emitBuild requests the concrete placement/purchase for the plan's top
// step, transitioning to the matching PLACING_* expectation (spec 4.5 step
// 9's final branch and step 10's continuation).
func (b *Brain) emitBuild(top planner.BuildStep, cost catan.ResourceSet) {
	kind := pieceKindFor(top.Piece.Kind)
	if b.sameAsFailedBuild(kind, top.Piece.Coord) {
		b.plan.Pop()
		return
	}
	switch kind {
	case catan.Road:
		b.emit(catan.Action{Kind: catan.ActBuildRequest, BuildKind: int(catan.Road)})
		b.state.SetExpect(catan.PlacingRoad)
	case catan.Ship:
		b.emit(catan.Action{Kind: catan.ActBuildRequest, BuildKind: int(catan.Ship)})
		b.state.SetExpect(catan.PlacingShip)
	case catan.Settlement:
		b.emit(catan.Action{Kind: catan.ActBuildRequest, BuildKind: int(catan.Settlement)})
		b.state.SetExpect(catan.PlacingSettlement)
	case catan.City:
		b.emit(catan.Action{Kind: catan.ActBuildRequest, BuildKind: int(catan.City)})
		b.state.SetExpect(catan.PlacingCity)
	case catan.BuyDevCard:
		b.emit(catan.Action{Kind: catan.ActBuyDevCard})
		b.state.WaitingForGameState = true
		b.plan.Pop()
	default:
		b.plan.Pop()
	}
}

// stepEmitPlacement implements spec 4.5 step 10.
func (b *Brain) stepEmitPlacement() {
	if b.plan == nil || b.plan.Empty() {
		b.state.ClearExpect()
		return
	}
	top, _ := b.plan.Top()
	kind := pieceKindFor(top.Piece.Kind)
	b.emit(catan.Action{Kind: catan.ActPutPiece, Coord: top.Piece.Coord, PieceKind: kind})
	b.plan.Pop()

	if b.state.Expect == catan.PlacingFreeRoad1 {
		b.state.SetExpect(catan.PlacingFreeRoad2)
	} else {
		b.state.SetExpect(catan.Play)
	}
}

func (b *Brain) wantsKnightNow() bool {
	if b.state.HasRejectedDevCardType && b.state.RejectedPlayDevCardType == catan.Knight {
		return false
	}
	return b.oracle().MayPlayKnight(b.state.Us)
}

func (b *Brain) considerSpecialBuildingRequest() {
	if !b.tradeEnabled || !b.game.Scenario[catan.SixPlayer] || b.state.DoneTrading {
		return
	}
	if b.plan == nil {
		b.plan = planner.PlanStuff(b.game, b.trackers, b.state.Us, b.strategy, planTopN)
	}
	if b.plan.Empty() {
		return
	}
	top, _ := b.plan.Top()
	cost := catan.ResourcesToBuild(pieceKindFor(top.Piece.Kind))
	if me := b.game.Player(b.state.Us); me != nil && me.Hand.Has(cost) {
		b.emit(catan.Action{Kind: catan.ActSimpleRequest, SimpleKind: 2}) // request special building
		b.state.WaitingForGameState = true
	}
}

func needsTwoWeLack(p *catan.Player, cost catan.ResourceSet) bool {
	lacking := 0
	for _, r := range catan.KnownResources {
		if cost.Get(r) > p.Hand.Get(r) {
			lacking++
		}
	}
	return lacking >= 2
}

func monopolyHelpsPlan(p *catan.Player, cost catan.ResourceSet) bool {
	for _, r := range catan.KnownResources {
		if cost.Get(r) > p.Hand.Get(r) {
			return true
		}
	}
	return false
}

// attemptPeerTrade asks the negotiator to draft an offer toward cost. Returns
// false outright when trading is disabled (spec 6 trade_flag).
func (b *Brain) attemptPeerTrade(cost catan.ResourceSet) (catan.Offer, bool) {
	if !b.tradeEnabled {
		return catan.Offer{}, false
	}
	offer, ok := b.negotiator.MakeOffer(b.game, b.state.Us, cost)
	if ok {
		b.lastOffer = offer
	}
	return offer, ok
}

// attemptBankTrade looks for a 4:1 (or better, via PortTrade) trade that
// covers the shortfall for cost using our surplus. Bank trades are gated by
// trade_flag the same as peer trades (spec 6).
func (b *Brain) attemptBankTrade(cost catan.ResourceSet) (catan.Offer, bool) {
	if !b.tradeEnabled {
		return catan.Offer{}, false
	}
	me := b.game.Player(b.state.Us)
	if me == nil {
		return catan.Offer{}, false
	}
	var shortR catan.Resource = -1
	for _, r := range catan.KnownResources {
		if cost.Get(r) > me.Hand.Get(r) {
			shortR = r
			break
		}
	}
	if shortR < 0 {
		return catan.Offer{}, false
	}
	rate := 4
	if me.PortTrade[shortR] {
		rate = 2
	}
	for _, r := range catan.KnownResources {
		if r == shortR {
			continue
		}
		if me.Hand.Get(r) >= rate {
			return catan.Offer{Give: catan.Single(r, rate), Get: catan.Single(shortR, 1)}, true
		}
	}
	return catan.Offer{}, false
}
