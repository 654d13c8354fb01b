package brain

import (
	"github.com/settlers/robotbrain/internal/tracker"
	"github.com/settlers/robotbrain/pkg/catan"
)

// preHandle applies state mutations (spec 4.1), updates expect_* flags on
// GameState/Turn, rotates per-turn state on Turn, and early-handles the
// messages spec 4.5 step 2 lists.
func (b *Brain) preHandle(m catan.Message) {
	switch m.Kind {
	case catan.MsgGameState:
		b.game.SetPhase(m.NewPhase)
		if b.state.HasExpect && b.state.Expect == m.NewPhase && !m.NewPhase.IsPlacing() {
			b.state.ClearExpect() // a PLACING_* expectation stays set for step 10 to consume
		}
		b.state.WaitingForGameState = false
		b.state.ResetCounter()

	case catan.MsgTurn:
		b.game.AdvanceTurn(m.Seat)
		b.state.ResetTurn()
		b.negotiator.ResetTurn()
		b.plan = nil

	case catan.MsgFirstPlayer:
		b.game.SetCurrentPlayer(m.Seat)

	case catan.MsgSetTurn:
		b.game.SetCurrentPlayer(m.Seat)

	case catan.MsgPutPiece:
		b.game.ApplyPutPiece(m.Seat, m.Coord, m.Piece)

	case catan.MsgMovePiece:
		b.game.ApplyMovePiece(m.Seat, m.From, m.Coord, m.Piece)

	case catan.MsgCancelBuildRequest:
		b.handleCancelBuildRequest(m)

	case catan.MsgPlayerElement:
		b.game.ApplyPlayerElement(m.Seat, m.Field, m.Op, m.Value)

	case catan.MsgResourceCount:
		if !b.game.ApplyResourceCountAssert(m.Seat, m.Total, b.state.Us) {
			b.log.Warn().Int("total", m.Total).Msg("own hand total disagrees with server resource count")
		}

	case catan.MsgDevCardCount:
		b.game.DevCardsRemaining = m.Total

	case catan.MsgDevCardAction:
		if m.DevCardOp == catan.DevCardCannotPlay {
			b.handleDevCardCannotPlay(m)
		} else {
			b.game.ApplyDevCardAction(m.Seat, m.DevCardKind, m.DevCardOp)
		}

	case catan.MsgSetPlayedDevCard:
		if p := b.game.Player(m.Seat); p != nil {
			p.PlayedDevCard = m.Value != 0
		}

	case catan.MsgDiceResult:
		b.game.ApplyDice(m.Dice)

	case catan.MsgMakeOffer:
		if p := b.game.Player(m.Seat); p != nil {
			offer := m.Offer
			p.OpenOffer = &offer
		}
		if m.Seat != b.state.Us {
			for _, r := range catan.KnownResources {
				if m.Offer.Give.Get(r) > 0 {
					b.negotiator.MarkSelling(m.Seat, r)
				}
			}
		}

	case catan.MsgRejectOffer:
		if m.Seat == b.state.Us {
			b.state.WaitingForTradeResponse = false
		}

	case catan.MsgAcceptOffer:
		b.state.WaitingForTradeResponse = false

	case catan.MsgClearOffer:
		if p := b.game.Player(m.Seat); p != nil {
			p.OpenOffer = nil
		}

	case catan.MsgMoveRobber:
		if m.Coord < 0 {
			b.game.ApplyPirateHex(catan.HexID(-m.Coord - 1))
		} else {
			b.game.ApplyRobberHex(catan.HexID(m.Coord))
		}

	case catan.MsgSimpleRequest:
		// Recorded via turn_events_current only; no model mutation needed.

	case catan.MsgPirateFortressAttackResult:
		b.state.WaitingForFortressAttack = false
	}
}

// postHandle implements spec 4.5 step 11: update trackers from placements,
// react to dice/discard/robber-victim/gold-hex/special-item events.
func (b *Brain) postHandle(m catan.Message) {
	switch m.Kind {
	case catan.MsgPutPiece, catan.MsgMovePiece:
		b.trackers.Refresh(b.game)

	case catan.MsgDiceResult:
		if m.Dice == 7 {
			b.state.MoveRobberOnSeven = true
			if me := b.game.Player(b.state.Us); me != nil && me.Hand.Total() > 7 {
				b.state.WaitingForDiscards = true
			}
		}

	case catan.MsgDiscardRequest:
		b.emit(catan.Action{Kind: catan.ActDiscard, Resources: b.chooseDiscard(m.Total)})
		b.state.WaitingForDiscards = false

	case catan.MsgChoosePlayerRequest:
		victim := b.chooseRobVictim(m.Seats)
		b.emit(catan.Action{Kind: catan.ActChoosePlayer, Seat: victim})

	case catan.MsgPickResourcesRequest:
		b.emit(catan.Action{Kind: catan.ActPickFreeResources, Resources: b.chooseFreeResources(m.Total)})

	case catan.MsgSetSpecialItem:
		if b.state.WaitingForPickSpecialItem {
			b.state.WaitingForPickSpecialItem = false
		}
	}
}

// chooseDiscard picks n cards to discard, preferring our most abundant
// resources first (a simple greedy heuristic; the oracle has no discard
// query of its own per spec 4.2).
func (b *Brain) chooseDiscard(n int) catan.ResourceSet {
	var out catan.ResourceSet
	me := b.game.Player(b.state.Us)
	if me == nil {
		return out
	}
	remaining := n
	for remaining > 0 {
		var tied []catan.Resource
		bestCount := 0
		for _, r := range catan.KnownResources {
			have := me.Hand.Get(r) - out.Get(r)
			switch {
			case have > bestCount:
				bestCount = have
				tied = tied[:0]
				tied = append(tied, r)
			case have == bestCount && have > 0:
				tied = append(tied, r)
			}
		}
		if len(tied) == 0 {
			break
		}
		out.Add(tied[brainIntn(len(tied))], 1)
		remaining--
	}
	return out
}

// chooseRobVictim picks the candidate with the highest visible victory
// point total, a simple "hurt the leader" heuristic.
func (b *Brain) chooseRobVictim(candidates []catan.SeatID) catan.SeatID {
	best := b.state.Us
	bestVP := -1
	for _, seat := range candidates {
		if p := b.game.Player(seat); p != nil {
			if vp := p.VictoryPoints(); vp > bestVP {
				bestVP = vp
				best = seat
			}
		}
	}
	return best
}

// chooseFreeResources picks n resources toward the current plan's top step
// if one exists, else falls back to whichever resources the oracle
// estimates are rarest (spec 4.5 step 11 gold-hex handling).
func (b *Brain) chooseFreeResources(n int) catan.ResourceSet {
	var out catan.ResourceSet
	if top, ok := b.topPlanCost(); ok {
		remaining := n
		for _, r := range catan.KnownResources {
			if remaining <= 0 {
				break
			}
			need := top.Get(r)
			take := min(need, remaining)
			out.Add(r, take)
			remaining -= take
		}
		if remaining == 0 {
			return out
		}
	}
	rarity := b.oracle().EstimateResourceRarity()
	remaining := n - out.Total()
	for remaining > 0 {
		worst := catan.Clay
		worstScore := int(^uint(0) >> 1)
		for _, r := range catan.KnownResources {
			if rarity[r] < worstScore {
				worstScore = rarity[r]
				worst = r
			}
		}
		out.Add(worst, 1)
		rarity[worst] = int(^uint(0) >> 1) // don't pick the same one forever in a tie run
		remaining--
	}
	return out
}

func (b *Brain) topPlanCost() (catan.ResourceSet, bool) {
	if b.plan == nil {
		return catan.ResourceSet{}, false
	}
	top, ok := b.plan.Top()
	if !ok {
		return catan.ResourceSet{}, false
	}
	return catan.ResourcesToBuild(pieceKindFor(top.Piece.Kind)), true
}

// pieceKindFor maps a tracker possible-piece kind back to the board piece
// kind it would realize as, for costing purposes.
func pieceKindFor(k tracker.PossibleKind) catan.PieceKind {
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
