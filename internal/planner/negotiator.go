package planner

import "github.com/settlers/robotbrain/pkg/catan"

// OfferVerdict is the negotiator's answer to an incoming offer (spec 4.4).
type OfferVerdict int

const (
	Accept OfferVerdict = iota
	Reject
	Counter
	Ignore
)

// Negotiator holds the per-player flags the spec describes ("is-selling",
// "wants-another-offer"), reset each turn, plus the per-seat "done trading"
// latch make_offer sets once it has nothing left to propose.
type Negotiator struct {
	isSelling         map[catan.SeatID][5]bool
	notSelling        map[catan.SeatID][5]bool
	wantsAnotherOffer map[catan.SeatID][5]bool
	doneTrading       map[catan.SeatID]bool
}

// NewNegotiator returns an empty Negotiator.
func NewNegotiator() *Negotiator {
	return &Negotiator{
		isSelling:         make(map[catan.SeatID][5]bool),
		notSelling:        make(map[catan.SeatID][5]bool),
		wantsAnotherOffer: make(map[catan.SeatID][5]bool),
		doneTrading:       make(map[catan.SeatID]bool),
	}
}

// ResetTurn clears all per-player negotiation flags, called once per turn
// rotation (spec 4.4: "reset each turn").
func (n *Negotiator) ResetTurn() {
	n.isSelling = make(map[catan.SeatID][5]bool)
	n.notSelling = make(map[catan.SeatID][5]bool)
	n.wantsAnotherOffer = make(map[catan.SeatID][5]bool)
	n.doneTrading = make(map[catan.SeatID]bool)
}

// MarkSelling records that seat has signalled willingness to sell resource r
// (learned from an offer's Give/Get sets as they're observed).
func (n *Negotiator) MarkSelling(seat catan.SeatID, r catan.Resource) {
	if int(r) >= 5 {
		return
	}
	flags := n.isSelling[seat]
	flags[r] = true
	n.isSelling[seat] = flags
}

// MarkNotSelling records that seat was offered resource r and did not
// respond in time, so it is excluded from future offer target masks asking
// for r this turn (spec 4.4, spec 8 scenario 5).
func (n *Negotiator) MarkNotSelling(seat catan.SeatID, r catan.Resource) {
	if int(r) >= 5 {
		return
	}
	flags := n.notSelling[seat]
	flags[r] = true
	n.notSelling[seat] = flags
}

// ConsiderOffer examines an incoming offer addressed to us (spec 4.4). We
// accept when our hand already covers the give side without the trade
// hurting our plan, reject when we cannot or do not want the resources
// offered, and counter when the offer is close but the ratio is unfavorable.
func (n *Negotiator) ConsiderOffer(g *catan.Game, us catan.SeatID, offer catan.Offer) (OfferVerdict, catan.Offer) {
	me := g.Player(us)
	if me == nil {
		return Reject, catan.Offer{}
	}
	if !me.Hand.Has(offer.Get) {
		return Reject, catan.Offer{}
	}
	if offer.Get.Total() == 0 {
		return Ignore, catan.Offer{}
	}

	giveValue := offer.Give.Total()
	getValue := offer.Get.Total()
	switch {
	case giveValue >= getValue:
		return Accept, catan.Offer{}
	case giveValue == getValue-1:
		counter := catan.Offer{From: us, Give: offer.Get, Get: offer.Give, ToSeats: []catan.SeatID{offer.From}}
		return Counter, counter
	default:
		return Reject, catan.Offer{}
	}
}

// MakeOffer proposes a trade toward target, or declines by marking the seat
// done-trading for the remainder of the turn (spec 4.4). The give set is
// whatever surplus (beyond the cost) the seat holds of resources it doesn't
// need for target; the get set is the shortfall target's cost still lacks.
func (n *Negotiator) MakeOffer(g *catan.Game, seat catan.SeatID, targetCost catan.ResourceSet) (catan.Offer, bool) {
	if n.doneTrading[seat] {
		return catan.Offer{}, false
	}
	p := g.Player(seat)
	if p == nil {
		n.doneTrading[seat] = true
		return catan.Offer{}, false
	}

	var give, get catan.ResourceSet
	for _, r := range catan.KnownResources {
		short := targetCost.Get(r) - p.Hand.Get(r)
		if short > 0 {
			get.Add(r, short)
		} else if -short > 0 {
			give.Add(r, -short)
		}
	}

	if get.Total() == 0 {
		n.doneTrading[seat] = true
		return catan.Offer{}, false
	}
	if give.Total() == 0 {
		// Nothing to trade away: cannot make a fair offer this pass.
		n.doneTrading[seat] = true
		return catan.Offer{}, false
	}

	targets := n.targetSeats(g, seat, get)
	if len(targets) == 0 {
		n.doneTrading[seat] = true
		return catan.Offer{}, false
	}

	return catan.Offer{From: seat, Give: give, Get: get, ToSeats: targets}, true
}

// targetSeats builds the offer's seat mask: every other seat index below
// NumSeats (vacant seats are not filtered out), except ones already known (via MarkNotSelling) not to hold any of
// the resources get is asking for (spec 4.4, spec 8 scenario 5).
func (n *Negotiator) targetSeats(g *catan.Game, seat catan.SeatID, get catan.ResourceSet) []catan.SeatID {
	var targets []catan.SeatID
	for i := 0; i < g.NumSeats; i++ {
		candidate := catan.SeatID(i)
		if candidate == seat {
			continue
		}
		flags := n.notSelling[candidate]
		excluded := true
		for _, r := range catan.KnownResources {
			if get.Get(r) == 0 {
				continue
			}
			if int(r) >= 5 || !flags[r] {
				excluded = false
				break
			}
		}
		if !excluded {
			targets = append(targets, candidate)
		}
	}
	return targets
}
