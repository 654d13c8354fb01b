package transport

import (
	"encoding/json"
	"fmt"

	"github.com/settlers/robotbrain/pkg/catan"
)

// wireMessage is the JSON shape of an inbound server frame: a string kind
// discriminator plus a flat bag of fields, mirroring the tagged-variant
// Message struct it decodes into.
type wireMessage struct {
	Kind           string     `json:"kind"`
	Seat           int        `json:"seat"`
	Seats          []int      `json:"seats,omitempty"`
	NewPhase       string     `json:"newPhase,omitempty"`
	Coord          int        `json:"coord"`
	Piece          string     `json:"piece,omitempty"`
	From           int        `json:"from,omitempty"`
	Field          string     `json:"field,omitempty"`
	Op             string     `json:"op,omitempty"`
	Value          int        `json:"value,omitempty"`
	Total          int        `json:"total,omitempty"`
	DevCardKind    string     `json:"devCardKind,omitempty"`
	DevCardOp      string     `json:"devCardOp,omitempty"`
	Dice           int        `json:"dice,omitempty"`
	Offer          *wireOffer `json:"offer,omitempty"`
	SimpleKind     int        `json:"simpleKind,omitempty"`
	SpecialItemKey string     `json:"specialItemKey,omitempty"`
	SpecialItemGI  int        `json:"specialItemGI,omitempty"`
	SpecialItemPI  int        `json:"specialItemPI,omitempty"`
	FortressSucceeded bool    `json:"fortressSucceeded,omitempty"`
	FortressCoord  int        `json:"fortressCoord,omitempty"`
	Name           string     `json:"name,omitempty"`
}

type wireOffer struct {
	Give map[string]int `json:"give"`
	Get  map[string]int `json:"get"`
}

// wireAction is the JSON shape sent for an outbound brain Action.
type wireAction struct {
	Kind           string         `json:"kind"`
	Coord          int            `json:"coord,omitempty"`
	PieceKind      string         `json:"pieceKind,omitempty"`
	BuildKind      int            `json:"buildKind,omitempty"`
	DevCard        string         `json:"devCard,omitempty"`
	Resources      map[string]int `json:"resources,omitempty"`
	Give           map[string]int `json:"give,omitempty"`
	Get            map[string]int `json:"get,omitempty"`
	Hex            int            `json:"hex,omitempty"`
	Seat           int            `json:"seat,omitempty"`
	Offer          *wireOffer     `json:"offer,omitempty"`
	SpecialItemKey string         `json:"specialItemKey,omitempty"`
	SpecialItemGI  int            `json:"specialItemGI,omitempty"`
	SpecialItemPI  int            `json:"specialItemPI,omitempty"`
	SimpleKind     int            `json:"simpleKind,omitempty"`
	Text           string         `json:"text,omitempty"`
	Reason         string         `json:"reason,omitempty"`
}

var messageKindByWire = map[string]catan.MessageKind{
	"sit_down":                      catan.MsgSitDown,
	"robot_dismiss":                 catan.MsgRobotDismiss,
	"reset":                         catan.MsgReset,
	"game_state":                    catan.MsgGameState,
	"turn":                          catan.MsgTurn,
	"first_player":                  catan.MsgFirstPlayer,
	"set_turn":                      catan.MsgSetTurn,
	"put_piece":                     catan.MsgPutPiece,
	"move_piece":                    catan.MsgMovePiece,
	"cancel_build_request":         catan.MsgCancelBuildRequest,
	"player_element":                catan.MsgPlayerElement,
	"resource_count":                catan.MsgResourceCount,
	"dev_card_count":                catan.MsgDevCardCount,
	"dev_card_action":               catan.MsgDevCardAction,
	"set_played_dev_card":           catan.MsgSetPlayedDevCard,
	"dice_result":                   catan.MsgDiceResult,
	"discard_request":               catan.MsgDiscardRequest,
	"move_robber":                   catan.MsgMoveRobber,
	"choose_player_request":         catan.MsgChoosePlayerRequest,
	"choose_player":                 catan.MsgChoosePlayer,
	"pick_resources_request":        catan.MsgPickResourcesRequest,
	"make_offer":                    catan.MsgMakeOffer,
	"clear_offer":                   catan.MsgClearOffer,
	"accept_offer":                  catan.MsgAcceptOffer,
	"reject_offer":                  catan.MsgRejectOffer,
	"simple_request":                catan.MsgSimpleRequest,
	"simple_action":                 catan.MsgSimpleAction,
	"set_special_item":              catan.MsgSetSpecialItem,
	"pirate_fortress_attack_result": catan.MsgPirateFortressAttackResult,
	"ping":                          catan.MsgTimingPing,
}

var allPhases = []catan.Phase{
	catan.InitSettle1A, catan.InitRoad1B, catan.InitSettle2A, catan.InitRoad2B,
	catan.InitSettle3A, catan.InitRoad3B, catan.Roll, catan.Play,
	catan.PlacingRoad, catan.PlacingShip, catan.PlacingSettlement, catan.PlacingCity,
	catan.PlacingFreeRoad1, catan.PlacingFreeRoad2, catan.PlacingRobber,
	catan.WaitingForRobberOrPirate, catan.WaitingForDiscards, catan.WaitingForDiscovery,
	catan.WaitingForMonopoly, catan.WaitingForRobChoosePlayer, catan.SpecialBuilding,
	catan.Over, catan.Reset,
}

var phaseByWire = buildPhaseByWire()

func buildPhaseByWire() map[string]catan.Phase {
	m := make(map[string]catan.Phase, len(allPhases))
	for _, p := range allPhases {
		m[p.String()] = p
	}
	return m
}

var pieceKindByWire = map[string]catan.PieceKind{
	"road":       catan.Road,
	"ship":       catan.Ship,
	"settlement": catan.Settlement,
	"city":       catan.City,
}

var pieceKindToWire = map[catan.PieceKind]string{
	catan.Road:       "road",
	catan.Ship:       "ship",
	catan.Settlement: "settlement",
	catan.City:       "city",
}

var fieldByWire = map[string]catan.PlayerFieldKind{
	"clay":        catan.FieldClay,
	"ore":         catan.FieldOre,
	"sheep":       catan.FieldSheep,
	"wheat":       catan.FieldWheat,
	"wood":        catan.FieldWood,
	"unknown":     catan.FieldUnknown,
	"settlements": catan.FieldSettlements,
	"cities":      catan.FieldCities,
	"roads":       catan.FieldRoads,
	"ships":       catan.FieldShips,
	"knights":     catan.FieldKnights,
}

var opByWire = map[string]catan.PlayerElementOp{
	"set":  catan.OpSet,
	"gain": catan.OpGain,
	"lose": catan.OpLose,
}

var devCardKindByWire = map[string]catan.DevCardKind{
	"knight":        catan.Knight,
	"road_building": catan.RoadBuilding,
	"discovery":     catan.Discovery,
	"monopoly":      catan.Monopoly,
	"victory_point": catan.VictoryPoint,
}

var devCardKindToWire = map[catan.DevCardKind]string{
	catan.Knight:       "knight",
	catan.RoadBuilding: "road_building",
	catan.Discovery:    "discovery",
	catan.Monopoly:     "monopoly",
	catan.VictoryPoint: "victory_point",
}

var devCardOpByWire = map[string]catan.DevCardOp{
	"CANNOT_PLAY": catan.DevCardCannotPlay,
	"PLAYED":      catan.DevCardPlay,
	"BOUGHT":      catan.DevCardDraw,
}

var resourceByWire = map[string]catan.Resource{
	"wood":  catan.Wood,
	"clay":  catan.Clay,
	"sheep": catan.Sheep,
	"wheat": catan.Wheat,
	"ore":   catan.Ore,
}

var resourceToWire = map[catan.Resource]string{
	catan.Wood:  "wood",
	catan.Clay:  "clay",
	catan.Sheep: "sheep",
	catan.Wheat: "wheat",
	catan.Ore:   "ore",
}

func decodeMessage(raw []byte) (catan.Message, error) {
	var w wireMessage
	if err := json.Unmarshal(raw, &w); err != nil {
		return catan.Message{}, fmt.Errorf("decode message: %w", err)
	}
	kind, ok := messageKindByWire[w.Kind]
	if !ok {
		return catan.Message{}, fmt.Errorf("decode message: unknown kind %q", w.Kind)
	}
	m := catan.Message{
		Kind:  kind,
		Seat:  catan.SeatID(w.Seat),
		Coord: w.Coord,
		From:  w.From,
		Value: w.Value,
		Total: w.Total,
		Dice:  w.Dice,

		SimpleKind: w.SimpleKind,

		SpecialItemKey: w.SpecialItemKey,
		SpecialItemGI:  w.SpecialItemGI,
		SpecialItemPI:  w.SpecialItemPI,

		FortressSucceeded: w.FortressSucceeded,
		FortressCoord:     w.FortressCoord,

		Name: w.Name,
	}
	if w.NewPhase != "" {
		m.NewPhase = phaseByWire[w.NewPhase]
	}
	if w.Piece != "" {
		m.Piece = pieceKindByWire[w.Piece]
	}
	if w.Field != "" {
		m.Field = fieldByWire[w.Field]
	}
	if w.Op != "" {
		m.Op = opByWire[w.Op]
	}
	if w.DevCardKind != "" {
		m.DevCardKind = devCardKindByWire[w.DevCardKind]
	}
	if w.DevCardOp != "" {
		m.DevCardOp = devCardOpByWire[w.DevCardOp]
	}
	if w.Offer != nil {
		m.Offer = catan.Offer{Give: resourceSetFromWire(w.Offer.Give), Get: resourceSetFromWire(w.Offer.Get)}
	}
	for _, s := range w.Seats {
		m.Seats = append(m.Seats, catan.SeatID(s))
	}
	return m, nil
}

func encodeAction(a catan.Action) ([]byte, error) {
	w := wireAction{
		Kind:       actionKindToWire[a.Kind],
		Coord:      a.Coord,
		Hex:        a.Hex,
		BuildKind:  a.BuildKind,
		SimpleKind: a.SimpleKind,
		Seat:       int(a.Seat),
		SpecialItemKey: a.SpecialItemKey,
		SpecialItemGI:  a.SpecialItemGI,
		SpecialItemPI:  a.SpecialItemPI,
		Text:           a.Text,
		Reason:         a.Reason,
	}
	if k, ok := pieceKindToWire[a.PieceKind]; ok {
		w.PieceKind = k
	}
	if k, ok := devCardKindToWire[a.DevCard]; ok {
		w.DevCard = k
	}
	if a.Offer.Give.Total() > 0 || a.Offer.Get.Total() > 0 {
		w.Offer = &wireOffer{Give: resourceSetToWire(a.Offer.Give), Get: resourceSetToWire(a.Offer.Get)}
	}
	if a.Give.Total() > 0 {
		w.Give = resourceSetToWire(a.Give)
	}
	if a.Get.Total() > 0 {
		w.Get = resourceSetToWire(a.Get)
	}
	if a.Resources.Total() > 0 {
		w.Resources = resourceSetToWire(a.Resources)
	}
	return json.Marshal(w)
}

var actionKindToWire = map[catan.ActionKind]string{
	catan.ActPutPiece:           "put_piece",
	catan.ActBuildRequest:       "build_request",
	catan.ActBuyDevCard:         "buy_dev_card",
	catan.ActPlayDevCard:        "play_dev_card",
	catan.ActPickFreeResources:  "pick_free_resources",
	catan.ActDiscoveryPick:      "discovery_pick",
	catan.ActMonopolyPick:       "monopoly_pick",
	catan.ActDiscard:            "discard",
	catan.ActMoveRobber:         "move_robber",
	catan.ActChoosePlayer:       "choose_player",
	catan.ActBankTrade:          "bank_trade",
	catan.ActOfferTrade:         "offer_trade",
	catan.ActAcceptOffer:        "accept_offer",
	catan.ActRejectOffer:        "reject_offer",
	catan.ActClearOffer:         "clear_offer",
	catan.ActPickSpecialItem:    "pick_special_item",
	catan.ActSimpleRequest:      "simple_request",
	catan.ActEndTurn:            "end_turn",
	catan.ActLeaveGame:          "leave_game",
	catan.ActResend:             "resend",
	catan.ActSendText:           "send_text",
	catan.ActCancelBuildRequest: "cancel_build_request",
}

func resourceSetFromWire(m map[string]int) catan.ResourceSet {
	var rs catan.ResourceSet
	for k, v := range m {
		if r, ok := resourceByWire[k]; ok {
			rs.Add(r, v)
		} else if k == "unknown" {
			rs.Add(catan.Unknown, v)
		}
	}
	return rs
}

func resourceSetToWire(rs catan.ResourceSet) map[string]int {
	out := make(map[string]int, len(catan.KnownResources)+1)
	for _, r := range catan.KnownResources {
		if n := rs.Get(r); n > 0 {
			out[resourceToWire[r]] = n
		}
	}
	if u := rs.Get(catan.Unknown); u > 0 {
		out["unknown"] = u
	}
	return out
}
