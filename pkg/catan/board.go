package catan

import "sort"

// NodeID and EdgeID are arena handles into the board's intersection graph.
// HexID indexes Board.Hexes.
type (
	NodeID int
	EdgeID int
	HexID  int
)

// PortKind identifies what a port trades, or GenericPort for a 3:1 port.
type PortKind int

const (
	NoPort PortKind = iota
	GenericPort
	ClayPort
	OrePort
	SheepPort
	WheatPort
	WoodPort
)

// axial is a hex grid coordinate (q, r); cube coordinates are (q, -q-r, r).
type axial struct{ Q, R int }

// cornerOffsets are the six corner positions of a flat-top hexagon in the
// doubled coordinate system used to key node/edge identity: two hexes that
// share a corner compute the same (x,y) pair for it, and likewise for edges.
// The absolute pixel geometry doesn't matter, only that adjacency merges
// correctly; see DESIGN.md's pkg/catan section on the board being a
// from-scratch hex graph rather than a port of pkg/diplomacy's province map.
var cornerOffsets = [6][2]int{{1, 1}, {2, 0}, {1, -1}, {-1, -1}, {-2, 0}, {-1, 1}}

func hexCenter(a axial) (int, int) { return 3 * a.Q, 2*a.R + a.Q }

func cubeDistance(a axial) int {
	x, z := a.Q, a.R
	y := -x - z
	abs := func(n int) int {
		if n < 0 {
			return -n
		}
		return n
	}
	return (abs(x) + abs(y) + abs(z)) / 2
}

// Hex is one land or sea tile.
type Hex struct {
	ID        HexID
	Coord     axial
	DiceNum   int  // 0 for desert/sea
	IsDesert  bool
	IsSea     bool // sea hexes exist only on the sea-board scenario
	Nodes     [6]NodeID
	Robber    bool
	Pirate    bool
}

// Node is a settlement/city site where up to three hexes meet.
type Node struct {
	ID    NodeID
	Hexes []HexID
	Edges []EdgeID
	Port  PortKind
}

// Edge is a road/ship site connecting two nodes.
type Edge struct {
	ID        EdgeID
	A, B      NodeID
	IsCoastal bool // borders a hex gap (no hex on one side) or a sea hex
}

// Board is the static hex graph: geometry never changes after generation,
// only what's placed on it (which lives on Game/Piece, not here).
type Board struct {
	Hexes []Hex
	Nodes []Node
	Edges []Edge

	RobberHex HexID
	PirateHex HexID // -1 if the pirate-islands scenario option is off
}

// NewStandardBoard generates the classic 19-hex, 4-player Catan board graph:
// 18 numbered hexes plus one desert, 54 nodes, 72 edges, 9 ports. Dice
// numbers and port placement are assigned deterministically (not shuffled)
// since the brain's correctness does not depend on a specific layout, only
// spec 8's boundary/scenario behaviors do.
func NewStandardBoard() *Board {
	b := &Board{}
	nodeIndex := make(map[[2]int]NodeID)
	edgeIndex := make(map[[2]NodeID]EdgeID)

	var coords []axial
	for q := -2; q <= 2; q++ {
		for r := -2; r <= 2; r++ {
			a := axial{q, r}
			if cubeDistance(a) <= 2 {
				coords = append(coords, a)
			}
		}
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Q != coords[j].Q {
			return coords[i].Q < coords[j].Q
		}
		return coords[i].R < coords[j].R
	})

	diceSequence := []int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}
	diceIdx := 0
	desertPlaced := false

	for _, a := range coords {
		h := Hex{Coord: a}
		cx, cy := hexCenter(a)

		var corners [6]NodeID
		for i, off := range cornerOffsets {
			key := [2]int{cx + off[0], cy + off[1]}
			id, ok := nodeIndex[key]
			if !ok {
				id = NodeID(len(b.Nodes))
				nodeIndex[key] = id
				b.Nodes = append(b.Nodes, Node{ID: id})
			}
			corners[i] = id
		}
		h.Nodes = corners

		if !desertPlaced && a == (axial{0, 0}) {
			h.IsDesert = true
			desertPlaced = true
		} else {
			h.DiceNum = diceSequence[diceIdx%len(diceSequence)]
			diceIdx++
		}

		hid := HexID(len(b.Hexes))
		h.ID = hid
		b.Hexes = append(b.Hexes, h)

		for i := 0; i < 6; i++ {
			na, nb := corners[i], corners[(i+1)%6]
			key := edgeKey(na, nb)
			eid, ok := edgeIndex[key]
			if !ok {
				eid = EdgeID(len(b.Edges))
				edgeIndex[key] = eid
				b.Edges = append(b.Edges, Edge{ID: eid, A: key[0], B: key[1]})
			}
			b.Nodes[na].Edges = appendUnique(b.Nodes[na].Edges, eid)
			b.Nodes[nb].Edges = appendUnique(b.Nodes[nb].Edges, eid)
			b.Nodes[na].Hexes = appendUniqueHex(b.Nodes[na].Hexes, hid)
			b.Nodes[nb].Hexes = appendUniqueHex(b.Nodes[nb].Hexes, hid)
		}
	}

	for i := range b.Edges {
		e := &b.Edges[i]
		e.IsCoastal = len(b.Nodes[e.A].Hexes) < 2 || len(b.Nodes[e.B].Hexes) < 2 ||
			!sharesHex(b.Nodes[e.A].Hexes, b.Nodes[e.B].Hexes)
	}

	assignPorts(b)

	for i, h := range b.Hexes {
		if h.IsDesert {
			b.RobberHex = HexID(i)
			break
		}
	}
	b.PirateHex = -1

	return b
}

func edgeKey(a, b NodeID) [2]NodeID {
	if a < b {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}

func appendUnique(s []EdgeID, v EdgeID) []EdgeID {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func appendUniqueHex(s []HexID, v HexID) []HexID {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func sharesHex(a, b []HexID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// assignPorts places 9 ports on a deterministic subset of coastal edges,
// cycling generic and each resource port.
func assignPorts(b *Board) {
	var coastal []EdgeID
	for _, e := range b.Edges {
		if e.IsCoastal {
			coastal = append(coastal, e.ID)
		}
	}
	if len(coastal) == 0 {
		return
	}
	kinds := []PortKind{GenericPort, ClayPort, GenericPort, OrePort, GenericPort, SheepPort, GenericPort, WheatPort, WoodPort}
	step := len(coastal) / len(kinds)
	if step == 0 {
		step = 1
	}
	for i, k := range kinds {
		idx := (i * step) % len(coastal)
		e := coastal[idx]
		b.Nodes[b.Edges[e].A].Port = k
		b.Nodes[b.Edges[e].B].Port = k
	}
}

// NodesOfHex returns the six node IDs touching a hex.
func (b *Board) NodesOfHex(h HexID) [6]NodeID { return b.Hexes[h].Nodes }

// AdjacentNodes returns the nodes directly connected to n by an edge.
func (b *Board) AdjacentNodes(n NodeID) []NodeID {
	var out []NodeID
	for _, eid := range b.Nodes[n].Edges {
		e := b.Edges[eid]
		if e.A == n {
			out = append(out, e.B)
		} else {
			out = append(out, e.A)
		}
	}
	return out
}

// EdgeBetween returns the edge connecting a and b, if any.
func (b *Board) EdgeBetween(a, bNode NodeID) (EdgeID, bool) {
	key := edgeKey(a, bNode)
	for _, eid := range b.Nodes[a].Edges {
		e := b.Edges[eid]
		if edgeKey(e.A, e.B) == key {
			return eid, true
		}
	}
	return 0, false
}

// HexesOfNode returns the hexes touching a node (1-3 of them).
func (b *Board) HexesOfNode(n NodeID) []HexID { return b.Nodes[n].Hexes }

// EdgeEndpoints returns the two nodes an edge connects.
func (b *Board) EdgeEndpoints(e EdgeID) (NodeID, NodeID) {
	return b.Edges[e].A, b.Edges[e].B
}
