package catan

// Resource identifies one of the five tradeable commodities. Unknown is a
// sixth bucket used only for opponents whose hand composition is hidden.
type Resource int

const (
	Clay Resource = iota
	Ore
	Sheep
	Wheat
	Wood
	Unknown
	resourceCount
)

func (r Resource) String() string {
	switch r {
	case Clay:
		return "clay"
	case Ore:
		return "ore"
	case Sheep:
		return "sheep"
	case Wheat:
		return "wheat"
	case Wood:
		return "wood"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// KnownResources lists the five tradeable resources, excluding Unknown.
var KnownResources = [5]Resource{Clay, Ore, Sheep, Wheat, Wood}

// ResourceSet is a multiset of resource counts, including the Unknown bucket.
// The zero value is an empty hand.
type ResourceSet [int(resourceCount)]int

// Total returns the sum of all counts, known and unknown.
func (rs ResourceSet) Total() int {
	total := 0
	for _, n := range rs {
		total += n
	}
	return total
}

// Get returns the count for a resource.
func (rs ResourceSet) Get(r Resource) int { return rs[r] }

// Add increases a resource's count by n (n may be negative).
func (rs *ResourceSet) Add(r Resource, n int) { rs[r] += n }

// Clone returns a copy.
func (rs ResourceSet) Clone() ResourceSet { return rs }

// Has reports whether rs contains at least cost of every resource in cost.
func (rs ResourceSet) Has(cost ResourceSet) bool {
	for i := 0; i < int(resourceCount); i++ {
		if rs[i] < cost[i] {
			return false
		}
	}
	return true
}

// Sub subtracts cost from rs in place. Callers must have checked Has first;
// Sub does not clamp and may go negative, which is itself diagnostic of a
// caller bug.
func (rs *ResourceSet) Sub(cost ResourceSet) {
	for i := 0; i < int(resourceCount); i++ {
		rs[i] -= cost[i]
	}
}

// ResourceCount is one (resource, count) pair, used to build a ResourceSet
// from a sparse literal without repeating the full array width.
type ResourceCount struct {
	R Resource
	N int
}

// NewResourceSet builds a ResourceSet from a sparse list of (resource, count) pairs.
func NewResourceSet(pairs ...ResourceCount) ResourceSet {
	var rs ResourceSet
	for _, p := range pairs {
		rs[p.R] = p.N
	}
	return rs
}

// Single returns a ResourceSet holding n of a single resource.
func Single(r Resource, n int) ResourceSet {
	var rs ResourceSet
	rs[r] = n
	return rs
}
