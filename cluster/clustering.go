package cluster

// Graph is the minimal view of a graph.Graph that Clustering needs. It is
// declared locally (rather than importing package graph) so cluster has
// no dependency on the concrete CSR representation, matching the
// teacher's preference for small, independent packages wired together by
// the driver.
type Graph interface {
	N() int
	NodeWeight(i int) float64
}

// Clustering holds a node -> community assignment plus the incrementally
// maintained per-community aggregates: total node weight and node count.
// Community ids need not be contiguous during mutation (§3); Compact
// renumbers them to 0..K'-1 on demand.
//
// A Clustering is owned by the phase that mutates it and is not safe for
// concurrent use.
type Clustering struct {
	assign         []int32
	commNodeWeight []float64
	commSize       []int32
	freeList       []int32
}

// Singletons returns a Clustering placing every node of g in its own
// singleton community, numbered 0..N-1.
//
// Complexity: O(N).
func Singletons(g Graph) *Clustering {
	n := g.N()
	c := &Clustering{
		assign:         make([]int32, n),
		commNodeWeight: make([]float64, n),
		commSize:       make([]int32, n),
	}
	for i := 0; i < n; i++ {
		c.assign[i] = int32(i)
		c.commNodeWeight[i] = g.NodeWeight(i)
		c.commSize[i] = 1
	}
	return c
}

// FromAssignment builds a Clustering from an explicit node->community
// mapping. assign must have exactly g.N() entries, all non-negative.
// Community ids need not be contiguous or start at 0; they are widened to
// fit the maximum id present.
//
// Complexity: O(N + K) where K is the maximum community id.
func FromAssignment(g Graph, assign []int32) (*Clustering, error) {
	n := g.N()
	if len(assign) != n {
		return nil, ErrDimensionMismatch
	}
	maxID := int32(-1)
	for _, c := range assign {
		if c < 0 {
			return nil, ErrNegativeCommunity
		}
		if c > maxID {
			maxID = c
		}
	}
	width := int(maxID) + 1
	if width < n {
		// Leave room for at least N slots: singleton growth, empty-slot
		// moves, and Compact all assume every node index is a valid
		// (possibly empty) community id upper bound.
		width = n
	}
	c := &Clustering{
		assign:         append([]int32(nil), assign...),
		commNodeWeight: make([]float64, width),
		commSize:       make([]int32, width),
	}
	for i := 0; i < n; i++ {
		comm := c.assign[i]
		c.commNodeWeight[comm] += g.NodeWeight(i)
		c.commSize[comm]++
	}
	return c, nil
}

// N returns the number of nodes.
func (c *Clustering) N() int {
	return len(c.assign)
}

// Capacity returns the number of community-id slots currently allocated
// (some may be empty). Community ids in [0, Capacity()) are always valid
// to query or move into.
func (c *Clustering) Capacity() int {
	return len(c.commNodeWeight)
}

// Community returns the community id of node i.
func (c *Clustering) Community(i int) int32 {
	return c.assign[i]
}

// CommunityNodeWeight returns the total node weight of community comm.
func (c *Clustering) CommunityNodeWeight(comm int32) float64 {
	return c.commNodeWeight[comm]
}

// CommunitySize returns the node count of community comm.
func (c *Clustering) CommunitySize(comm int32) int32 {
	return c.commSize[comm]
}

// EmptyCommunity returns a community id guaranteed to be currently empty:
// a previously released slot from RecycleEmpty if one is available, or a
// freshly grown slot at the end. Growing never invalidates previously
// returned ids.
//
// Complexity: amortized O(1).
func (c *Clustering) EmptyCommunity() int32 {
	// A freeList entry can go stale if a later MoveNode targeted that id
	// directly (not via EmptyCommunity), so entries are verified against
	// commSize before being trusted.
	for n := len(c.freeList); n > 0; n = len(c.freeList) {
		id := c.freeList[n-1]
		c.freeList = c.freeList[:n-1]
		if c.commSize[id] == 0 {
			return id
		}
	}
	id := int32(len(c.commNodeWeight))
	c.commNodeWeight = append(c.commNodeWeight, 0)
	c.commSize = append(c.commSize, 0)
	return id
}

// RecycleEmpty returns an id obtained from EmptyCommunity to the free list
// when the caller decides not to use it after all. id must still be empty
// (no node may have been moved into it since it was obtained); callers
// that moved a node into comm must not recycle it.
//
// Complexity: O(1).
func (c *Clustering) RecycleEmpty(id int32) {
	c.freeList = append(c.freeList, id)
}

// MoveNode reassigns node i from its current community to target,
// updating both communities' aggregates incrementally. target may be an
// id beyond the current capacity only if obtained from EmptyCommunity
// (or already referenced by another node); callers must not pass an
// out-of-range id.
//
// Complexity: O(1).
func (c *Clustering) MoveNode(g Graph, i int, target int32) {
	old := c.assign[i]
	if old == target {
		return
	}
	w := g.NodeWeight(i)
	c.commNodeWeight[old] -= w
	c.commSize[old]--
	if c.commSize[old] == 0 {
		c.freeList = append(c.freeList, old)
	}
	c.assign[i] = target
	c.commNodeWeight[target] += w
	c.commSize[target]++
}

// Clone returns a deep, independent copy for use as a phase-boundary
// snapshot (§3's Lifecycles).
func (c *Clustering) Clone() *Clustering {
	return &Clustering{
		assign:         append([]int32(nil), c.assign...),
		commNodeWeight: append([]float64(nil), c.commNodeWeight...),
		commSize:       append([]int32(nil), c.commSize...),
	}
}

// Assignment returns a copy of the raw node->community slice.
func (c *Clustering) Assignment() []int32 {
	return append([]int32(nil), c.assign...)
}

// Compact renumbers nonempty communities to a contiguous 0..K'-1 range,
// preserving relative order of first appearance, and returns the
// renumbered Clustering along with the old->new id map (entries for
// communities that were empty are -1 and never referenced by the
// returned Clustering).
//
// Complexity: O(N + K).
func (c *Clustering) Compact() (*Clustering, []int32) {
	remap := make([]int32, len(c.commNodeWeight))
	for i := range remap {
		remap[i] = -1
	}
	next := int32(0)
	out := &Clustering{assign: make([]int32, len(c.assign))}
	for i, comm := range c.assign {
		if remap[comm] == -1 {
			remap[comm] = next
			next++
		}
		out.assign[i] = remap[comm]
	}
	out.commNodeWeight = make([]float64, next)
	out.commSize = make([]int32, next)
	for old, n := range remap {
		if n == -1 {
			continue
		}
		out.commNodeWeight[n] = c.commNodeWeight[old]
		out.commSize[n] = c.commSize[old]
	}
	return out, remap
}
