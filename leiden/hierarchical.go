package leiden

import (
	"sort"

	"github.com/katalvlaran/leiden/prng"
)

// Record is one (node, level) participation record emitted by
// HierarchicalPartition (§4.7).
type Record struct {
	// Label is the node's opaque input label.
	Label string

	// CommunityID is globally unique across the whole run; issuance is
	// monotonic so ParentCluster references resolve unambiguously.
	CommunityID int64

	// Level is 0 for the top-level partition, incrementing with each
	// further split.
	Level int

	// ParentCluster is the CommunityID of the level-(Level-1) community
	// this record was split out of, or nil at level 0.
	ParentCluster *int64

	// IsFinalCluster is true iff this is the node's deepest assignment:
	// its community at Level was never itself split further.
	IsFinalCluster bool
}

// HierarchicalPartition runs the driver once, then recursively splits any
// community exceeding MaxClusterSize by extracting its induced subgraph
// (external edges dropped, node weights renormalized as sums over the
// retained incident edges — which graph.Build computes automatically
// from the filtered edge set, since NodeWeight defaults to degree) and
// re-running the driver on it with a fresh sub-seed, until no community
// exceeds the threshold (§4.7). A community whose induced subgraph comes
// back from the driver as one single community is not split further: its
// records stay final even when it exceeds MaxClusterSize.
func HierarchicalPartition(edges []Edge, opts ...Option) (records []Record, err error) {
	defer recoverInvariant(&err)

	o := newOptions(opts...)
	if verr := o.validate(true); verr != nil {
		return nil, verr
	}

	master := masterSeed(o)
	h := &hierarchicalRun{opts: o, master: master}

	_, level0, perr := partitionWithSeed(edges, o, prng.DeriveSeed(master, h.nextStream()))
	if perr != nil {
		return nil, perr
	}

	groups := make(map[int32][]string, len(level0))
	for label, comm := range level0 {
		groups[comm] = append(groups[comm], label)
	}

	for _, labels := range sortedGroups(groups) {
		globalID := h.nextGlobalID()
		h.splitOrFinalize(edges, labels, 0, globalID, nil)
	}

	return h.records, nil
}

// hierarchicalRun owns the state shared across the whole recursive
// split (§9's "arena+index" design: a single frame owns monotonic id
// and sub-seed-stream counters so every recursion level draws from the
// same sequence without threading extra return values back up).
type hierarchicalRun struct {
	opts       Options
	master     int64
	streamNext uint64
	idNext     int64
	records    []Record
}

func (h *hierarchicalRun) nextStream() uint64 {
	s := h.streamNext
	h.streamNext++
	return s
}

func (h *hierarchicalRun) nextGlobalID() int64 {
	id := h.idNext
	h.idNext++
	return id
}

// splitOrFinalize handles one community (the set of labels) discovered
// at level: it records every member at this level, then recurses if the
// community is over threshold, correcting this level's records to
// IsFinalCluster=false once a split actually happens.
func (h *hierarchicalRun) splitOrFinalize(allEdges []Edge, labels []string, level int, globalID int64, parent *int64) {
	startIdx := len(h.records)
	for _, label := range labels {
		h.records = append(h.records, Record{
			Label:          label,
			CommunityID:    globalID,
			Level:          level,
			ParentCluster:  parent,
			IsFinalCluster: true,
		})
	}

	if len(labels) <= h.opts.MaxClusterSize {
		return
	}

	sub := inducedEdges(allEdges, labels)
	if len(sub) == 0 {
		// No retained internal edges: every node is its own component and
		// already at or under any MaxClusterSize >= 2, so there is
		// nothing further to split.
		return
	}

	subOpts := h.opts
	subOpts.StartingCommunities = nil
	_, assign, perr := partitionWithSeed(sub, subOpts, prng.DeriveSeed(h.master, h.nextStream()))
	assertInvariant(perr == nil, "induced subgraph partition failed: %v", perr)

	childGroups := make(map[int32][]string, len(assign))
	for label, comm := range assign {
		childGroups[comm] = append(childGroups[comm], label)
	}

	// The driver kept every label together: the community cannot be split
	// further, so this level's records stay final.
	if len(childGroups) == 1 && len(assign) == len(labels) {
		return
	}

	// A label with no retained edges to any other member of labels never
	// appears in sub (inducedEdges only keeps edges with both endpoints
	// in labels) and so is absent from assign: it was never handed a
	// level+1 record. Its level-`level` record must stay final, or it
	// would end with zero IsFinalCluster=true records. Only labels that
	// actually received a child assignment lose their final status here.
	for i := startIdx; i < len(h.records); i++ {
		if _, split := assign[h.records[i].Label]; split {
			h.records[i].IsFinalCluster = false
		}
	}

	parentID := globalID
	for _, childLabels := range sortedGroups(childGroups) {
		childID := h.nextGlobalID()
		h.splitOrFinalize(allEdges, childLabels, level+1, childID, &parentID)
	}
}

// inducedEdges returns the subset of edges with both endpoints in labels.
func inducedEdges(edges []Edge, labels []string) []Edge {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	var out []Edge
	for _, e := range edges {
		if set[e.U] && set[e.V] {
			out = append(out, e)
		}
	}
	return out
}

// sortedGroups returns group label-slices in ascending community-id
// order, for deterministic global-id issuance (map iteration order is
// not deterministic in Go).
func sortedGroups(groups map[int32][]string) [][]string {
	ids := make([]int32, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([][]string, len(ids))
	for i, id := range ids {
		out[i] = groups[id]
	}
	return out
}
