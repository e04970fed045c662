// Package subobject implements the two auxiliary data structures shared by
// the Itanium builder: the base-subobject info graph (this file) and the
// empty-subobject map (map.go).
package subobject

import "github.com/abilayout/reclayout"

// Node is one entry in a Graph: a non-virtual base subobject (one node per
// occurrence in the hierarchy) or a virtual base (exactly one node, shared
// by every path that reaches it).
type Node struct {
	Class     reclayout.Record
	IsVirtual bool

	// Bases holds the node indices of Class's own direct bases, in
	// declaration order.
	Bases []int

	// PrimaryVirtualBase is the node index of the virtual base that Class's
	// own completed layout selected as its primary base, or -1.
	PrimaryVirtualBase int

	// Derived is the node index of the subobject that has claimed this node
	// as its primary virtual base, or -1 if unclaimed. Only ever set on
	// virtual-base nodes.
	Derived int
}

// Graph is the base-subobject info graph for one class under layout,
// arena-allocated and addressed by stable index (spec.md §9, "cyclic graphs
// vs arenas"): back-edges (Derived) and aliasing (shared virtual-base nodes)
// are plain indices into Nodes, never pointers, so the whole graph can be
// discarded in one piece when the owning builder finishes.
type Graph struct {
	Nodes []*Node

	// Roots holds the node indices of the layout class's own direct bases,
	// in declaration order.
	Roots []int

	virtualBaseInfo map[any]int
}

// Build constructs the graph for rec's direct and transitive bases. lp
// resolves each base's own completed layout, needed to find its primary
// virtual base.
func Build(rec reclayout.Record, lp reclayout.LayoutProvider) *Graph {
	g := &Graph{virtualBaseInfo: make(map[any]int)}
	for _, b := range rec.Bases() {
		g.Roots = append(g.Roots, g.computeBaseInfo(b.Record(), b.IsVirtual(), lp))
	}
	return g
}

// computeBaseInfo mirrors spec.md §4.3: a node is created once per
// non-virtual occurrence, but shared (looked up by class identity) across
// every path that reaches the same virtual base. Primary-virtual-base
// claiming is resolved after a node's own subtree is fully built, which —
// because the primary virtual base is necessarily one of the node's own
// (already-built) transitive virtual bases — naturally realizes the
// "first pass defers, second pass resolves" behavior spec.md describes
// without a separate deferred pass.
func (g *Graph) computeBaseInfo(rec reclayout.Record, isVirtual bool, lp reclayout.LayoutProvider) int {
	if isVirtual {
		if idx, ok := g.virtualBaseInfo[rec.Identity()]; ok {
			return idx
		}
	}

	idx := len(g.Nodes)
	n := &Node{Class: rec, IsVirtual: isVirtual, PrimaryVirtualBase: -1, Derived: -1}
	g.Nodes = append(g.Nodes, n)
	if isVirtual {
		g.virtualBaseInfo[rec.Identity()] = idx
	}

	for _, b := range rec.Bases() {
		n.Bases = append(n.Bases, g.computeBaseInfo(b.Record(), b.IsVirtual(), lp))
	}

	if !rec.IsCXXRecord() {
		return idx
	}
	lay := lp.GetLayout(rec)
	if lay.PrimaryBase() != nil && lay.PrimaryBaseIsVirtual() {
		if pvIdx, ok := g.virtualBaseInfo[lay.PrimaryBase().Identity()]; ok {
			n.PrimaryVirtualBase = pvIdx
			if g.Nodes[pvIdx].Derived == -1 {
				g.Nodes[pvIdx].Derived = idx
			}
		}
	}
	return idx
}

// VirtualBaseIndex returns the node index recorded for the virtual base
// identified by identity, and whether one exists.
func (g *Graph) VirtualBaseIndex(identity any) (int, bool) {
	idx, ok := g.virtualBaseInfo[identity]
	return idx, ok
}
