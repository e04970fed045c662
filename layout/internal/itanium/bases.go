package itanium

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// layoutNonVirtualBases implements spec.md §4.4(c).
func (b *Builder) layoutNonVirtualBases() {
	needsOwnVFPtr := b.primaryBase == nil && b.rec.IsDynamicClass()

	if needsOwnVFPtr {
		ptrAlign := b.tgt.PointerAlign(0)
		ptrWidth := b.tgt.PointerWidth(0)
		b.size = b.size.RoundUpToAlignment(ptrAlign)
		b.updateAlignment(ptrAlign, ptrAlign)
		b.hasOwnVFPtr = true
		if ptrWidth > b.size {
			b.size = ptrWidth
		}
		if ptrWidth > b.dataSize {
			b.dataSize = ptrWidth
		}
	} else if b.primaryBase != nil {
		for i, base := range b.rec.Bases() {
			if base.Record() != b.primaryBase {
				continue
			}
			rootIdx := b.graph.Roots[i]
			off := b.layoutBase(rootIdx, b.primaryBase)
			b.recordBaseOffset(rootIdx, b.primaryBase, off, b.primaryBaseIsVirtual)
			if b.primaryBaseIsVirtual {
				b.visitedVirtualBases[b.primaryBase.Identity()] = true
			}
			break
		}
	}

	for i, base := range b.rec.Bases() {
		if base.IsVirtual() || base.Record() == b.primaryBase {
			continue
		}
		rootIdx := b.graph.Roots[i]
		off := b.layoutBase(rootIdx, base.Record())
		b.recordBaseOffset(rootIdx, base.Record(), off, false)
	}
}

// layoutBase places base (non-virtual or virtual — the rules are the same,
// per spec.md §4.4(f)) and returns its offset, per spec.md §4.4(c)'s
// layoutBase bullets.
func (b *Builder) layoutBase(rootIdx int, base reclayout.Record) charunits.CharUnits {
	baseLay := b.lp.GetLayout(base)

	if b.hasExternal {
		if off, ok := b.external.BaseOffsets[base]; ok {
			b.emptyMap.UpdateBase(b.graph, rootIdx, off)
			if off < b.dataSize {
				b.alignment = charunits.One
			}
			b.dataSize = off.Add(baseLay.NonVirtualSize())
			if b.dataSize > b.size {
				b.size = b.dataSize
			}
			return off
		}
	}

	if base.IsEmpty() {
		if b.emptyMap.CanPlaceBaseAtOffset(b.graph, rootIdx, charunits.Zero) {
			b.emptyMap.UpdateBase(b.graph, rootIdx, charunits.Zero)
			if baseLay.Size() > b.size {
				b.size = baseLay.Size()
			}
			b.updateAlignment(baseLay.NonVirtualAlignment(), baseLay.NonVirtualAlignment())
			return charunits.Zero
		}
	}

	baseAlign := baseLay.NonVirtualAlignment()
	if b.maxFieldAlignment > 0 {
		baseAlign = charunits.Min(baseAlign, b.maxFieldAlignment)
	}
	offset := b.dataSize.RoundUpToAlignment(baseAlign)
	for !b.emptyMap.CanPlaceBaseAtOffset(b.graph, rootIdx, offset) {
		offset = offset.Add(baseAlign)
	}
	b.emptyMap.UpdateBase(b.graph, rootIdx, offset)

	b.dataSize = offset.Add(baseLay.NonVirtualSize())
	if b.dataSize > b.size {
		b.size = b.dataSize
	}
	b.updateAlignment(baseAlign, baseAlign)
	return offset
}

// recordBaseOffset registers base's placement and propagates the offset to
// any virtual base that base's own layout claims as its primary — the two
// subobjects share storage, so they share an offset (spec.md §4.4(c),
// "propagate primary-virtual-base offsets").
func (b *Builder) recordBaseOffset(rootIdx int, base reclayout.Record, offset charunits.CharUnits, isVirtual bool) {
	if isVirtual {
		b.vbaseOffsets[base.Identity()] = reclayout.VBaseInfo{Offset: offset}
		b.vbaseOrder = append(b.vbaseOrder, base)
	} else {
		b.baseOffsets[base.Identity()] = offset
		b.baseOrder = append(b.baseOrder, base)
	}

	node := b.graph.Nodes[rootIdx]
	if node.PrimaryVirtualBase == -1 {
		return
	}
	pv := b.graph.Nodes[node.PrimaryVirtualBase]
	if pv.Derived != rootIdx {
		return
	}
	if _, already := b.vbaseOffsets[pv.Class.Identity()]; already {
		return
	}
	b.vbaseOffsets[pv.Class.Identity()] = reclayout.VBaseInfo{Offset: offset}
	b.vbaseOrder = append(b.vbaseOrder, pv.Class)
	b.visitedVirtualBases[pv.Class.Identity()] = true
}

// layoutVirtualBases implements spec.md §4.4(f): walk the hierarchy
// depth-first in inheritance order, placing every virtual base not already
// visited (as a primary, directly or indirectly) and not an indirect
// primary base of the most-derived class — that one is laid out once,
// where its claimant is visited, not again as its own virtual base.
func (b *Builder) layoutVirtualBases() {
	var walk func(rec reclayout.Record)
	walk = func(rec reclayout.Record) {
		for _, base := range rec.Bases() {
			br := base.Record()
			if base.IsVirtual() && !b.visitedVirtualBases[br.Identity()] && !b.indirectPrimaryBases[br.Identity()] {
				idx, ok := b.graph.VirtualBaseIndex(br.Identity())
				if ok {
					off := b.layoutBase(idx, br)
					b.vbaseOffsets[br.Identity()] = reclayout.VBaseInfo{Offset: off}
					b.vbaseOrder = append(b.vbaseOrder, br)
					b.visitedVirtualBases[br.Identity()] = true
				}
			}
			walk(br)
		}
	}
	walk(b.rec)
}

// freezeNonVirtualDims implements spec.md §4.4(e).
func (b *Builder) freezeNonVirtualDims() {
	b.nonVirtualSize = b.size
	b.nonVirtualAlignment = b.alignment
}
