package microsoft

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// vtordispSize is the fixed width of a vtordisp slot (GLOSSARY: "a 4-byte
// displacement").
const vtordispSize = charunits.CharUnits(4)

// computeVtordispSet implements spec.md §4.7's "Vtordisp set" paragraph.
// The transitive-closure rule ("a vbase needs a vtordisp if any of its
// non-virtual bases transitively does") falls out for free here: each
// direct base's own completed layout already reflects its own closure, so
// seeding from each base's VBaseOffsets is sufficient.
func (b *Builder) computeVtordispSet() map[any]bool {
	set := make(map[any]bool)

	for _, base := range b.rec.Bases() {
		if base.IsVirtual() {
			continue
		}
		lay := b.lp.GetLayout(base.Record())
		for id, info := range lay.VBaseOffsets() {
			if info.HasVtorDisp {
				set[id] = true
			}
		}
	}

	if !b.hasUserCtorOrDtor() {
		return set
	}

	overridden := make(map[reclayout.Method]bool)
	for _, m := range b.rec.Methods() {
		for _, o := range m.Overrides() {
			overridden[o] = true
		}
	}
	for _, m := range b.rec.Methods() {
		if !m.IsVirtual() || m.IsDestructor() {
			continue
		}
		if overridden[m] {
			continue
		}
		for _, o := range m.Overrides() {
			if parent := o.Parent(); parent != nil {
				set[parent.Identity()] = true
			}
		}
	}
	return set
}

func (b *Builder) hasUserCtorOrDtor() bool {
	for _, m := range b.rec.Methods() {
		if (m.IsConstructor() || m.IsDestructor()) && m.IsUserProvided() {
			return true
		}
	}
	return false
}

// collectVirtualBases returns every virtual base reachable from rec —
// direct or inherited transitively through a non-virtual base — in
// depth-first declaration order, deduplicated at first occurrence (the
// same "earliest in the inheritance graph wins" rule the Itanium builder's
// own walk uses in bases.go, since a virtual base is a single shared
// subobject no matter how many paths reach it).
func collectVirtualBases(rec reclayout.Record) []reclayout.Record {
	var order []reclayout.Record
	seen := make(map[any]bool)
	var walk func(r reclayout.Record)
	walk = func(r reclayout.Record) {
		for _, base := range r.Bases() {
			br := base.Record()
			if base.IsVirtual() && !seen[br.Identity()] {
				seen[br.Identity()] = true
				order = append(order, br)
			}
			walk(br)
		}
	}
	walk(rec)
	return order
}

// layoutVirtualBases implements spec.md §4.7 step 8. A virtual base already
// placed inside a direct non-virtual base's own subobject (because that
// base already carries a vbtable covering it) is not laid out again — it
// keeps the offset inherited from that base, shifted by the base's own
// offset within rec.
func (b *Builder) layoutVirtualBases() {
	vset := b.computeVtordispSet()

	inherited := make(map[any]bool)
	for _, base := range b.rec.Bases() {
		if base.IsVirtual() {
			continue
		}
		baseOff, ok := b.baseOffsets[base.Record().Identity()]
		if !ok {
			continue
		}
		lay := b.lp.GetLayout(base.Record())
		for _, vb := range collectVirtualBases(base.Record()) {
			id := vb.Identity()
			if inherited[id] {
				continue
			}
			info, ok := lay.VBaseOffset(vb)
			if !ok {
				continue
			}
			inherited[id] = true
			b.vbaseOffsets[id] = reclayout.VBaseInfo{
				Offset:      baseOff.Add(info.Offset),
				HasVtorDisp: info.HasVtorDisp,
			}
			b.vbaseOrder = append(b.vbaseOrder, vb)
		}
	}

	prevZeroSized := false
	for _, vb := range collectVirtualBases(b.rec) {
		if inherited[vb.Identity()] {
			continue
		}
		lay := b.lp.GetLayout(vb)

		if prevZeroSized {
			b.dataSize = b.dataSize.RoundUpToAlignment(vtordispSize).Add(vtordispSize)
		}
		needsVtorDisp := vset[vb.Identity()]
		if needsVtorDisp {
			b.dataSize = b.dataSize.RoundUpToAlignment(vtordispSize).Add(vtordispSize)
		}

		align := lay.NonVirtualAlignment()
		offset := b.dataSize.RoundUpToAlignment(align)
		b.dataSize = offset.Add(lay.NonVirtualSize())
		if b.dataSize > b.size {
			b.size = b.dataSize
		}
		b.updateAlignment(align)

		b.vbaseOffsets[vb.Identity()] = reclayout.VBaseInfo{Offset: offset, HasVtorDisp: needsVtorDisp}
		b.vbaseOrder = append(b.vbaseOrder, vb)

		prevZeroSized = lay.HasZeroSizedSubObject()
	}
}
