package subobject

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// Map is the empty-subobject map owned by one class under layout (spec.md
// §4.2): it enforces that two distinct empty subobjects of the same static
// type never share an offset within the most-derived object.
type Map struct {
	lp  reclayout.LayoutProvider
	tgt reclayout.Target

	sizeOfLargestEmptySubobject charunits.CharUnits
	maxEmptyClassOffset         charunits.CharUnits
	emptyClassOffsets           map[charunits.CharUnits][]any
}

// New builds the map for rec, computing its largest-empty-subobject size up
// front (ComputeLargestEmpty in spec.md §4.2).
func New(rec reclayout.Record, tgt reclayout.Target, lp reclayout.LayoutProvider) *Map {
	m := &Map{lp: lp, tgt: tgt, emptyClassOffsets: make(map[charunits.CharUnits][]any)}
	m.sizeOfLargestEmptySubobject = m.computeLargestEmpty(rec)
	return m
}

func (m *Map) computeLargestEmpty(rec reclayout.Record) charunits.CharUnits {
	var largest charunits.CharUnits
	for _, b := range rec.Bases() {
		largest = charunits.Max(largest, m.largestEmptyOfRecord(b.Record()))
	}
	for _, f := range rec.Fields() {
		if f.IsBitField() {
			continue
		}
		largest = charunits.Max(largest, m.largestEmptyOfType(f.Type()))
	}
	return largest
}

func (m *Map) largestEmptyOfRecord(rec reclayout.Record) charunits.CharUnits {
	if rec.IsEmpty() {
		return m.lp.GetLayout(rec).Size()
	}
	return m.lp.GetLayout(rec).SizeOfLargestEmptySubobject()
}

func (m *Map) largestEmptyOfType(t reclayout.FieldType) charunits.CharUnits {
	switch t.Kind() {
	case reclayout.TypeRecord:
		return m.largestEmptyOfRecord(t.Record())
	case reclayout.TypeArray:
		return m.largestEmptyOfType(t.Elem())
	default:
		return charunits.Zero
	}
}

// SizeOfLargestEmptySubobject reports the size computed at construction.
func (m *Map) SizeOfLargestEmptySubobject() charunits.CharUnits {
	return m.sizeOfLargestEmptySubobject
}

// anyEmptySubobjectsBeyond is the map-wide short-circuit: a query strictly
// above the running maximum recorded offset cannot collide with anything.
func (m *Map) anyEmptySubobjectsBeyond(off charunits.CharUnits) bool {
	return off <= m.maxEmptyClassOffset
}

func (m *Map) canPlaceAtOffset(identity any, off charunits.CharUnits) bool {
	if !m.anyEmptySubobjectsBeyond(off) {
		return true
	}
	for _, id := range m.emptyClassOffsets[off] {
		if id == identity {
			return false
		}
	}
	return true
}

func (m *Map) recordAtOffset(identity any, off charunits.CharUnits) {
	if m.sizeOfLargestEmptySubobject.IsZero() {
		return
	}
	m.emptyClassOffsets[off] = append(m.emptyClassOffsets[off], identity)
	if off > m.maxEmptyClassOffset {
		m.maxEmptyClassOffset = off
	}
}

// CanPlaceBaseAtOffset reports whether placing the whole base-subobject
// subgraph rooted at g.Nodes[nodeIdx] at off would not collide with any
// already-recorded empty subobject of the same static type, per spec.md
// §4.2's CanPlaceBaseSubobjectAtOffset/CanPlaceBaseAtOffset.
func (m *Map) CanPlaceBaseAtOffset(g *Graph, nodeIdx int, off charunits.CharUnits) bool {
	if m.sizeOfLargestEmptySubobject.IsZero() {
		return true
	}
	return m.canPlaceSubobject(g, nodeIdx, off)
}

func (m *Map) canPlaceSubobject(g *Graph, nodeIdx int, off charunits.CharUnits) bool {
	n := g.Nodes[nodeIdx]
	if n.Class.IsEmpty() && !m.canPlaceAtOffset(n.Class.Identity(), off) {
		return false
	}

	lay := m.lp.GetLayout(n.Class)
	for _, childIdx := range n.Bases {
		child := g.Nodes[childIdx]
		if child.IsVirtual {
			// Only descend through a virtual base via the one subobject
			// that claims it as primary; every other path to the same
			// virtual base checks it through that claimant instead.
			if n.PrimaryVirtualBase != childIdx || child.Derived != nodeIdx {
				continue
			}
			vOff := off
			if info, ok := lay.VBaseOffset(child.Class); ok {
				vOff = off.Add(info.Offset)
			}
			if !m.canPlaceSubobject(g, childIdx, vOff) {
				return false
			}
			continue
		}
		bOff, _ := lay.BaseOffset(child.Class)
		if !m.canPlaceSubobject(g, childIdx, off.Add(bOff)) {
			return false
		}
	}

	for i, f := range n.Class.Fields() {
		if f.IsBitField() {
			continue
		}
		fieldOff := lay.FieldOffset(i).ToCharUnits(m.tgt.CharWidth())
		if !m.canPlaceFieldType(f.Type(), off.Add(fieldOff)) {
			return false
		}
	}
	return true
}

func (m *Map) canPlaceFieldType(t reclayout.FieldType, off charunits.CharUnits) bool {
	switch t.Kind() {
	case reclayout.TypeRecord:
		return m.canPlaceRecordAtOffset(t.Record(), off, true)
	case reclayout.TypeArray:
		elemSize := m.elemSizeHint(t)
		n := t.ArrayLen()
		for i := int64(0); i < n; i++ {
			if !m.canPlaceFieldType(t.Elem(), off.Add(elemSize*charunits.CharUnits(i))) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// elemSizeHint returns the element stride of array type t: the element
// type's full size under m.tgt (a record element's completed size, or a
// nested array's total size).
func (m *Map) elemSizeHint(t reclayout.FieldType) charunits.CharUnits {
	return t.Elem().Size(m.tgt, m.lp)
}

// canPlaceRecordAtOffset checks a record-typed field's class: its own
// emptiness at off, its non-virtual bases (translated by their offsets in
// the field class's layout), and — only at the outermost level of the
// field's own class, per spec.md §4.2 — its virtual bases too.
func (m *Map) canPlaceRecordAtOffset(rec reclayout.Record, off charunits.CharUnits, outermost bool) bool {
	if rec.IsEmpty() && !m.canPlaceAtOffset(rec.Identity(), off) {
		return false
	}
	lay := m.lp.GetLayout(rec)
	for _, b := range rec.Bases() {
		if b.IsVirtual() {
			if !outermost {
				continue
			}
			info, ok := lay.VBaseOffset(b.Record())
			if !ok {
				continue
			}
			if !m.canPlaceRecordAtOffset(b.Record(), off.Add(info.Offset), false) {
				return false
			}
			continue
		}
		bOff, _ := lay.BaseOffset(b.Record())
		if !m.canPlaceRecordAtOffset(b.Record(), off.Add(bOff), false) {
			return false
		}
	}
	for i, f := range rec.Fields() {
		if f.IsBitField() {
			continue
		}
		fieldOff := lay.FieldOffset(i).ToCharUnits(m.tgt.CharWidth())
		if !m.canPlaceFieldType(f.Type(), off.Add(fieldOff)) {
			return false
		}
	}
	return true
}

// CanPlaceFieldAtOffset reports whether a field of the given declared type
// can be placed at off without colliding with a recorded empty subobject.
func (m *Map) CanPlaceFieldAtOffset(t reclayout.FieldType, off charunits.CharUnits) bool {
	if m.sizeOfLargestEmptySubobject.IsZero() {
		return true
	}
	return m.canPlaceFieldType(t, off)
}

// UpdateBase records every empty subobject visited while placing
// g.Nodes[nodeIdx] at off. Call only after CanPlaceBaseAtOffset has
// accepted the same placement.
func (m *Map) UpdateBase(g *Graph, nodeIdx int, off charunits.CharUnits) {
	if m.sizeOfLargestEmptySubobject.IsZero() {
		return
	}
	m.updateSubobject(g, nodeIdx, off)
}

func (m *Map) updateSubobject(g *Graph, nodeIdx int, off charunits.CharUnits) {
	n := g.Nodes[nodeIdx]
	if n.Class.IsEmpty() {
		m.recordAtOffset(n.Class.Identity(), off)
	}
	lay := m.lp.GetLayout(n.Class)
	for _, childIdx := range n.Bases {
		child := g.Nodes[childIdx]
		if child.IsVirtual {
			if n.PrimaryVirtualBase != childIdx || child.Derived != nodeIdx {
				continue
			}
			vOff := off
			if info, ok := lay.VBaseOffset(child.Class); ok {
				vOff = off.Add(info.Offset)
			}
			m.updateSubobject(g, childIdx, vOff)
			continue
		}
		bOff, _ := lay.BaseOffset(child.Class)
		m.updateSubobject(g, childIdx, off.Add(bOff))
	}
	for i, f := range n.Class.Fields() {
		if f.IsBitField() {
			continue
		}
		fieldOff := lay.FieldOffset(i).ToCharUnits(m.tgt.CharWidth())
		m.updateFieldType(f.Type(), off.Add(fieldOff))
	}
}

func (m *Map) updateFieldType(t reclayout.FieldType, off charunits.CharUnits) {
	switch t.Kind() {
	case reclayout.TypeRecord:
		m.updateRecordAtOffset(t.Record(), off, true)
	case reclayout.TypeArray:
		elemSize := m.elemSizeHint(t)
		n := t.ArrayLen()
		for i := int64(0); i < n; i++ {
			m.updateFieldType(t.Elem(), off.Add(elemSize*charunits.CharUnits(i)))
		}
	}
}

func (m *Map) updateRecordAtOffset(rec reclayout.Record, off charunits.CharUnits, outermost bool) {
	if rec.IsEmpty() {
		m.recordAtOffset(rec.Identity(), off)
	}
	lay := m.lp.GetLayout(rec)
	for _, b := range rec.Bases() {
		if b.IsVirtual() {
			if !outermost {
				continue
			}
			info, ok := lay.VBaseOffset(b.Record())
			if !ok {
				continue
			}
			m.updateRecordAtOffset(b.Record(), off.Add(info.Offset), false)
			continue
		}
		bOff, _ := lay.BaseOffset(b.Record())
		m.updateRecordAtOffset(b.Record(), off.Add(bOff), false)
	}
	for i, f := range rec.Fields() {
		if f.IsBitField() {
			continue
		}
		fieldOff := lay.FieldOffset(i).ToCharUnits(m.tgt.CharWidth())
		m.updateFieldType(f.Type(), off.Add(fieldOff))
	}
}

// UpdateField records every empty subobject visited by a field of type t
// placed at off. Call only after CanPlaceFieldAtOffset has accepted the
// same placement.
func (m *Map) UpdateField(t reclayout.FieldType, off charunits.CharUnits) {
	if m.sizeOfLargestEmptySubobject.IsZero() {
		return
	}
	m.updateFieldType(t, off)
}
