package reclayout

import "github.com/abilayout/reclayout/charunits"

// VBaseInfo is the offset and vtordisp status of one virtual base, as
// recorded in RecordLayout.vbaseOffsets.
type VBaseInfo struct {
	Offset       charunits.CharUnits
	HasVtorDisp  bool
}

// NoVBPtr is the sentinel VBPtrOffset value meaning "this class has no
// vbptr" (spec.md §3, Microsoft-only field).
const NoVBPtr charunits.CharUnits = -1

// RecordLayout is the immutable result of laying out one record. Values are
// only ever produced by ResultBuilder.Build and are safe to share freely
// (including across goroutines) once built, since nothing ever mutates them
// afterward.
type RecordLayout struct {
	size                        charunits.CharUnits
	dataSize                    charunits.CharUnits
	alignment                   charunits.CharUnits
	requiredAlignment           charunits.CharUnits
	unadjustedAlignment         charunits.CharUnits
	nonVirtualSize              charunits.CharUnits
	nonVirtualAlignment         charunits.CharUnits
	sizeOfLargestEmptySubobject charunits.CharUnits

	primaryBase         Record
	primaryBaseIsVirtual bool

	hasOwnVFPtr        bool
	hasExtendableVFPtr bool
	vbPtrOffset        charunits.CharUnits

	baseOffsets  map[any]charunits.CharUnits
	vbaseOffsets map[any]VBaseInfo

	fieldOffsets []charunits.BitCount

	hasZeroSizedSubObject  bool
	leadsWithZeroSizedBase bool
}

func (l *RecordLayout) Size() charunits.CharUnits                { return l.size }
func (l *RecordLayout) DataSize() charunits.CharUnits             { return l.dataSize }
func (l *RecordLayout) Alignment() charunits.CharUnits            { return l.alignment }
func (l *RecordLayout) RequiredAlignment() charunits.CharUnits    { return l.requiredAlignment }
func (l *RecordLayout) UnadjustedAlignment() charunits.CharUnits  { return l.unadjustedAlignment }
func (l *RecordLayout) NonVirtualSize() charunits.CharUnits       { return l.nonVirtualSize }
func (l *RecordLayout) NonVirtualAlignment() charunits.CharUnits  { return l.nonVirtualAlignment }
func (l *RecordLayout) SizeOfLargestEmptySubobject() charunits.CharUnits {
	return l.sizeOfLargestEmptySubobject
}

func (l *RecordLayout) PrimaryBase() Record         { return l.primaryBase }
func (l *RecordLayout) PrimaryBaseIsVirtual() bool  { return l.primaryBaseIsVirtual }
func (l *RecordLayout) HasOwnVFPtr() bool           { return l.hasOwnVFPtr }
func (l *RecordLayout) HasExtendableVFPtr() bool    { return l.hasExtendableVFPtr }
func (l *RecordLayout) VBPtrOffset() charunits.CharUnits { return l.vbPtrOffset }

// BaseOffset returns the offset of a direct non-virtual base, and whether
// one was recorded at all.
func (l *RecordLayout) BaseOffset(base Record) (charunits.CharUnits, bool) {
	off, ok := l.baseOffsets[base.Identity()]
	return off, ok
}

// VBaseOffset returns the offset (and vtordisp status) of a virtual base.
func (l *RecordLayout) VBaseOffset(base Record) (VBaseInfo, bool) {
	info, ok := l.vbaseOffsets[base.Identity()]
	return info, ok
}

// BaseOffsets returns a copy of the direct non-virtual base offset map,
// keyed by Record.Identity().
func (l *RecordLayout) BaseOffsets() map[any]charunits.CharUnits {
	out := make(map[any]charunits.CharUnits, len(l.baseOffsets))
	for k, v := range l.baseOffsets {
		out[k] = v
	}
	return out
}

// VBaseOffsets returns a copy of the virtual base offset map.
func (l *RecordLayout) VBaseOffsets() map[any]VBaseInfo {
	out := make(map[any]VBaseInfo, len(l.vbaseOffsets))
	for k, v := range l.vbaseOffsets {
		out[k] = v
	}
	return out
}

// FieldOffset returns the bit offset of the i-th field in declaration
// order.
func (l *RecordLayout) FieldOffset(i int) charunits.BitCount { return l.fieldOffsets[i] }

// FieldOffsets returns a copy of every field's bit offset, in declaration
// order.
func (l *RecordLayout) FieldOffsets() []charunits.BitCount {
	out := make([]charunits.BitCount, len(l.fieldOffsets))
	copy(out, l.fieldOffsets)
	return out
}

func (l *RecordLayout) HasZeroSizedSubObject() bool  { return l.hasZeroSizedSubObject }
func (l *RecordLayout) LeadsWithZeroSizedBase() bool { return l.leadsWithZeroSizedBase }

// ResultBuilder accumulates a RecordLayout's fields before it is frozen.
// Every layout.Cache builder (Itanium and Microsoft) produces its result
// through one of these rather than constructing a RecordLayout directly,
// since RecordLayout's fields are unexported outside this package.
type ResultBuilder struct {
	l RecordLayout
}

// NewResultBuilder returns an empty builder with zero-valued fields and a
// vbPtrOffset of NoVBPtr (the correct default for a class with no virtual
// bases).
func NewResultBuilder() *ResultBuilder {
	b := &ResultBuilder{}
	b.l.vbPtrOffset = NoVBPtr
	b.l.baseOffsets = make(map[any]charunits.CharUnits)
	b.l.vbaseOffsets = make(map[any]VBaseInfo)
	return b
}

func (b *ResultBuilder) SetSize(v charunits.CharUnits) *ResultBuilder             { b.l.size = v; return b }
func (b *ResultBuilder) SetDataSize(v charunits.CharUnits) *ResultBuilder         { b.l.dataSize = v; return b }
func (b *ResultBuilder) SetAlignment(v charunits.CharUnits) *ResultBuilder        { b.l.alignment = v; return b }
func (b *ResultBuilder) SetRequiredAlignment(v charunits.CharUnits) *ResultBuilder {
	b.l.requiredAlignment = v
	return b
}
func (b *ResultBuilder) SetUnadjustedAlignment(v charunits.CharUnits) *ResultBuilder {
	b.l.unadjustedAlignment = v
	return b
}
func (b *ResultBuilder) SetNonVirtualSize(v charunits.CharUnits) *ResultBuilder { b.l.nonVirtualSize = v; return b }
func (b *ResultBuilder) SetNonVirtualAlignment(v charunits.CharUnits) *ResultBuilder {
	b.l.nonVirtualAlignment = v
	return b
}
func (b *ResultBuilder) SetSizeOfLargestEmptySubobject(v charunits.CharUnits) *ResultBuilder {
	b.l.sizeOfLargestEmptySubobject = v
	return b
}
func (b *ResultBuilder) SetPrimaryBase(r Record, isVirtual bool) *ResultBuilder {
	b.l.primaryBase = r
	b.l.primaryBaseIsVirtual = isVirtual
	return b
}
func (b *ResultBuilder) SetHasOwnVFPtr(v bool) *ResultBuilder        { b.l.hasOwnVFPtr = v; return b }
func (b *ResultBuilder) SetHasExtendableVFPtr(v bool) *ResultBuilder { b.l.hasExtendableVFPtr = v; return b }
func (b *ResultBuilder) SetVBPtrOffset(v charunits.CharUnits) *ResultBuilder { b.l.vbPtrOffset = v; return b }

func (b *ResultBuilder) AddBaseOffset(base Record, off charunits.CharUnits) *ResultBuilder {
	b.l.baseOffsets[base.Identity()] = off
	return b
}
func (b *ResultBuilder) AddVBaseOffset(base Record, info VBaseInfo) *ResultBuilder {
	b.l.vbaseOffsets[base.Identity()] = info
	return b
}

func (b *ResultBuilder) SetFieldOffsets(offsets []charunits.BitCount) *ResultBuilder {
	b.l.fieldOffsets = offsets
	return b
}

func (b *ResultBuilder) SetHasZeroSizedSubObject(v bool) *ResultBuilder {
	b.l.hasZeroSizedSubObject = v
	return b
}
func (b *ResultBuilder) SetLeadsWithZeroSizedBase(v bool) *ResultBuilder {
	b.l.leadsWithZeroSizedBase = v
	return b
}

// Build freezes the accumulated fields into an immutable RecordLayout.
func (b *ResultBuilder) Build() *RecordLayout {
	out := b.l
	offs := make([]charunits.BitCount, len(b.l.fieldOffsets))
	copy(offs, b.l.fieldOffsets)
	out.fieldOffsets = offs
	out.baseOffsets = make(map[any]charunits.CharUnits, len(b.l.baseOffsets))
	for k, v := range b.l.baseOffsets {
		out.baseOffsets[k] = v
	}
	out.vbaseOffsets = make(map[any]VBaseInfo, len(b.l.vbaseOffsets))
	for k, v := range b.l.vbaseOffsets {
		out.vbaseOffsets[k] = v
	}
	return &out
}
