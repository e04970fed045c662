// Package microsoft implements the alternative layout algorithm used for
// C++ classes under the Microsoft C++ ABI (spec.md §4.7): two-pass
// non-virtual base layout, vfptr/vbptr injection, and vtordisp computation.
package microsoft

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
)

// Builder lays out one class under the Microsoft ABI. One-shot, like
// itanium.Builder.
type Builder struct {
	tgt  reclayout.Target
	lp   reclayout.LayoutProvider
	sink diag.Sink
	rec  reclayout.Record

	size, dataSize    charunits.CharUnits
	alignment         charunits.CharUnits
	requiredAlignment charunits.CharUnits
	maxFieldAlignment charunits.CharUnits
	packed            bool

	primaryBase        reclayout.Record
	hasOwnVFPtr        bool
	hasExtendableVFPtr bool
	sharedVBPtrBase    reclayout.Record

	vbPtrOffset        charunits.CharUnits
	vbPtrNeedsInjection bool

	hasZeroSizedSubObject  bool
	leadsWithZeroSizedBase bool

	baseOffsets map[any]charunits.CharUnits
	baseOrder   []reclayout.Record

	vbaseOffsets map[any]reclayout.VBaseInfo
	vbaseOrder   []reclayout.Record

	fieldOffsets []charunits.BitCount
}

// Build lays rec out and returns its completed RecordLayout.
func Build(rec reclayout.Record, tgt reclayout.Target, lp reclayout.LayoutProvider, sink diag.Sink) *reclayout.RecordLayout {
	b := &Builder{
		tgt: tgt, lp: lp, sink: sink, rec: rec,
		baseOffsets:  make(map[any]charunits.CharUnits),
		vbaseOffsets: make(map[any]reclayout.VBaseInfo),
	}
	b.initialize()
	b.layoutNonVirtualBases()
	b.determineOwnVFPtr()
	b.seedVBPtrOffset()
	b.layoutFields()
	b.injectVPtrs()
	b.layoutVirtualBases()
	b.finalize()
	return b.buildResult()
}

// initialize implements spec.md §4.7 step 1.
func (b *Builder) initialize() {
	b.packed = b.rec.Packed()
	b.maxFieldAlignment = b.rec.MaxFieldAlignment()
	ptrWidth := b.tgt.PointerWidth(0)
	if b.maxFieldAlignment > 0 {
		b.maxFieldAlignment = charunits.Min(b.maxFieldAlignment, ptrWidth)
	}

	b.requiredAlignment = b.rec.RequiredAlignment()
	if b.tgt.Is64Bit() && b.requiredAlignment.IsZero() {
		b.requiredAlignment = charunits.One
	}

	b.alignment = charunits.One
	b.vbPtrOffset = reclayout.NoVBPtr
}

func (b *Builder) updateAlignment(a charunits.CharUnits) {
	b.alignment = charunits.Max(b.alignment, a)
}

// determineOwnVFPtr implements spec.md §4.7 step 4.
func (b *Builder) determineOwnVFPtr() {
	if b.primaryBase != nil || !b.rec.IsDynamicClass() {
		return
	}
	for _, m := range b.rec.Methods() {
		if m.IsVirtual() && len(m.Overrides()) == 0 {
			b.hasOwnVFPtr = true
			b.hasExtendableVFPtr = true
			return
		}
	}
}
