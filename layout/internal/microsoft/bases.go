package microsoft

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// layoutNonVirtualBases implements spec.md §4.7 step 3: pass 1 places the
// base that will own the shared vfptr (if any), establishing the primary
// base; pass 2 places the remainder.
func (b *Builder) layoutNonVirtualBases() {
	var direct []reclayout.Base
	for _, base := range b.rec.Bases() {
		if !base.IsVirtual() {
			direct = append(direct, base)
		}
	}

	primaryIdx := -1
	for i, base := range direct {
		if b.lp.GetLayout(base.Record()).HasExtendableVFPtr() {
			primaryIdx = i
			break
		}
	}

	var prev reclayout.Record
	if primaryIdx >= 0 {
		base := direct[primaryIdx].Record()
		lay := b.lp.GetLayout(base)
		b.primaryBase = base
		b.hasExtendableVFPtr = true
		b.recordNonVirtualBase(base, charunits.Zero)
		b.size = charunits.Max(b.size, lay.NonVirtualSize())
		b.dataSize = b.size
		b.updateAlignment(lay.NonVirtualAlignment())
		if lay.VBPtrOffset() != reclayout.NoVBPtr {
			b.sharedVBPtrBase = base
		}
		b.hasZeroSizedSubObject = lay.HasZeroSizedSubObject()
		b.leadsWithZeroSizedBase = lay.LeadsWithZeroSizedBase()
		prev = base
	}

	for i, base := range direct {
		if i == primaryIdx {
			continue
		}
		off := b.placeNonVirtualBase(base.Record(), prev)
		b.recordNonVirtualBase(base.Record(), off)
		if b.sharedVBPtrBase == nil {
			if lay := b.lp.GetLayout(base.Record()); lay.VBPtrOffset() != reclayout.NoVBPtr {
				b.sharedVBPtrBase = base.Record()
			}
		}
		prev = base.Record()
	}
}

// placeNonVirtualBase applies spec.md §4.7 step 3's inter-base padding
// rule: when the previous base left a zero-sized subobject and this one
// leads with a zero-sized base, one char of padding separates them.
func (b *Builder) placeNonVirtualBase(base, prev reclayout.Record) charunits.CharUnits {
	lay := b.lp.GetLayout(base)
	align := lay.NonVirtualAlignment()
	if b.maxFieldAlignment > 0 {
		align = charunits.Min(align, b.maxFieldAlignment)
	}
	offset := b.dataSize.RoundUpToAlignment(align)
	if prev != nil {
		prevLay := b.lp.GetLayout(prev)
		if prevLay.HasZeroSizedSubObject() && lay.LeadsWithZeroSizedBase() {
			offset = offset.Add(charunits.One)
		}
	}
	b.dataSize = offset.Add(lay.NonVirtualSize())
	b.size = charunits.Max(b.size, b.dataSize)
	b.updateAlignment(align)
	if lay.HasZeroSizedSubObject() {
		b.hasZeroSizedSubObject = true
	}
	return offset
}

func (b *Builder) recordNonVirtualBase(base reclayout.Record, off charunits.CharUnits) {
	b.baseOffsets[base.Identity()] = off
	b.baseOrder = append(b.baseOrder, base)
}

// seedVBPtrOffset implements spec.md §4.7 step 5. hasVBases must account for
// virtual bases inherited transitively through a non-virtual base, not just
// rec's own direct virtual bases — otherwise a class with no direct virtual
// base but a non-virtual base that has some would wrongly report no vbptr
// at all while still exposing those bases' offsets.
func (b *Builder) seedVBPtrOffset() {
	if len(collectVirtualBases(b.rec)) == 0 {
		b.vbPtrOffset = reclayout.NoVBPtr
		return
	}
	if b.sharedVBPtrBase != nil {
		lay := b.lp.GetLayout(b.sharedVBPtrBase)
		inherited := b.baseOffsets[b.sharedVBPtrBase.Identity()]
		b.vbPtrOffset = inherited.Add(lay.VBPtrOffset())
		return
	}
	// Provisional: end of the non-virtual base area, finalized once
	// injectVPtrs knows the final vfptr/vbptr layout.
	b.vbPtrOffset = b.dataSize
	b.vbPtrNeedsInjection = true
}
