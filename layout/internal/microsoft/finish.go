package microsoft

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/diag"
)

// finalize implements spec.md §4.7 step 9.
func (b *Builder) finalize() {
	unpaddedSize := b.size
	b.size = b.size.RoundUpToAlignment(b.alignment)
	if b.requiredAlignment > 0 {
		b.size = b.size.RoundUpToAlignment(b.requiredAlignment)
	}
	if b.size.IsZero() {
		b.size = b.alignment
	}
	if b.size != unpaddedSize {
		b.sink.Emit(diag.Diagnostic{
			Kind: diag.KindPaddedSize, RecordKind: b.rec.Kind(), RecordName: b.rec.Name(),
			PadSize: int64(b.size - unpaddedSize), PadIsBits: false, PadIsPlural: b.size-unpaddedSize > 1,
		})
	}
}

func (b *Builder) buildResult() *reclayout.RecordLayout {
	rb := reclayout.NewResultBuilder().
		SetSize(b.size).
		SetDataSize(b.dataSize).
		SetAlignment(b.alignment).
		SetRequiredAlignment(b.requiredAlignment).
		SetUnadjustedAlignment(b.alignment).
		SetNonVirtualSize(b.size).
		SetNonVirtualAlignment(b.alignment).
		SetHasOwnVFPtr(b.hasOwnVFPtr).
		SetHasExtendableVFPtr(b.hasExtendableVFPtr).
		SetVBPtrOffset(b.vbPtrOffset).
		SetFieldOffsets(b.fieldOffsets).
		SetHasZeroSizedSubObject(b.hasZeroSizedSubObject).
		SetLeadsWithZeroSizedBase(b.leadsWithZeroSizedBase)

	if b.primaryBase != nil {
		rb.SetPrimaryBase(b.primaryBase, false)
	}

	for _, base := range b.baseOrder {
		rb.AddBaseOffset(base, b.baseOffsets[base.Identity()])
	}
	for _, base := range b.vbaseOrder {
		rb.AddVBaseOffset(base, b.vbaseOffsets[base.Identity()])
	}

	return rb.Build()
}
